package app

import "go.trai.ch/kiln/internal/core/domain"

// Report is the machine-readable form of a BuildResult.
type Report struct {
	ID             string   `json:"id"`
	Resource       string   `json:"resource"`
	Strategy       string   `json:"strategy"`
	Success        bool     `json:"success"`
	ArtifactPath   string   `json:"artifact_path,omitempty"`
	ArtifactDigest string   `json:"artifact_digest,omitempty"`
	ArtifactType   string   `json:"artifact_type,omitempty"`
	Relocated      bool     `json:"relocated"`
	ErrorKind      string   `json:"error_kind,omitempty"`
	Error          string   `json:"error,omitempty"`
	ExitCode       int      `json:"exit_code"`
	Stdout         string   `json:"stdout"`
	Stderr         string   `json:"stderr"`
	BuildTarget    string   `json:"build_target,omitempty"`
	Toolchain      string   `json:"toolchain,omitempty"`
	Command        []string `json:"command,omitempty"`
	SearchDir      string   `json:"search_dir,omitempty"`
	Candidates     []string `json:"candidates,omitempty"`
	DurationMillis int64    `json:"duration_ms"`
}

// NewReport converts res into its machine-readable form.
func NewReport(res domain.BuildResult) Report {
	r := Report{
		ID:             res.ID,
		Resource:       res.Resource,
		Strategy:       res.Strategy.String(),
		Success:        res.Success,
		ArtifactPath:   res.ArtifactPath,
		ArtifactDigest: res.ArtifactDigest,
		ArtifactType:   res.ArtifactType,
		Relocated:      res.Relocated,
		ExitCode:       res.ExitCode,
		Stdout:         res.Stdout,
		Stderr:         res.Stderr,
		BuildTarget:    res.BuildTarget,
		Toolchain:      res.Toolchain.Path,
		Command:        res.Command,
		SearchDir:      res.SearchDir,
		Candidates:     res.Candidates,
		DurationMillis: res.Duration.Milliseconds(),
	}
	if res.Kind != domain.KindNone {
		r.ErrorKind = string(res.Kind)
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	return r
}

// NewReports converts a batch of results, keeping their order.
func NewReports(results []domain.BuildResult) []Report {
	reports := make([]Report, len(results))
	for i, res := range results {
		reports[i] = NewReport(res)
	}
	return reports
}
