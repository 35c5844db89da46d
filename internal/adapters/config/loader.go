// Package config provides the configuration loader for kiln.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the kiln.yaml schema version this loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// ExecutableDir locates the directory of the running binary.
	// The default resource bundle sits next to it.
	ExecutableDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:        logger,
		FS:            NewOSFS(),
		ExecutableDir: executableDir,
	}
}

// Load reads the configuration file at path and merges it over domain.DefaultSettings.
// An empty path means kiln.yaml in the working directory. A missing file yields the defaults.
// Relative paths in the file are resolved against the file's directory.
func (l *Loader) Load(path string) (domain.Settings, error) {
	if path == "" {
		path = domain.KilnFileName
	}

	settings := domain.DefaultSettings()

	data, err := l.FS.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
		}
		return l.withDefaultResources(settings), nil
	}

	var kilnfile Kilnfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&kilnfile); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	if kilnfile.Version != "" && kilnfile.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, kilnfile.Version, SupportedVersion))
	}

	baseDir := filepath.Dir(path)
	if err := l.apply(&settings, &kilnfile, baseDir); err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}

	return l.withDefaultResources(settings), nil
}

func (l *Loader) apply(settings *domain.Settings, kf *Kilnfile, baseDir string) error {
	if kf.Resources != "" {
		settings.Resources = resolvePath(baseDir, kf.Resources)
	}
	if kf.Cache != "" {
		settings.CacheDir = resolvePath(baseDir, kf.Cache)
	}
	if kf.Output != "" {
		settings.OutputDir = resolvePath(baseDir, kf.Output)
	}
	if kf.Timeout != "" {
		timeout, err := ParseTimeout(kf.Timeout)
		if err != nil {
			return err
		}
		settings.Timeout = timeout
	}

	if p := kf.PlatformIO; p != nil {
		if p.Executable != "" {
			settings.Project.Executable = p.Executable
		}
		if p.Config != "" {
			settings.Project.ConfigName = p.Config
		}
		if len(p.Artifacts) > 0 {
			settings.Project.Artifacts = p.Artifacts
		}
		if p.BaseName != "" {
			settings.Project.BaseName = p.BaseName
		}
		settings.Project.Environment = p.Environment
	}

	if t := kf.Toolchain; t != nil {
		if len(t.Candidates) > 0 {
			settings.Toolchain.Candidates = t.Candidates
		}
		if t.Flags != nil {
			settings.Toolchain.Flags = *t.Flags
		}
		if t.SourcesDir != "" {
			settings.Toolchain.SourcesDir = t.SourcesDir
		}
		if t.Extension != nil {
			settings.Toolchain.Extension = *t.Extension
		}
		if len(t.Artifacts) > 0 {
			settings.Toolchain.Artifacts = t.Artifacts
		}
		settings.Toolchain.Environment = t.Environment
	}

	return nil
}

// withDefaultResources points an unset bundle root at the resources directory next to the binary.
func (l *Loader) withDefaultResources(settings domain.Settings) domain.Settings {
	if settings.Resources != "" || l.ExecutableDir == nil {
		return settings
	}
	dir, err := l.ExecutableDir()
	if err != nil {
		l.Logger.Warn("cannot locate the kiln executable, no default resource bundle: " + err.Error())
		return settings
	}
	settings.Resources = filepath.Join(dir, domain.ResourcesDirName)
	return settings
}

// ParseTimeout parses a duration such as "90s" or "10m".
// Zero disables the timeout; negative values are rejected.
func ParseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, err.Error()), "timeout", value)
	}
	if d < 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, "timeout must not be negative"), "timeout", value)
	}
	return d, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
