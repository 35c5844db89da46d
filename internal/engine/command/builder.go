// Package command assembles external tool invocations for build requests.
//
// Every function here is pure: the same inputs always produce the same argument vector.
package command

import (
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
)

const (
	// RunVerb is the build tool subcommand that builds a project.
	RunVerb = "run"
	// ProjectDirFlag points the build tool at the project directory.
	ProjectDirFlag = "-d"
	// TargetFlag selects the build target.
	TargetFlag = "-e"
	// ProjectVerboseFlag turns on the build tool's verbose output.
	ProjectVerboseFlag = "--verbose"
	// OutputFlag names the compiler's output file.
	OutputFlag = "-o"
	// CompilerVerboseFlag turns on the compiler's verbose output.
	CompilerVerboseFlag = "-v"
)

// Project builds the command for a project build:
//
//	<tool> run -d <projectDir> [-e <target>] [--verbose] <extra...>
//
// The target flag is only emitted when the request carries a target.
func Project(
	tool domain.ToolchainChoice,
	loc domain.ResourceLocation,
	req domain.BuildRequest,
	settings domain.ProjectSettings,
) domain.Command {
	args := []string{RunVerb, ProjectDirFlag, loc.ProjectDir}
	if req.BuildTarget != "" {
		args = append(args, TargetFlag, req.BuildTarget)
	}
	if req.Verbose {
		args = append(args, ProjectVerboseFlag)
	}
	args = append(args, req.ExtraArgs...)

	return domain.Command{
		Name:    tool.Name,
		Path:    tool.Path,
		Args:    args,
		Env:     settings.Environment,
		Timeout: req.Timeout,
	}
}

// SourceFile builds the command for compiling a single source file:
//
//	<compiler> <source> -o <outputDir>/<baseName> <flags...> [-v] <extra...>
func SourceFile(
	tool domain.ToolchainChoice,
	loc domain.ResourceLocation,
	req domain.BuildRequest,
	settings domain.ToolchainSettings,
) domain.Command {
	args := make([]string, 0, 3+len(settings.Flags)+len(req.ExtraArgs)+1)
	args = append(args, loc.SourceFile, OutputFlag, OutputPath(req))
	args = append(args, settings.Flags...)
	if req.Verbose {
		args = append(args, CompilerVerboseFlag)
	}
	args = append(args, req.ExtraArgs...)

	return domain.Command{
		Name:    tool.Name,
		Path:    tool.Path,
		Args:    args,
		Env:     settings.Environment,
		Timeout: req.Timeout,
	}
}

// Build dispatches on the location kind.
func Build(
	tool domain.ToolchainChoice,
	loc domain.ResourceLocation,
	req domain.BuildRequest,
	settings domain.Settings,
) domain.Command {
	if loc.Kind == domain.ResourceSourceFile {
		return SourceFile(tool, loc, req, settings.Toolchain)
	}
	return Project(tool, loc, req, settings.Project)
}

// OutputPath is the file the compiler is asked to write, without any platform suffix.
func OutputPath(req domain.BuildRequest) string {
	return filepath.Join(req.OutputDir, req.OutputBaseName)
}
