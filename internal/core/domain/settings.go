package domain

import "time"

// Settings holds the resolved kiln configuration.
type Settings struct {
	// Resources is the bundle root: a directory or a packed archive.
	Resources string
	// CacheDir is where packed bundles are extracted.
	CacheDir string
	// OutputDir is the default output directory for compiled tools.
	OutputDir string
	// Timeout bounds every external process unless a request overrides it.
	Timeout time.Duration
	// Project configures the project strategy.
	Project ProjectSettings
	// Toolchain configures the single-file strategy.
	Toolchain ToolchainSettings
}

// ProjectSettings configures builds of bundled project directories.
type ProjectSettings struct {
	// Executable is the build tool invoked for projects.
	Executable string
	// ConfigName is the config file at the project root.
	ConfigName string
	// Artifacts are the artifact suffixes in order of preference.
	Artifacts []string
	// BaseName is the default artifact base name.
	BaseName string
	// Environment holds extra child environment entries.
	Environment map[string]string
}

// ToolchainSettings configures compilation of bundled single source files.
type ToolchainSettings struct {
	// Candidates are compiler executables probed in order.
	Candidates []string
	// Flags follow the output flag on every compile.
	Flags []string
	// SourcesDir is the bundle directory holding the sources.
	SourcesDir string
	// Extension is appended to ids that carry none.
	Extension string
	// Artifacts are the executable suffixes in order of preference.
	Artifacts []string
	// Environment holds extra child environment entries.
	Environment map[string]string
}

// DefaultSettings returns the built-in configuration used when no kiln.yaml is present.
func DefaultSettings() Settings {
	return Settings{
		CacheDir:  DefaultCachePath(),
		OutputDir: DefaultOutputPath(),
		Project: ProjectSettings{
			Executable: "pio",
			ConfigName: ProjectConfigName,
			Artifacts:  []string{".elf", ".hex"},
			BaseName:   "firmware",
		},
		Toolchain: ToolchainSettings{
			Candidates: []string{"clang++", "g++"},
			Flags:      []string{"-std=c++17"},
			SourcesDir: "internal_cpp_sources",
			Extension:  ".cpp",
			Artifacts:  []string{"", ".exe"},
		},
	}
}

// Bundle returns the bundle description the resource locator needs.
func (s Settings) Bundle() Bundle {
	return Bundle{
		Root:          s.Resources,
		CacheDir:      s.CacheDir,
		ProjectConfig: s.Project.ConfigName,
		SourcesDir:    s.Toolchain.SourcesDir,
		SourceExt:     s.Toolchain.Extension,
	}
}

// Bundle describes where and how bundled resources are laid out.
type Bundle struct {
	// Root is a directory of loose files or a packed archive.
	Root string
	// CacheDir receives extracted packed bundles.
	CacheDir string
	// ProjectConfig is the config file name of project resources.
	ProjectConfig string
	// SourcesDir is the directory of single-file sources, relative to the root.
	SourcesDir string
	// SourceExt is appended to single-file ids without an extension.
	SourceExt string
}
