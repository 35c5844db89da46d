package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
type Kilnfile struct {
	Version    string        `yaml:"version"`
	Resources  string        `yaml:"resources"`
	Cache      string        `yaml:"cache"`
	Output     string        `yaml:"output"`
	Timeout    string        `yaml:"timeout"`
	PlatformIO *ProjectDTO   `yaml:"platformio"`
	Toolchain  *ToolchainDTO `yaml:"toolchain"`
}

// ProjectDTO configures the project strategy.
type ProjectDTO struct {
	Executable  string            `yaml:"executable"`
	Config      string            `yaml:"config"`
	Artifacts   []string          `yaml:"artifacts"`
	BaseName    string            `yaml:"base_name"`
	Environment map[string]string `yaml:"environment"`
}

// ToolchainDTO configures the single-file strategy.
type ToolchainDTO struct {
	Candidates  []string          `yaml:"candidates"`
	Flags       *[]string         `yaml:"flags"`
	SourcesDir  string            `yaml:"sources_dir"`
	Extension   *string           `yaml:"extension"`
	Artifacts   []string          `yaml:"artifacts"`
	Environment map[string]string `yaml:"environment"`
}
