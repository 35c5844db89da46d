package domain

// ResourceKind distinguishes the two bundled resource layouts.
type ResourceKind int

const (
	// ResourceProject is a project directory holding a config file and a src subdirectory.
	ResourceProject ResourceKind = iota
	// ResourceSourceFile is a single named source file in the bundle's sources directory.
	ResourceSourceFile
)

// String returns the kind name.
func (k ResourceKind) String() string {
	if k == ResourceSourceFile {
		return "source-file"
	}
	return "project"
}

// ResourceLocation is the resolved, absolute location of a bundled resource.
// ProjectDir and ConfigFile are set for ResourceProject; SourceFile for ResourceSourceFile.
type ResourceLocation struct {
	Kind       ResourceKind
	ProjectDir string
	ConfigFile string
	SourceFile string
}

// ProjectLocation builds a project-style location.
func ProjectLocation(projectDir, configFile string) ResourceLocation {
	return ResourceLocation{Kind: ResourceProject, ProjectDir: projectDir, ConfigFile: configFile}
}

// SourceFileLocation builds a single-file location.
func SourceFileLocation(sourceFile string) ResourceLocation {
	return ResourceLocation{Kind: ResourceSourceFile, SourceFile: sourceFile}
}

// Path returns the primary path of the location: the project directory or the source file.
func (l ResourceLocation) Path() string {
	if l.Kind == ResourceSourceFile {
		return l.SourceFile
	}
	return l.ProjectDir
}
