package domain

import "path/filepath"

const (
	// KilnDirName is the name of the internal working directory.
	KilnDirName = ".kiln"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// BundlesDirName is the name of the directory packed bundles are extracted into.
	BundlesDirName = "bundles"

	// BuildDirName is the name of the default output directory for compiled tools.
	BuildDirName = "build"

	// KilnFileName is the name of the kiln configuration file.
	KilnFileName = "kiln.yaml"

	// ResourcesDirName is the bundle directory looked up next to the kiln executable.
	ResourcesDirName = "resources"

	// ProjectConfigName is the config file at the root of a bundled project.
	ProjectConfigName = "platformio.ini"

	// ProjectSourceDirName is the source directory that must sit next to the project config.
	ProjectSourceDirName = "src"

	// DefaultTargetKey is the line prefix that declares the project's default build targets.
	DefaultTargetKey = "default_envs ="

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for relocated executables (rwxr-xr-x).
	ExecPerm = 0o755
)

// DefaultCachePath returns the default cache root.
// It joins .kiln and cache.
func DefaultCachePath() string {
	return filepath.Join(KilnDirName, CacheDirName)
}

// DefaultOutputPath returns the default output directory for compiled tools.
// It joins .kiln and build.
func DefaultOutputPath() string {
	return filepath.Join(KilnDirName, BuildDirName)
}

// ProjectBuildRoot returns the directory holding one build directory per target.
func ProjectBuildRoot(projectDir string) string {
	return filepath.Join(projectDir, ".pio", "build")
}

// ProjectBuildDir returns the directory the build tool writes a target's artifacts into.
func ProjectBuildDir(projectDir, target string) string {
	return filepath.Join(ProjectBuildRoot(projectDir), target)
}
