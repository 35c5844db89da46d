package resources_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/resources"
	"go.trai.ch/kiln/internal/core/domain"
)

var bundleFiles = map[string]string{
	"projects/blink/platformio.ini":          "[platformio]\ndefault_envs = uno\n",
	"projects/blink/src/main.cpp":            "void setup() {}\n",
	"projects/nosrc/platformio.ini":          "[env:uno]\n",
	"internal_cpp_sources/serial_monitor.cpp": "int main() { return 0; }\n",
	"internal_cpp_sources/tools/flash.cc":     "int main() { return 1; }\n",
}

func newLocator() *resources.Locator {
	return resources.NewLocator(fs.NewWalker(), fs.NewHasher())
}

func writeBundleDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range bundleFiles {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

func testBundle(root, cacheDir string) domain.Bundle {
	settings := domain.DefaultSettings()
	settings.Resources = root
	settings.CacheDir = cacheDir
	return settings.Bundle()
}

func sortedNames() []string {
	names := make([]string, 0, len(bundleFiles))
	for name := range bundleFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeZipBundle(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range sortedNames() {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(bundleFiles[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "resources.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func writeTarGzBundle(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, name := range sortedNames() {
		content := bundleFiles[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "resources.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestLocator_Locate_ProjectByDirectory(t *testing.T) {
	root := writeBundleDir(t)

	loc, err := newLocator().Locate(context.Background(), testBundle(root, t.TempDir()),
		domain.ResourceProject, "projects/blink")
	require.NoError(t, err)

	assert.Equal(t, domain.ResourceProject, loc.Kind)
	assert.Equal(t, filepath.Join(root, "projects", "blink"), loc.ProjectDir)
	assert.Equal(t, filepath.Join(root, "projects", "blink", "platformio.ini"), loc.ConfigFile)
	assert.Equal(t, loc.ProjectDir, loc.Path())
}

func TestLocator_Locate_ProjectByConfigFile(t *testing.T) {
	root := writeBundleDir(t)

	loc, err := newLocator().Locate(context.Background(), testBundle(root, t.TempDir()),
		domain.ResourceProject, "projects/blink/platformio.ini")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "projects", "blink"), loc.ProjectDir)
}

func TestLocator_Locate_ProjectMissingConfig(t *testing.T) {
	root := writeBundleDir(t)

	_, err := newLocator().Locate(context.Background(), testBundle(root, t.TempDir()),
		domain.ResourceProject, "projects/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
	assert.Equal(t, domain.KindResourceNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), filepath.Join(root, "projects", "missing", "platformio.ini"))
	assert.Contains(t, err.Error(), "projects/blink")
}

func TestLocator_Locate_ProjectMissingSourceDir(t *testing.T) {
	root := writeBundleDir(t)

	_, err := newLocator().Locate(context.Background(), testBundle(root, t.TempDir()),
		domain.ResourceProject, "projects/nosrc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
	assert.Contains(t, err.Error(), filepath.Join(root, "projects", "nosrc", "src"))
}

func TestLocator_Locate_SourceFile(t *testing.T) {
	root := writeBundleDir(t)
	bundle := testBundle(root, t.TempDir())

	tests := []struct {
		name string
		id   string
		want string
	}{
		{name: "default extension", id: "serial_monitor", want: "serial_monitor.cpp"},
		{name: "explicit extension", id: "serial_monitor.cpp", want: "serial_monitor.cpp"},
		{name: "nested with own extension", id: "tools/flash.cc", want: filepath.Join("tools", "flash.cc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := newLocator().Locate(context.Background(), bundle, domain.ResourceSourceFile, tt.id)
			require.NoError(t, err)
			assert.Equal(t, domain.ResourceSourceFile, loc.Kind)
			assert.Equal(t, filepath.Join(root, "internal_cpp_sources", tt.want), loc.SourceFile)
		})
	}
}

func TestLocator_Locate_SourceFileMissing(t *testing.T) {
	root := writeBundleDir(t)

	_, err := newLocator().Locate(context.Background(), testBundle(root, t.TempDir()),
		domain.ResourceSourceFile, "missing_tool")
	require.Error(t, err)
	assert.Equal(t, domain.KindResourceNotFound, domain.KindOf(err))
	assert.Contains(t, err.Error(), filepath.Join(root, "internal_cpp_sources", "missing_tool.cpp"))
	assert.Contains(t, err.Error(), "serial_monitor.cpp")
}

func TestLocator_Locate_RejectsEscapingIDs(t *testing.T) {
	root := writeBundleDir(t)
	bundle := testBundle(root, t.TempDir())

	for _, id := range []string{"../outside", "projects/../../outside", "/etc/passwd"} {
		t.Run(id, func(t *testing.T) {
			_, err := newLocator().Locate(context.Background(), bundle, domain.ResourceProject, id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
		})
	}
}

func TestLocator_Locate_MissingBundle(t *testing.T) {
	bundle := testBundle(filepath.Join(t.TempDir(), "nope"), t.TempDir())

	_, err := newLocator().Locate(context.Background(), bundle, domain.ResourceProject, "projects/blink")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
}

func TestLocator_Locate_NoBundleConfigured(t *testing.T) {
	_, err := newLocator().Locate(context.Background(), testBundle("", t.TempDir()),
		domain.ResourceProject, "projects/blink")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
}

func TestLocator_Locate_PackedBundles(t *testing.T) {
	tests := []struct {
		name  string
		write func(t *testing.T) string
	}{
		{name: "zip", write: writeZipBundle},
		{name: "tar.gz", write: writeTarGzBundle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := tt.write(t)
			cacheDir := t.TempDir()
			bundle := testBundle(archive, cacheDir)
			locator := newLocator()

			loc, err := locator.Locate(context.Background(), bundle, domain.ResourceProject, "projects/blink")
			require.NoError(t, err)

			bundlesDir := filepath.Join(cacheDir, domain.BundlesDirName)
			rel, err := filepath.Rel(bundlesDir, loc.ProjectDir)
			require.NoError(t, err)
			parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
			require.Len(t, parts, 2)
			assert.Len(t, parts[0], 16, "extraction directory is keyed by the bundle digest")
			assert.Equal(t, "projects/blink", parts[1])

			content, err := os.ReadFile(loc.ConfigFile)
			require.NoError(t, err)
			assert.Equal(t, bundleFiles["projects/blink/platformio.ini"], string(content))

			src, err := locator.Locate(context.Background(), bundle, domain.ResourceSourceFile, "serial_monitor")
			require.NoError(t, err)
			assert.FileExists(t, src.SourceFile)

			entries, err := os.ReadDir(bundlesDir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "packed bundle is extracted once and reused")
		})
	}
}

func TestLocator_Locate_UnsupportedBundle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.bin")
	require.NoError(t, os.WriteFile(path, []byte("definitely not an archive"), 0o600))

	_, err := newLocator().Locate(context.Background(), testBundle(path, t.TempDir()),
		domain.ResourceProject, "projects/blink")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedBundle))
	assert.Equal(t, domain.KindUnexpected, domain.KindOf(err))
}

func TestLocator_Locate_RejectsZipSlip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	path := filepath.Join(dir, "evil.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	cacheDir := t.TempDir()
	_, err = newLocator().Locate(context.Background(), testBundle(path, cacheDir),
		domain.ResourceProject, "projects/blink")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(cacheDir, domain.BundlesDirName, "escape.txt"))
}
