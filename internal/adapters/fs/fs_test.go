package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/kiln/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) { //nolint:cyclop // Test complexity is acceptable
	// Create temp directory structure
	// tmp/
	//   .git/
	//     config
	//   .pio/
	//     build/firmware.elf
	//   ignored/
	//     file
	//   src/
	//     main.cpp
	//   platformio.ini

	tmpDir := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	write(".git/config", "git config")
	write(".pio/build/firmware.elf", "elf")
	write("ignored/file", "ignored content")
	write("src/main.cpp", "int main() {}")
	write("platformio.ini", "[env:uno]")

	walker := fs.NewWalker()
	ignores := []string{"ignored"}

	files := make(map[string]bool)
	for path := range walker.WalkFiles(tmpDir, ignores) {
		rel, err := filepath.Rel(tmpDir, path)
		if err != nil {
			t.Fatal(err)
		}
		files[filepath.ToSlash(rel)] = true
	}

	if files[".git/config"] {
		t.Error("expected .git/config to be skipped")
	}
	if files[".pio/build/firmware.elf"] {
		t.Error("expected .pio build output to be skipped")
	}
	if files["ignored/file"] {
		t.Error("expected ignored/file to be skipped")
	}
	if !files["src/main.cpp"] {
		t.Error("expected src/main.cpp to be found")
	}
	if !files["platformio.ini"] {
		t.Error("expected platformio.ini to be found")
	}
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("expected iteration to stop after one file, got %d", count)
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "artifact")
	if err := os.WriteFile(tmpFile, []byte("hello world"), 0o600); err != nil {
		t.Fatal(err)
	}

	hasher := fs.NewHasher()

	hash1, err := hasher.ComputeFileHash(tmpFile)
	if err != nil {
		t.Fatalf("ComputeFileHash failed: %v", err)
	}
	if len(hash1) != 16 {
		t.Errorf("expected 16 hex digits, got %q", hash1)
	}

	// Verify determinism
	hash2, err := hasher.ComputeFileHash(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 != hash2 {
		t.Error("expected deterministic hash")
	}

	if err := os.WriteFile(tmpFile, []byte("hello world!"), 0o600); err != nil {
		t.Fatal(err)
	}
	hash3, err := hasher.ComputeFileHash(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if hash1 == hash3 {
		t.Error("expected hash to change when content changes")
	}
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
