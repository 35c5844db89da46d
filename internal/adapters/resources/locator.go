// Package resources resolves package-relative resource ids to paths inside the installed bundle.
package resources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	kilnfs "go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxSuggestions caps the resource names listed in not-found errors.
const maxSuggestions = 10

var _ ports.ResourceLocator = (*Locator)(nil)

// Locator implements ports.ResourceLocator over a bundle directory or a packed bundle archive.
type Locator struct {
	walker *kilnfs.Walker
	hasher ports.Hasher

	// mu serializes extraction of packed bundles.
	mu sync.Mutex
}

// NewLocator creates a new Locator.
func NewLocator(walker *kilnfs.Walker, hasher ports.Hasher) *Locator {
	return &Locator{walker: walker, hasher: hasher}
}

// Locate maps id to an absolute location inside bundle.
//
// Project ids name either the project directory or its config file. Source ids name a file
// in the bundle's sources directory; ids without an extension get bundle.SourceExt appended.
func (l *Locator) Locate(
	ctx context.Context,
	bundle domain.Bundle,
	kind domain.ResourceKind,
	id string,
) (domain.ResourceLocation, error) {
	root, err := l.bundleRoot(ctx, bundle)
	if err != nil {
		return domain.ResourceLocation{}, err
	}

	rel, err := cleanID(id)
	if err != nil {
		return domain.ResourceLocation{}, err
	}

	switch kind {
	case domain.ResourceProject:
		return l.locateProject(root, bundle, rel, id)
	case domain.ResourceSourceFile:
		return l.locateSource(root, bundle, rel, id)
	default:
		return domain.ResourceLocation{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidRequest, "unknown resource kind"), "kind", kind.String())
	}
}

func (l *Locator) locateProject(root string, bundle domain.Bundle, rel, id string) (domain.ResourceLocation, error) {
	configName := bundle.ProjectConfig
	if configName == "" {
		configName = domain.ProjectConfigName
	}

	path := filepath.Join(root, rel)
	projectDir := path
	if filepath.Base(path) == configName {
		projectDir = filepath.Dir(path)
	}
	configFile := filepath.Join(projectDir, configName)

	if err := requireFile(configFile); err != nil {
		return domain.ResourceLocation{}, l.notFound(err, "project config", configFile, id,
			l.availableProjects(root, configName))
	}

	srcDir := filepath.Join(projectDir, domain.ProjectSourceDirName)
	if err := requireDir(srcDir); err != nil {
		return domain.ResourceLocation{}, l.notFound(err, "project source directory", srcDir, id, nil)
	}

	return domain.ProjectLocation(projectDir, configFile), nil
}

func (l *Locator) locateSource(root string, bundle domain.Bundle, rel, id string) (domain.ResourceLocation, error) {
	if filepath.Ext(rel) == "" && bundle.SourceExt != "" {
		rel += bundle.SourceExt
	}

	sourcesDir := filepath.Join(root, bundle.SourcesDir)
	sourceFile := filepath.Join(sourcesDir, rel)

	if err := requireFile(sourceFile); err != nil {
		return domain.ResourceLocation{}, l.notFound(err, "source file", sourceFile, id,
			l.availableSources(sourcesDir))
	}

	return domain.SourceFileLocation(sourceFile), nil
}

// notFound classifies a stat failure. Missing paths become ErrResourceNotFound and
// anything else is reported as is.
func (l *Locator) notFound(cause error, what, path, id string, available []string) error {
	if !errors.Is(cause, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(cause, "failed to inspect "+what), "path", path)
	}

	msg := what + " not found: " + path
	if len(available) > 0 {
		msg += " (available: " + strings.Join(available, ", ") + ")"
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrResourceNotFound, msg), "resource", id), "path", path)
}

func (l *Locator) availableProjects(root, configName string) []string {
	var names []string
	for path := range l.walker.WalkFiles(root, nil) {
		if filepath.Base(path) != configName {
			continue
		}
		if rel, err := filepath.Rel(root, filepath.Dir(path)); err == nil && rel != "." {
			names = append(names, filepath.ToSlash(rel))
		}
	}
	return truncate(names)
}

func (l *Locator) availableSources(sourcesDir string) []string {
	var names []string
	for path := range l.walker.WalkFiles(sourcesDir, nil) {
		if rel, err := filepath.Rel(sourcesDir, path); err == nil {
			names = append(names, filepath.ToSlash(rel))
		}
	}
	return truncate(names)
}

func truncate(names []string) []string {
	sort.Strings(names)
	if len(names) > maxSuggestions {
		names = append(names[:maxSuggestions:maxSuggestions], "...")
	}
	return names
}

// cleanID rejects ids that are absolute or escape the bundle root.
func cleanID(id string) (string, error) {
	if id == "" {
		return "", zerr.Wrap(domain.ErrInvalidRequest, "resource id is required")
	}

	rel := filepath.Clean(filepath.FromSlash(id))
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || !filepath.IsLocal(rel) {
		return "", zerr.With(
			zerr.Wrap(domain.ErrResourceNotFound, "resource id must be relative to the bundle: "+id),
			"resource", id)
	}
	return rel, nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return zerr.Wrap(fs.ErrNotExist, "is a directory")
	}
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return zerr.Wrap(fs.ErrNotExist, "not a directory")
	}
	return nil
}
