package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/classdiagramgen/pkg/action/generate"
	"github.com/cmmoran/classdiagramgen/pkg/manifest"
	"github.com/cmmoran/classdiagramgen/pkg/parser"
)

// ErrNoSnapshots is returned by Diff until two versions are recorded.
var ErrNoSnapshots = errors.New("no current/previous snapshots recorded")

// Record generates a diagram for version and records it in the manifest.
// The diagram is written next to the manifest as name-version.ext, so every
// version keeps its own file.
func Record(ctx context.Context, opts *parser.Options, manifestPath, name, version string) (manifest.Snapshot, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return manifest.Snapshot{}, err
	}

	f, err := opts.RenderFormat()
	if err != nil {
		return manifest.Snapshot{}, err
	}
	run := *opts
	run.OutFile = filepath.Join(filepath.Dir(manifestPath), fmt.Sprintf("%s-%s%s", name, version, f.Extension()))

	res, err := generate.Run(ctx, &run)
	if err != nil {
		return manifest.Snapshot{}, err
	}

	s := m.AddSnapshot(manifest.Snapshot{
		Name:    name,
		Version: version,
		File:    res.OutFile,
		Format:  string(f),
	})
	if err := m.Save(manifestPath); err != nil {
		return manifest.Snapshot{}, err
	}
	return s, nil
}

// List returns the manifest with every recorded snapshot.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// Diff returns a textual diff from the previous to the current snapshot.
// Identical diagrams yield "".
func Diff(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", ErrNoSnapshots
	}

	currentPath := m.SnapshotFile(m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousVersion)
	if currentPath == "" || previousPath == "" {
		return "", fmt.Errorf("%w: snapshot files not found in manifest", ErrNoSnapshots)
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", fmt.Errorf("read current snapshot: %w", err)
	}
	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", fmt.Errorf("read previous snapshot: %w", err)
	}

	return cmp.Diff(string(previous), string(current)), nil
}
