package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot is one recorded diagram.
type Snapshot struct {
	ID      string    `yaml:"id" json:"id"`
	Name    string    `yaml:"name" json:"name"`
	Version string    `yaml:"version" json:"version"`
	File    string    `yaml:"file" json:"file"`
	Format  string    `yaml:"format,omitempty" json:"format,omitempty"`
	Created time.Time `yaml:"created" json:"created"`
}

// Manifest tracks recorded diagram snapshots and which two versions are
// compared by a diff.
type Manifest struct {
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// Load reads a manifest from path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddSnapshot records s and makes its version current. A snapshot with the
// same name and version is replaced in place, keeping its ID. Re-recording
// the current version leaves the previous pointer alone.
func (m *Manifest) AddSnapshot(s Snapshot) Snapshot {
	if m.CurrentVersion != "" && m.CurrentVersion != s.Version {
		m.PreviousVersion = m.CurrentVersion
	}
	m.CurrentVersion = s.Version
	if s.Created.IsZero() {
		s.Created = time.Now().UTC()
	}

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			if s.ID == "" {
				s.ID = m.Snapshots[i].ID
			}
			m.Snapshots[i] = s
			return s
		}
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.Snapshots = append(m.Snapshots, s)
	return s
}

// SnapshotFile returns the file recorded for version, or "" when none is.
// The most recent entry wins when several names share a version.
func (m *Manifest) SnapshotFile(version string) string {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].Version == version {
			return m.Snapshots[i].File
		}
	}
	return ""
}
