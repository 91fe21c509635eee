// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk summary written next to the deck after a build.
// It lets the researcher check what a deck was built from without
// re-running the pipeline.
type Manifest struct {
	GeneratedAt time.Time     `yaml:"generated_at"`
	InputDir    string        `yaml:"input_dir"`
	Deck        string        `yaml:"deck"`
	Strategy    string        `yaml:"strategy"`
	Records     int           `yaml:"records"`
	Documents   []ManifestDoc `yaml:"documents"`
}

// ManifestDoc summarizes one source document's contribution to the deck.
type ManifestDoc struct {
	Name    string `yaml:"name"`
	FileID  string `yaml:"file_id"`
	Records int    `yaml:"records"`
	Status  string `yaml:"status"`
}

// WriteManifest saves the manifest as YAML.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
