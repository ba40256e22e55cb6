package output

import (
	"time"

	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of the run manifest within the destination
// directory.
const ManifestName = "manifest.yaml"

// Manifest describes the outcome of one generation run.
type Manifest struct {
	Generated time.Time       `yaml:"generated"`
	Source    string          `yaml:"source"`
	Lists     []ManifestEntry `yaml:"lists"`
}

// ManifestEntry summarizes one written list file.
type ManifestEntry struct {
	Name    string `yaml:"name"`
	File    string `yaml:"file"`
	Rules   int    `yaml:"rules"`
	Skipped int    `yaml:"skipped,omitempty"`
}

// WriteManifest replaces the manifest file in the destination directory.
func (w *Writer) WriteManifest(m Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	if err := util.WriteFile(w.fsys, ManifestName, b, 0o644); err != nil {
		return &FilesystemError{Op: "write", Path: ManifestName, Err: err}
	}
	return nil
}
