// Package generate drives the pipeline from a loaded rule document to
// filter-list files in the destination directory.
package generate

import (
	"time"

	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/output"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/render"
	"github.com/ChristianVerhoeven/adGuardHomeLists/pkg/rules"
)

// CombinedName is the name of the aggregated list containing every rule set.
const CombinedName = "fullList"

// Config controls a generation run.
type Config struct {
	// Source is the marker written into each list header.
	Source string

	// Strict surfaces a note for every rule skipped due to an
	// unrecognized action. The default is to drop such rules silently.
	Strict bool

	// Manifest writes a manifest.yaml into the destination describing the
	// run.
	Manifest bool

	// Now overrides the generation clock, for tests.
	Now func() time.Time

	// Note receives diagnostic messages, e.g. strict-mode warnings.
	Note func(format string, args ...any)
}

// Generator renders and writes all lists for a document.
type Generator struct {
	cnf      *Config
	renderer *render.Renderer
	writer   *output.Writer
}

// NewGenerator builds a Generator writing through w.
func NewGenerator(w *output.Writer, cnf *Config) *Generator {
	if cnf == nil {
		cnf = &Config{}
	}
	return &Generator{
		cnf:      cnf,
		renderer: &render.Renderer{Source: cnf.Source, Now: cnf.Now},
		writer:   w,
	}
}

// ListSummary reports what was written for one list file.
type ListSummary struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Rules   int    `json:"rules"`
	Skipped int    `json:"skipped,omitempty"`
}

// Run renders every rule set in document order and writes the combined list
// followed by one file per rule set. There is no rollback: when a write
// fails, files written earlier in the run are left in place.
func (g *Generator) Run(doc *rules.Document) ([]ListSummary, error) {
	sets := doc.Sets()
	blocks := make([]render.Block, 0, len(sets))
	summaries := make([]ListSummary, 0, len(sets)+1)

	var combined []string
	var totalRules, totalSkipped int
	for _, set := range sets {
		block, skipped := g.renderer.Render(set)
		if g.cnf.Strict && g.cnf.Note != nil {
			for _, s := range skipped {
				g.cnf.Note("skipped rule %d in %s: unrecognized action %q (url: %s)",
					s.Index, s.Set, s.Action, s.URL)
			}
		}
		blocks = append(blocks, block)
		combined = append(combined, block.Lines...)
		written := len(set.Rules) - len(skipped)
		totalRules += written
		totalSkipped += len(skipped)
		summaries = append(summaries, ListSummary{
			Name:    set.Name,
			Rules:   written,
			Skipped: len(skipped),
		})
	}

	combinedPath, err := g.writer.WriteList(CombinedName, combined)
	if err != nil {
		return nil, err
	}
	summaries = append([]ListSummary{{
		Name:    CombinedName,
		File:    combinedPath,
		Rules:   totalRules,
		Skipped: totalSkipped,
	}}, summaries...)

	for i, block := range blocks {
		path, err := g.writer.WriteList(block.Name, block.Lines)
		if err != nil {
			return nil, err
		}
		summaries[i+1].File = path
	}

	if g.cnf.Manifest {
		if err := g.writeManifest(summaries); err != nil {
			return nil, err
		}
	}

	return summaries, nil
}

func (g *Generator) writeManifest(summaries []ListSummary) error {
	now := g.cnf.Now
	if now == nil {
		now = time.Now
	}
	m := output.Manifest{
		Generated: now(),
		Source:    g.cnf.Source,
		Lists:     make([]output.ManifestEntry, len(summaries)),
	}
	for i, s := range summaries {
		m.Lists[i] = output.ManifestEntry{
			Name:    s.Name,
			File:    s.File,
			Rules:   s.Rules,
			Skipped: s.Skipped,
		}
	}
	return g.writer.WriteManifest(m)
}
