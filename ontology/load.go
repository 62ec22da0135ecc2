package ontology

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FromFile loads an ontology from a single YAML document. The document is
// a mapping with optional top-level keys segments, campaigns, lead_scoring
// and types; entry names are injected into the decoded values.
func FromFile(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ontology file: %w", err)
	}

	ont := New()
	if err := yaml.Unmarshal(data, ont); err != nil {
		return nil, fmt.Errorf("parse ontology file %s: %w", path, err)
	}

	// yaml.Unmarshal leaves nil maps for absent keys; New's maps are
	// replaced on decode, so restore the empty ones.
	if ont.Segments == nil {
		ont.Segments = make(map[string]*Segment)
	}
	if ont.Campaigns == nil {
		ont.Campaigns = make(map[string]*Campaign)
	}
	if ont.Types == nil {
		ont.Types = make(map[string]any)
	}

	// A null entry body ("PlaceholderSegment:" with nothing under it)
	// decodes to a nil pointer; materialize it so name injection and
	// later passes see an empty declaration instead of dereferencing nil.
	for name, seg := range ont.Segments {
		if seg == nil {
			seg = &Segment{}
			ont.Segments[name] = seg
		}
		seg.Name = name
		for stageName, stage := range seg.JourneyStages {
			if stage == nil {
				stage = &JourneyStage{}
				seg.JourneyStages[stageName] = stage
			}
			stage.Name = stageName
		}
	}
	for name, c := range ont.Campaigns {
		if c == nil {
			c = &Campaign{}
			ont.Campaigns[name] = c
		}
		c.Name = name
	}

	return ont, nil
}

// FromDirectory loads every *.yaml document under dir (recursively) and
// merges them into one ontology, in lexical path order. A file that fails
// to load is logged as a warning and skipped; the merge continues with the
// remaining files so one bad document never aborts the whole directory
// load.
func FromDirectory(dir string, logger *slog.Logger) (*Ontology, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("ontology directory: %w", err)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scan ontology directory: %w", err)
	}

	ont := New()
	for _, path := range matches {
		fileOnt, err := FromFile(path)
		if err != nil {
			logger.Warn("Skipping ontology file",
				"path", path,
				"error", err)
			continue
		}
		ont.Merge(fileOnt)
	}

	return ont, nil
}

// Load loads an ontology from a path that may be a single file or a
// directory tree.
func Load(path string, logger *slog.Logger) (*Ontology, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ontology path: %w", err)
	}
	if info.IsDir() {
		return FromDirectory(path, logger)
	}
	return FromFile(path)
}

// Save writes the ontology to a YAML file, creating parent directories as
// needed.
func (o *Ontology) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create ontology directory: %w", err)
	}

	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal ontology: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write ontology file: %w", err)
	}
	return nil
}
