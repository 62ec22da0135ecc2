// Package compile walks an ontology and converts it into target-native
// artifacts: JSON Schema, pydantic model source, TypeScript interfaces,
// Salesforce metadata, HubSpot custom properties, and Markdown
// documentation.
//
// Every property's type-definition string flows through one shared
// typeexpr parse step; each target renders the resulting descriptor. The
// grammar is therefore implemented exactly once, not per target.
package compile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/bizspec/ontology"
	"github.com/c360studio/bizspec/render"
)

// ErrSegmentNotFound is returned when a compilation request names a
// segment the ontology does not declare. It is fatal for that request
// only; sibling targets in an orchestrated run still proceed.
var ErrSegmentNotFound = errors.New("segment not found")

// Compiler compiles one ontology. It is stateless across calls; the same
// instance serves any number of targets.
type Compiler struct {
	ont      *ontology.Ontology
	renderer render.Renderer
	logger   *slog.Logger
}

// New creates a Compiler. A nil logger falls back to slog.Default.
func New(ont *ontology.Ontology, renderer render.Renderer, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{ont: ont, renderer: renderer, logger: logger}
}

// segment resolves a named segment or fails with ErrSegmentNotFound.
func (c *Compiler) segment(name string) (*ontology.Segment, error) {
	seg := c.ont.Segment(name)
	if seg == nil {
		return nil, fmt.Errorf("%w: %s", ErrSegmentNotFound, name)
	}
	return seg, nil
}

// writeArtifact writes rendered content to path, creating parent
// directories as needed.
func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
