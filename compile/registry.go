package compile

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

// Options carries the per-request parameters of one target run.
type Options struct {
	// Segment scopes the run to one named segment when the target
	// supports scoping; empty means the whole ontology.
	Segment string

	// OutputDir is the directory the target writes its artifacts under.
	OutputDir string
}

// RunFunc executes one target against a compiler.
type RunFunc func(c *Compiler, opts Options) error

// TargetInfo describes one registered output target.
type TargetInfo struct {
	// Name is the target identifier used on the command line.
	Name string

	// Description describes the produced artifact.
	Description string

	// Run produces the artifact.
	Run RunFunc
}

// targetRegistry maps target identifiers to their runners. Adding a
// target is additive: register it here and it becomes reachable from the
// orchestration layer and the CLI listing.
var targetRegistry = map[string]TargetInfo{
	"json-schema": {
		Name:        "json-schema",
		Description: "JSON Schema document (draft-07)",
		Run: func(c *Compiler, opts Options) error {
			schema, err := c.JSONSchema(opts.Segment)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			return writeArtifact(filepath.Join(opts.OutputDir, "schema.json"), string(data)+"\n")
		},
	},
	"pydantic": {
		Name:        "pydantic",
		Description: "pydantic model source",
		Run: func(c *Compiler, opts Options) error {
			code, err := c.Pydantic(opts.Segment)
			if err != nil {
				return err
			}
			return writeArtifact(filepath.Join(opts.OutputDir, "models.py"), code)
		},
	},
	"typescript": {
		Name:        "typescript",
		Description: "TypeScript interface declarations",
		Run: func(c *Compiler, opts Options) error {
			code, err := c.TypeScript(opts.Segment)
			if err != nil {
				return err
			}
			return writeArtifact(filepath.Join(opts.OutputDir, "interfaces.ts"), code)
		},
	},
	"salesforce": {
		Name:        "salesforce",
		Description: "Salesforce custom-object metadata",
		Run: func(c *Compiler, opts Options) error {
			return c.Salesforce(opts.OutputDir)
		},
	},
	"hubspot": {
		Name:        "hubspot",
		Description: "HubSpot custom-property descriptors",
		Run: func(c *Compiler, opts Options) error {
			return c.HubSpot(opts.OutputDir)
		},
	},
	"markdown": {
		Name:        "markdown",
		Description: "Markdown documentation set",
		Run: func(c *Compiler, opts Options) error {
			return c.Markdown(opts.OutputDir)
		},
	},
}

// LookupTarget returns the registered target for an identifier.
func LookupTarget(name string) (TargetInfo, bool) {
	t, ok := targetRegistry[name]
	return t, ok
}

// Targets returns all registered targets sorted by name.
func Targets() []TargetInfo {
	names := make([]string, 0, len(targetRegistry))
	for name := range targetRegistry {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]TargetInfo, 0, len(names))
	for _, name := range names {
		out = append(out, targetRegistry[name])
	}
	return out
}

// All compiles every requested target under outputDir/<target>.
// Unregistered identifiers are logged as warnings and skipped; a failing
// target does not abort its siblings. The joined error of all failures is
// returned once every target has been attempted.
func (c *Compiler) All(targetNames []string, outputDir, segment string) error {
	var errs []error

	for _, name := range targetNames {
		target, ok := LookupTarget(name)
		if !ok {
			c.logger.Warn("Unknown target format, skipping",
				"target", name)
			continue
		}

		opts := Options{Segment: segment, OutputDir: filepath.Join(outputDir, name)}
		if err := target.Run(c, opts); err != nil {
			errs = append(errs, fmt.Errorf("target %s: %w", name, err))
			continue
		}
		c.logger.Info("Compiled target",
			"target", name,
			"output", opts.OutputDir)
	}

	return errors.Join(errs...)
}
