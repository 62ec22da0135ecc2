// Package ontology defines the in-memory document model for a business
// ontology: customer segments, marketing campaigns, an optional
// lead-scoring model, and free-form type declarations, populated from YAML
// documents.
package ontology

import "slices"

// Segment is a named customer category with declared properties and
// business constraints. Property values are either type-definition strings
// (see the typeexpr package) or nested mappings with a "properties" key.
type Segment struct {
	Name          string                   `yaml:"-"`
	Properties    map[string]any           `yaml:"properties"`
	Constraints   []string                 `yaml:"constraints,omitempty"`
	JourneyStages map[string]*JourneyStage `yaml:"journey_stages,omitempty"`
	Description   string                   `yaml:"description,omitempty"`
}

// JourneyStage describes one stage of the customer journey declared on a
// segment.
type JourneyStage struct {
	Name           string   `yaml:"-"`
	Duration       string   `yaml:"duration"`
	Touchpoints    []string `yaml:"touchpoints"`
	SuccessMetrics []string `yaml:"success_metrics"`
	Description    string   `yaml:"description,omitempty"`
}

// Campaign is a named marketing initiative. Metadata is free-form, with
// three conventionally-required keys enforced by the validator: owner_team,
// campaign_type and target_audience.
type Campaign struct {
	Name        string         `yaml:"-"`
	Metadata    map[string]any `yaml:"metadata"`
	Components  map[string]any `yaml:"components"`
	Constraints []string       `yaml:"constraints,omitempty"`
	Description string         `yaml:"description,omitempty"`
}

// LeadScoringModel declares scoring inputs, the output shape, and optional
// weights and thresholds. An ontology holds at most one.
type LeadScoringModel struct {
	Name         string             `yaml:"name,omitempty"`
	Inputs       map[string]any     `yaml:"inputs"`
	Output       map[string]any     `yaml:"output"`
	Weights      map[string]float64 `yaml:"weights,omitempty"`
	Thresholds   map[string]int     `yaml:"thresholds,omitempty"`
	SpecialRules []string           `yaml:"special_rules,omitempty"`
}

// Ontology is the aggregate root. It is constructed empty and populated by
// a one-shot file parse or an incremental directory merge. It is not safe
// for concurrent merges.
type Ontology struct {
	Segments    map[string]*Segment  `yaml:"segments,omitempty"`
	Campaigns   map[string]*Campaign `yaml:"campaigns,omitempty"`
	LeadScoring *LeadScoringModel    `yaml:"lead_scoring,omitempty"`
	Types       map[string]any       `yaml:"types,omitempty"`
}

// New returns an empty ontology ready to be merged into.
func New() *Ontology {
	return &Ontology{
		Segments:  make(map[string]*Segment),
		Campaigns: make(map[string]*Campaign),
		Types:     make(map[string]any),
	}
}

// Segment returns the named segment, or nil when absent.
func (o *Ontology) Segment(name string) *Segment {
	return o.Segments[name]
}

// Campaign returns the named campaign, or nil when absent.
func (o *Ontology) Campaign(name string) *Campaign {
	return o.Campaigns[name]
}

// SegmentNames returns all segment names in sorted order.
func (o *Ontology) SegmentNames() []string {
	return sortedNames(o.Segments)
}

// CampaignNames returns all campaign names in sorted order.
func (o *Ontology) CampaignNames() []string {
	return sortedNames(o.Campaigns)
}

// TypeNames returns all free-form type declaration names in sorted order.
func (o *Ontology) TypeNames() []string {
	return sortedNames(o.Types)
}

// Merge folds another ontology into this one. Mapping merges are shallow
// and last-write-wins per key; the lead-scoring slot is replaced wholesale
// when the other ontology declares one.
func (o *Ontology) Merge(other *Ontology) {
	for name, seg := range other.Segments {
		o.Segments[name] = seg
	}
	for name, c := range other.Campaigns {
		o.Campaigns[name] = c
	}
	for name, t := range other.Types {
		o.Types[name] = t
	}
	if other.LeadScoring != nil {
		o.LeadScoring = other.LeadScoring
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
