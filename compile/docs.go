package compile

import (
	"path/filepath"
	"slices"

	"github.com/c360studio/bizspec/ontology"
)

// StageDoc is one journey stage for the documentation target.
type StageDoc struct {
	Name           string
	Duration       string
	Touchpoints    []string
	SuccessMetrics []string
}

// SegmentDoc is the binding context for one segment's documentation.
type SegmentDoc struct {
	Name          string
	Description   string
	Properties    []PropertyDoc
	Constraints   []string
	JourneyStages []StageDoc
}

// Markdown compiles the ontology to Markdown documentation: one combined
// document plus one document per segment, written under outputDir.
func (c *Compiler) Markdown(outputDir string) error {
	segments := make([]SegmentDoc, 0, len(c.ont.Segments))
	for _, name := range c.ont.SegmentNames() {
		segments = append(segments, segmentDoc(c.ont.Segments[name]))
	}

	var campaigns []CampaignBinding
	for _, name := range c.ont.CampaignNames() {
		camp := c.ont.Campaigns[name]
		campaigns = append(campaigns, CampaignBinding{
			Name:         name,
			OwnerTeam:    metadataString(camp.Metadata, "owner_team"),
			CampaignType: metadataString(camp.Metadata, "campaign_type"),
		})
	}

	var scoring *ScoringBinding
	if c.ont.LeadScoring != nil {
		scoring = &ScoringBinding{
			Name:   c.ont.LeadScoring.Name,
			Inputs: propertyDocs(c.ont.LeadScoring.Inputs),
			Output: propertyDocs(c.ont.LeadScoring.Output),
		}
	}

	combined, err := c.renderer.Render("ontology_docs", map[string]any{
		"Segments":    segments,
		"Campaigns":   campaigns,
		"LeadScoring": scoring,
	})
	if err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(outputDir, "ontology_documentation.md"), combined); err != nil {
		return err
	}

	for _, doc := range segments {
		content, err := c.renderer.Render("segment_docs", doc)
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, doc.Name+"_documentation.md")
		if err := writeArtifact(path, content); err != nil {
			return err
		}
	}

	return nil
}

func segmentDoc(seg *ontology.Segment) SegmentDoc {
	doc := SegmentDoc{
		Name:        seg.Name,
		Description: seg.Description,
		Properties:  propertyDocs(seg.Properties),
		Constraints: seg.Constraints,
	}

	stageNames := make([]string, 0, len(seg.JourneyStages))
	for name := range seg.JourneyStages {
		stageNames = append(stageNames, name)
	}
	slices.Sort(stageNames)
	for _, name := range stageNames {
		stage := seg.JourneyStages[name]
		doc.JourneyStages = append(doc.JourneyStages, StageDoc{
			Name:           name,
			Duration:       stage.Duration,
			Touchpoints:    stage.Touchpoints,
			SuccessMetrics: stage.SuccessMetrics,
		})
	}

	return doc
}
