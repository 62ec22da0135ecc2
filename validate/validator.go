package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/c360studio/bizspec/ontology"
	"github.com/c360studio/bizspec/typeexpr"
)

var (
	pascalCase = regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*$`)
	camelCase  = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)
)

// scoreConvention is the historical shorthand required on the lead-scoring
// score output. It is a distinct mini-grammar from the typeexpr language
// and is matched as a literal substring, never parsed.
const scoreConvention = "int(0, 100)"

// requiredCampaignMetadata lists the metadata keys every campaign must
// declare.
var requiredCampaignMetadata = []string{"owner_team", "campaign_type", "target_audience"}

// requiredStageFields lists the fields every journey stage must declare.
var requiredStageFields = []string{"duration", "touchpoints", "success_metrics"}

// Validator runs checks over one ontology and accumulates findings.
type Validator struct {
	ont      *ontology.Ontology
	findings []Finding
}

// New creates a Validator over the given ontology.
func New(ont *ontology.Ontology) *Validator {
	return &Validator{ont: ont}
}

// ValidateAll runs every check pass in fixed order (segments, campaigns,
// lead scoring, types, constraints, journey stages) and returns the
// accumulated findings. Map iteration is in sorted name order so repeated
// runs produce identical output.
func (v *Validator) ValidateAll() []Finding {
	v.findings = nil

	v.checkSegments()
	v.checkCampaigns()
	v.checkLeadScoring()
	v.checkTypes()
	v.checkConstraints()
	v.checkJourneyStages()

	return v.findings
}

// Summary aggregates the findings of the last ValidateAll run.
func (v *Validator) Summary() Summary {
	return summarize(v.findings)
}

func (v *Validator) add(message, location string) {
	v.findings = append(v.findings, Finding{
		Message:  message,
		Severity: SeverityError,
		Location: location,
	})
}

func (v *Validator) checkSegments() {
	for _, name := range v.ont.SegmentNames() {
		seg := v.ont.Segments[name]
		loc := "segments." + name

		if !pascalCase.MatchString(name) {
			v.add(fmt.Sprintf("Segment name '%s' should be PascalCase", name), loc)
		}
		if len(seg.Properties) == 0 {
			v.add(fmt.Sprintf("Segment '%s' has no properties", name), loc)
		}
		for _, propName := range sortedAnyKeys(seg.Properties) {
			v.checkProperty(propName, seg.Properties[propName], loc)
		}
	}
}

func (v *Validator) checkCampaigns() {
	for _, name := range v.ont.CampaignNames() {
		c := v.ont.Campaigns[name]
		loc := "campaigns." + name

		if !pascalCase.MatchString(name) {
			v.add(fmt.Sprintf("Campaign name '%s' should be PascalCase", name), loc)
		}
		for _, key := range requiredCampaignMetadata {
			if _, ok := c.Metadata[key]; !ok {
				v.add(fmt.Sprintf("Campaign '%s' missing required metadata: %s", name, key), loc+".metadata")
			}
		}
		if len(c.Components) == 0 {
			v.add(fmt.Sprintf("Campaign '%s' has no components", name), loc)
		}
	}
}

func (v *Validator) checkLeadScoring() {
	scoring := v.ont.LeadScoring
	if scoring == nil {
		return
	}

	if len(scoring.Inputs) == 0 {
		v.add("Lead scoring model has no inputs", "lead_scoring")
	}
	if len(scoring.Output) == 0 {
		v.add("Lead scoring model has no output", "lead_scoring")
	}
	if def, ok := scoring.Output["score"].(string); ok {
		if !strings.Contains(def, scoreConvention) {
			v.add("Lead score should be int(0, 100)", "lead_scoring.output.score")
		}
	}
}

func (v *Validator) checkTypes() {
	for _, name := range v.ont.TypeNames() {
		loc := "types." + name

		if !pascalCase.MatchString(name) {
			v.add(fmt.Sprintf("Type name '%s' should be PascalCase", name), loc)
		}
		if def, ok := v.ont.Types[name].(map[string]any); ok {
			if props, ok := def["properties"].(map[string]any); ok {
				for _, propName := range sortedAnyKeys(props) {
					v.checkProperty(propName, props[propName], loc)
				}
			}
		}
	}
}

// checkProperty validates one property: the camelCase naming convention
// plus either the strict type-definition gate (string case) or the
// recursive complex shape (mapping case).
func (v *Validator) checkProperty(name string, def any, location string) {
	loc := location + "." + name

	if !camelCase.MatchString(name) {
		v.add(fmt.Sprintf("Property name '%s' should be camelCase", name), loc)
	}

	switch d := def.(type) {
	case string:
		for _, problem := range typeexpr.Check(d) {
			v.add(problem, loc)
		}
	case map[string]any:
		props, ok := d["properties"].(map[string]any)
		if !ok {
			v.add("Complex property must have 'properties' field", loc)
			return
		}
		for _, subName := range sortedAnyKeys(props) {
			v.checkProperty(subName, props[subName], loc+".properties")
		}
	}
}

func (v *Validator) checkConstraints() {
	for _, name := range v.ont.SegmentNames() {
		seg := v.ont.Segments[name]
		for i, constraint := range seg.Constraints {
			if strings.TrimSpace(constraint) == "" {
				v.add("Constraint cannot be empty",
					fmt.Sprintf("segments.%s.constraints[%d]", name, i))
			}
		}
	}
}

func (v *Validator) checkJourneyStages() {
	for _, name := range v.ont.SegmentNames() {
		seg := v.ont.Segments[name]
		for _, stageName := range sortedStageKeys(seg.JourneyStages) {
			stage := seg.JourneyStages[stageName]
			loc := fmt.Sprintf("segments.%s.journey_stages.%s", name, stageName)

			if !camelCase.MatchString(stageName) {
				v.add(fmt.Sprintf("Journey stage name '%s' should be camelCase", stageName), loc)
			}
			if stage.Duration == "" {
				v.add(fmt.Sprintf("Journey stage '%s' missing required field: duration", stageName), loc)
			}
			if len(stage.Touchpoints) == 0 {
				v.add(fmt.Sprintf("Journey stage '%s' missing required field: touchpoints", stageName), loc)
			}
			if len(stage.SuccessMetrics) == 0 {
				v.add(fmt.Sprintf("Journey stage '%s' missing required field: success_metrics", stageName), loc)
			}
		}
	}
}

// ValidateData validates a concrete data record against the named
// segment's declared properties. Missing declared properties are errors;
// values of present properties are checked against their type definitions;
// keys not declared on the segment are warnings only, so forward-compatible
// producers can carry extra fields without failing validation.
func (v *Validator) ValidateData(data map[string]any, segmentName string) []Finding {
	seg := v.ont.Segment(segmentName)
	if seg == nil {
		return []Finding{{
			Message:  fmt.Sprintf("Segment '%s' not found", segmentName),
			Severity: SeverityError,
		}}
	}

	var findings []Finding

	for _, propName := range sortedAnyKeys(seg.Properties) {
		value, ok := data[propName]
		if !ok {
			findings = append(findings, Finding{
				Message:  fmt.Sprintf("Missing required property: %s", propName),
				Severity: SeverityError,
				Location: "data." + segmentName,
			})
			continue
		}

		if err := typeexpr.CheckValue(value, seg.Properties[propName], propName); err != nil {
			findings = append(findings, valueFinding(err))
		}
	}

	for _, key := range sortedAnyKeys(data) {
		if _, declared := seg.Properties[key]; !declared {
			findings = append(findings, Finding{
				Message:  fmt.Sprintf("Unknown property: %s", key),
				Severity: SeverityWarning,
				Location: "data." + segmentName,
			})
		}
	}

	return findings
}

func valueFinding(err error) Finding {
	if verr, ok := err.(*typeexpr.ValueError); ok {
		return Finding{
			Message:  verr.Message,
			Severity: SeverityError,
			Location: "data." + verr.Path,
		}
	}
	return Finding{Message: err.Error(), Severity: SeverityError}
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func sortedStageKeys(m map[string]*ontology.JourneyStage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
