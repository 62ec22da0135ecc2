package compile

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/bizspec/ontology"
	"github.com/c360studio/bizspec/render"
)

func testOntology(t *testing.T) *ontology.Ontology {
	t.Helper()

	ont := ontology.New()
	ont.Segments["EnterpriseCustomer"] = &ontology.Segment{
		Name:        "EnterpriseCustomer",
		Description: "Large accounts with dedicated success teams",
		Properties: map[string]any{
			"companySize":   `enum["small", "medium", "large"]`,
			"annualRevenue": "range(100K, 10M)",
			"channels":      `list[enum["email", "phone"]]`,
			"isActive":      "boolean",
			"employeeCount": "int",
			"healthScore":   "float",
			"renewalDate":   "datetime",
			"industry":      "string",
		},
		Constraints: []string{"annualRevenue > 100K requires dedicated CSM"},
		JourneyStages: map[string]*ontology.JourneyStage{
			"onboarding": {
				Name:           "onboarding",
				Duration:       "30 days",
				Touchpoints:    []string{"kickoff call"},
				SuccessMetrics: []string{"time to first value"},
			},
		},
	}
	ont.Segments["SMBCustomer"] = &ontology.Segment{
		Name: "SMBCustomer",
		Properties: map[string]any{
			"companySize": `enum["micro", "small"]`,
		},
	}
	ont.Campaigns["ProductLaunch"] = &ontology.Campaign{
		Name: "ProductLaunch",
		Metadata: map[string]any{
			"owner_team":      "Marketing",
			"campaign_type":   "awareness",
			"target_audience": "EnterpriseCustomer",
		},
		Components: map[string]any{
			"email": map[string]any{"cadence": "weekly"},
		},
	}
	ont.LeadScoring = &ontology.LeadScoringModel{
		Name:   "DefaultLeadScoring",
		Inputs: map[string]any{"engagement": "range(0, 100)"},
		Output: map[string]any{"score": "int(0, 100)"},
	}
	ont.Types = map[string]any{
		"Address": map[string]any{
			"properties": map[string]any{
				"city":    "string",
				"country": "string",
			},
		},
	}
	return ont
}

func testCompiler(t *testing.T) *Compiler {
	t.Helper()

	renderer, err := render.NewTemplateRenderer()
	require.NoError(t, err)
	return New(testOntology(t), renderer, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestJSONSchemaWholeOntology(t *testing.T) {
	c := testCompiler(t)

	schema, err := c.JSONSchema("")
	require.NoError(t, err)

	assert.Equal(t, jsonSchemaDraft, schema["$schema"])
	assert.Equal(t, "Business Ontology Schema", schema["title"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	require.Len(t, props, 2)

	seg, ok := props["EnterpriseCustomer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", seg["type"])

	segProps := seg["properties"].(map[string]any)

	size := segProps["companySize"].(map[string]any)
	assert.Equal(t, "string", size["type"])
	assert.Equal(t, []any{"small", "medium", "large"}, size["enum"])

	revenue := segProps["annualRevenue"].(map[string]any)
	assert.Equal(t, "number", revenue["type"])
	assert.Equal(t, 100_000.0, revenue["minimum"])
	assert.Equal(t, 10_000_000.0, revenue["maximum"])

	channels := segProps["channels"].(map[string]any)
	assert.Equal(t, "array", channels["type"])
	items := channels["items"].(map[string]any)
	assert.Equal(t, []any{"email", "phone"}, items["enum"])

	assert.Equal(t, "boolean", segProps["isActive"].(map[string]any)["type"])
	assert.Equal(t, "integer", segProps["employeeCount"].(map[string]any)["type"])
	assert.Equal(t, "number", segProps["healthScore"].(map[string]any)["type"])

	renewal := segProps["renewalDate"].(map[string]any)
	assert.Equal(t, "string", renewal["type"])
	assert.Equal(t, "date-time", renewal["format"])
}

func TestJSONSchemaSingleSegment(t *testing.T) {
	c := testCompiler(t)

	schema, err := c.JSONSchema("SMBCustomer")
	require.NoError(t, err)

	assert.Equal(t, "SMBCustomer Schema", schema["title"])
	props := schema["properties"].(map[string]any)
	require.Len(t, props, 1)
	assert.Contains(t, props, "companySize")
}

func TestJSONSchemaUnknownSegment(t *testing.T) {
	c := testCompiler(t)

	_, err := c.JSONSchema("NoSuchSegment")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
	assert.Contains(t, err.Error(), "NoSuchSegment")
}

func TestJSONSchemaMarshals(t *testing.T) {
	c := testCompiler(t)

	schema, err := c.JSONSchema("")
	require.NoError(t, err)

	_, err = json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
}

func TestPydantic(t *testing.T) {
	c := testCompiler(t)

	code, err := c.Pydantic("")
	require.NoError(t, err)

	assert.Contains(t, code, "class EnterpriseCustomer(BaseModel):")
	assert.Contains(t, code, `companySize: Literal["small", "medium", "large"]`)
	assert.Contains(t, code, "annualRevenue: float")
	assert.Contains(t, code, `channels: List[Literal["email", "phone"]]`)
	assert.Contains(t, code, "isActive: bool")
	assert.Contains(t, code, "employeeCount: int")
	assert.Contains(t, code, "renewalDate: datetime")
	assert.Contains(t, code, "industry: str")
	assert.Contains(t, code, "class Address(BaseModel):")
	assert.Contains(t, code, "CAMPAIGNS")
	assert.Contains(t, code, "ProductLaunch")
	assert.Contains(t, code, "LEAD_SCORING_INPUTS")
}

func TestPydanticSingleSegment(t *testing.T) {
	c := testCompiler(t)

	code, err := c.Pydantic("SMBCustomer")
	require.NoError(t, err)

	assert.Contains(t, code, "class SMBCustomer(BaseModel):")
	assert.NotContains(t, code, "EnterpriseCustomer")
}

func TestTypeScript(t *testing.T) {
	c := testCompiler(t)

	code, err := c.TypeScript("")
	require.NoError(t, err)

	assert.Contains(t, code, "export interface EnterpriseCustomer {")
	assert.Contains(t, code, `companySize: "small" | "medium" | "large";`)
	assert.Contains(t, code, "annualRevenue: number;")
	assert.Contains(t, code, `channels: ("email" | "phone")[];`)
	assert.Contains(t, code, "isActive: boolean;")
	assert.Contains(t, code, "renewalDate: string;")
}

func TestSalesforce(t *testing.T) {
	c := testCompiler(t)
	dir := t.TempDir()

	require.NoError(t, c.Salesforce(dir))

	objectPath := filepath.Join(dir, "objects", "EnterpriseCustomer", "EnterpriseCustomer.object-meta.xml")
	data, err := os.ReadFile(objectPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "<CustomObject")
	assert.Contains(t, content, "<fullName>companySize__c</fullName>")
	assert.Contains(t, content, "<type>Picklist</type>")
	assert.Contains(t, content, "<type>Checkbox</type>")
	assert.Contains(t, content, "<type>DateTime</type>")

	rulePath := filepath.Join(dir, "validationRules", "EnterpriseCustomer",
		"EnterpriseCustomer_ValidationRule.validationRule-meta.xml")
	data, err = os.ReadFile(rulePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "annualRevenue > 100K requires dedicated CSM")

	// Segments without constraints get no validation rule file.
	_, err = os.Stat(filepath.Join(dir, "validationRules", "SMBCustomer"))
	assert.True(t, os.IsNotExist(err))
}

func TestHubSpot(t *testing.T) {
	c := testCompiler(t)
	dir := t.TempDir()

	require.NoError(t, c.HubSpot(dir))

	data, err := os.ReadFile(filepath.Join(dir, "custom_properties.json"))
	require.NoError(t, err)

	var props []HubSpotProperty
	require.NoError(t, json.Unmarshal(data, &props))
	require.NotEmpty(t, props)

	byName := make(map[string]HubSpotProperty, len(props))
	for _, p := range props {
		byName[p.Name] = p
	}

	size := byName["companySize"]
	assert.Equal(t, "enumeration", size.Type)
	assert.Equal(t, "CompanySize", size.Label)
	assert.Equal(t, hubspotGroup, size.GroupName)
	require.Len(t, size.Options, 3)
	assert.Equal(t, "small", size.Options[0].Value)

	assert.Equal(t, "boolean", byName["isActive"].Type)
	assert.Equal(t, "number", byName["employeeCount"].Type)
	assert.Equal(t, "datetime", byName["renewalDate"].Type)
	assert.Equal(t, "string", byName["industry"].Type)
}

func TestMarkdown(t *testing.T) {
	c := testCompiler(t)
	dir := t.TempDir()

	require.NoError(t, c.Markdown(dir))

	data, err := os.ReadFile(filepath.Join(dir, "ontology_documentation.md"))
	require.NoError(t, err)
	combined := string(data)
	assert.Contains(t, combined, "EnterpriseCustomer")
	assert.Contains(t, combined, "ProductLaunch")
	assert.Contains(t, combined, "DefaultLeadScoring")

	data, err = os.ReadFile(filepath.Join(dir, "EnterpriseCustomer_documentation.md"))
	require.NoError(t, err)
	segDoc := string(data)
	assert.Contains(t, segDoc, "companySize")
	assert.Contains(t, segDoc, "onboarding")
	assert.Contains(t, segDoc, "kickoff call")
}

func TestTargetsSorted(t *testing.T) {
	targets := Targets()
	require.Len(t, targets, 6)

	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = target.Name
	}
	assert.Equal(t, []string{
		"hubspot", "json-schema", "markdown", "pydantic", "salesforce", "typescript",
	}, names)
}

func TestLookupTarget(t *testing.T) {
	target, ok := LookupTarget("json-schema")
	require.True(t, ok)
	assert.Equal(t, "json-schema", target.Name)

	_, ok = LookupTarget("cobol")
	assert.False(t, ok)
}

func TestAllSkipsUnknownTargets(t *testing.T) {
	c := testCompiler(t)
	dir := t.TempDir()

	err := c.All([]string{"json-schema", "cobol", "typescript"}, dir, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "json-schema", "schema.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "typescript", "interfaces.ts"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "cobol"))
	assert.True(t, os.IsNotExist(err))
}

func TestAllCollectsFailures(t *testing.T) {
	c := testCompiler(t)
	dir := t.TempDir()

	err := c.All([]string{"json-schema", "pydantic"}, dir, "NoSuchSegment")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSegmentNotFound)

	// Both failures surface, not just the first.
	assert.Equal(t, 2, strings.Count(err.Error(), "NoSuchSegment"))
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Company Size", fieldLabel("company_size"))
	assert.Equal(t, "Score", fieldLabel("score"))
	assert.Equal(t, "Annual Revenue Usd", fieldLabel("annual_revenue_usd"))
}
