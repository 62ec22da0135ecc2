package ontology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
segments:
  EnterpriseCustomer:
    properties:
      companySize: enum["1000-5000", "5000+"]
      industry: enum["financial", "healthcare", "retail"]
      annualRevenue: range(10M, 1B+)
    constraints:
      - Healthcare companies require HIPAA compliance
    journey_stages:
      awareness:
        duration: 2 weeks
        touchpoints: [webinar, whitepaper]
        success_metrics: [reach]
campaigns:
  ProductLaunch:
    metadata:
      owner_team: product_marketing
      campaign_type: product_launch
      target_audience: [EnterpriseCustomer]
    components:
      announcement:
        channels: [blog, email]
lead_scoring:
  name: default
  inputs:
    engagement: int
  output:
    score: int(0, 100)
types:
  ContactInfo:
    properties:
      email: string
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ontology.yaml", sampleDoc)

	ont, err := FromFile(path)
	require.NoError(t, err)

	seg := ont.Segment("EnterpriseCustomer")
	require.NotNil(t, seg)
	assert.Equal(t, "EnterpriseCustomer", seg.Name)
	assert.Len(t, seg.Properties, 3)
	assert.Equal(t, `range(10M, 1B+)`, seg.Properties["annualRevenue"])
	require.Contains(t, seg.JourneyStages, "awareness")
	assert.Equal(t, "awareness", seg.JourneyStages["awareness"].Name)

	camp := ont.Campaign("ProductLaunch")
	require.NotNil(t, camp)
	assert.Equal(t, "ProductLaunch", camp.Name)
	assert.Equal(t, "product_marketing", camp.Metadata["owner_team"])

	require.NotNil(t, ont.LeadScoring)
	assert.Equal(t, "int(0, 100)", ont.LeadScoring.Output["score"])

	assert.Equal(t, []string{"ContactInfo"}, ont.TypeNames())
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yaml", "segments: [unclosed")
	_, err := FromFile(path)
	assert.Error(t, err)
}

func TestFromFile_NullEntryBodies(t *testing.T) {
	// Entries declared with no body decode to nil pointers; they must
	// load as empty declarations, not crash name injection.
	path := writeFile(t, t.TempDir(), "sparse.yaml", `
segments:
  PlaceholderSegment:
  Sparse:
    journey_stages:
      onboarding:
campaigns:
  PlaceholderCampaign:
`)

	ont, err := FromFile(path)
	require.NoError(t, err)

	seg := ont.Segment("PlaceholderSegment")
	require.NotNil(t, seg)
	assert.Equal(t, "PlaceholderSegment", seg.Name)
	assert.Empty(t, seg.Properties)

	sparse := ont.Segment("Sparse")
	require.NotNil(t, sparse)
	require.Contains(t, sparse.JourneyStages, "onboarding")
	assert.Equal(t, "onboarding", sparse.JourneyStages["onboarding"].Name)

	camp := ont.Campaign("PlaceholderCampaign")
	require.NotNil(t, camp)
	assert.Equal(t, "PlaceholderCampaign", camp.Name)
}

func TestFromDirectory_SkipsNothingOnSparseFiles(t *testing.T) {
	// A sparse file is legal input and must merge alongside full ones.
	dir := t.TempDir()
	writeFile(t, dir, "full.yaml", `
segments:
  Valid:
    properties:
      industry: string
`)
	writeFile(t, dir, "sparse.yaml", `
segments:
  PlaceholderSegment:
`)

	ont, err := FromDirectory(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"PlaceholderSegment", "Valid"}, ont.SegmentNames())
}

func TestFromDirectory_MergesDistinctSegments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "customers/a.yaml", `
segments:
  SmallBusiness:
    properties:
      companySize: enum["1-10"]
`)
	writeFile(t, dir, "customers/b.yaml", `
segments:
  Enterprise:
    properties:
      companySize: enum["5000+"]
`)

	ont, err := FromDirectory(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Enterprise", "SmallBusiness"}, ont.SegmentNames())
}

func TestFromDirectory_LastWriteWinsPerSegment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-first.yaml", `
segments:
  Enterprise:
    properties:
      companySize: enum["1000-5000"]
    constraints:
      - first version
`)
	writeFile(t, dir, "02-second.yaml", `
segments:
  Enterprise:
    properties:
      industry: enum["retail"]
`)

	ont, err := FromDirectory(dir, nil)
	require.NoError(t, err)

	seg := ont.Segment("Enterprise")
	require.NotNil(t, seg)
	// The later file's definition wins entirely; no field-level merge.
	assert.NotContains(t, seg.Properties, "companySize")
	assert.Contains(t, seg.Properties, "industry")
	assert.Empty(t, seg.Constraints)
}

func TestFromDirectory_SkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", `
segments:
  Valid:
    properties:
      industry: string
`)
	writeFile(t, dir, "bad.yaml", "{{not yaml")

	ont, err := FromDirectory(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Valid"}, ont.SegmentNames())
}

func TestFromDirectory_LeadScoringReplacedWholesale(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01.yaml", `
lead_scoring:
  name: first
  inputs:
    engagement: int
  output:
    score: int(0, 100)
`)
	writeFile(t, dir, "02.yaml", `
lead_scoring:
  name: second
  inputs:
    fit: int
  output:
    score: int(0, 100)
`)

	ont, err := FromDirectory(dir, nil)
	require.NoError(t, err)

	require.NotNil(t, ont.LeadScoring)
	assert.Equal(t, "second", ont.LeadScoring.Name)
	assert.NotContains(t, ont.LeadScoring.Inputs, "engagement")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ontology.yaml", sampleDoc)

	ont, err := FromFile(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "nested", "saved.yaml")
	require.NoError(t, ont.Save(out))

	reloaded, err := FromFile(out)
	require.NoError(t, err)
	assert.Equal(t, ont.SegmentNames(), reloaded.SegmentNames())
	assert.Equal(t, ont.CampaignNames(), reloaded.CampaignNames())
}

func TestLoad_FileOrDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ontology.yaml", sampleDoc)

	fromFile, err := Load(path, nil)
	require.NoError(t, err)
	assert.Len(t, fromFile.Segments, 1)

	fromDir, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Len(t, fromDir.Segments, 1)
}
