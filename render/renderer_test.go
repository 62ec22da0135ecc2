package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateRenderer(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, err = r.Render("no_such_template", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestRender_SegmentDocs(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	out, err := r.Render("segment_docs", map[string]any{
		"Name":        "EnterpriseCustomer",
		"Description": "Large accounts",
		"Properties": []map[string]any{
			{"Name": "companySize", "Definition": `enum["1000-5000", "5000+"]`},
		},
		"Constraints":   []string{"Healthcare requires HIPAA"},
		"JourneyStages": nil,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "# EnterpriseCustomer")
	assert.Contains(t, out, "Large accounts")
	assert.Contains(t, out, "| companySize |")
	assert.Contains(t, out, "- Healthcare requires HIPAA")
}

func TestRender_HubSpotJSON(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	out, err := r.Render("hubspot_properties", map[string]any{
		"Properties": []map[string]any{
			{"name": "industry", "type": "enumeration"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "industry"`)
}
