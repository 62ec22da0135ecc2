package compile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/bizspec/typeexpr"
)

// SalesforceField is one custom-field descriptor for the Salesforce
// metadata target.
type SalesforceField struct {
	Name      string
	Label     string
	Type      string
	Length    int
	Precision int
	Scale     int
	Values    []string
}

// HubSpotOption is one picklist option of an enumeration property.
type HubSpotOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// HubSpotProperty is one custom-property descriptor for the HubSpot
// target.
type HubSpotProperty struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	GroupName string          `json:"groupName"`
	Options   []HubSpotOption `json:"options,omitempty"`
}

// hubspotGroup is the fixed property group assigned to every generated
// property.
const hubspotGroup = "bizspec"

// Salesforce compiles the ontology to Salesforce metadata under
// outputDir: one custom-object descriptor per segment plus one
// validation-rule file per segment that declares constraints.
func (c *Compiler) Salesforce(outputDir string) error {
	for _, name := range c.ont.SegmentNames() {
		seg := c.ont.Segments[name]

		fields := make([]SalesforceField, 0, len(seg.Properties))
		for _, propName := range sortedKeys(seg.Properties) {
			field, err := salesforceField(propName, seg.Properties[propName])
			if err != nil {
				return fmt.Errorf("segment %s: %w", name, err)
			}
			fields = append(fields, field)
		}

		description := seg.Description
		if description == "" {
			description = "Custom object for " + name
		}

		content, err := c.renderer.Render("salesforce_object", map[string]any{
			"ObjectName":  name,
			"Description": description,
			"Fields":      fields,
		})
		if err != nil {
			return err
		}

		path := filepath.Join(outputDir, "objects", name, name+".object-meta.xml")
		if err := writeArtifact(path, content); err != nil {
			return err
		}
	}

	return c.salesforceValidationRules(outputDir)
}

func (c *Compiler) salesforceValidationRules(outputDir string) error {
	for _, name := range c.ont.SegmentNames() {
		seg := c.ont.Segments[name]
		if len(seg.Constraints) == 0 {
			continue
		}

		content, err := c.renderer.Render("salesforce_validation", map[string]any{
			"SegmentName": name,
			"Constraints": seg.Constraints,
		})
		if err != nil {
			return err
		}

		path := filepath.Join(outputDir, "validationRules", name,
			name+"_ValidationRule.validationRule-meta.xml")
		if err := writeArtifact(path, content); err != nil {
			return err
		}
	}
	return nil
}

// salesforceField maps one property to a Salesforce field descriptor.
// Anything outside the mapped kinds falls back to a generic Text field.
func salesforceField(name string, def any) (SalesforceField, error) {
	field := SalesforceField{
		Name:   name,
		Label:  fieldLabel(name),
		Type:   "Text",
		Length: 255,
	}

	expr, err := typeexpr.ParseDefinition(def)
	if err != nil {
		return field, fmt.Errorf("property %s: %w", name, err)
	}

	switch expr.Kind {
	case typeexpr.KindEnum:
		field.Type = "Picklist"
		field.Length = 0
		field.Values = expr.Enum
	case typeexpr.KindBoolean:
		field.Type = "Checkbox"
		field.Length = 0
	case typeexpr.KindInt:
		field.Type = "Number"
		field.Length = 0
		field.Precision = 18
	case typeexpr.KindFloat:
		field.Type = "Number"
		field.Length = 0
		field.Precision = 18
		field.Scale = 2
	case typeexpr.KindDatetime:
		field.Type = "DateTime"
		field.Length = 0
	}

	return field, nil
}

// HubSpot compiles every segment property into one custom-property
// descriptor list written as custom_properties.json under outputDir.
func (c *Compiler) HubSpot(outputDir string) error {
	var properties []HubSpotProperty

	for _, name := range c.ont.SegmentNames() {
		seg := c.ont.Segments[name]
		for _, propName := range sortedKeys(seg.Properties) {
			prop, err := hubspotProperty(propName, seg.Properties[propName])
			if err != nil {
				return fmt.Errorf("segment %s: %w", name, err)
			}
			properties = append(properties, prop)
		}
	}

	content, err := c.renderer.Render("hubspot_properties", map[string]any{
		"Properties": properties,
	})
	if err != nil {
		return err
	}

	return writeArtifact(filepath.Join(outputDir, "custom_properties.json"), content)
}

func hubspotProperty(name string, def any) (HubSpotProperty, error) {
	prop := HubSpotProperty{
		Name:      name,
		Label:     fieldLabel(name),
		Type:      "string",
		GroupName: hubspotGroup,
	}

	expr, err := typeexpr.ParseDefinition(def)
	if err != nil {
		return prop, fmt.Errorf("property %s: %w", name, err)
	}

	switch expr.Kind {
	case typeexpr.KindEnum:
		prop.Type = "enumeration"
		for _, v := range expr.Enum {
			prop.Options = append(prop.Options, HubSpotOption{Label: v, Value: v})
		}
	case typeexpr.KindBoolean:
		prop.Type = "boolean"
	case typeexpr.KindInt, typeexpr.KindFloat:
		prop.Type = "number"
	case typeexpr.KindDatetime:
		prop.Type = "datetime"
	}

	return prop, nil
}

// fieldLabel renders a human label from a property name: underscores
// become spaces and each word is title-cased.
func fieldLabel(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
