// Package scaffold creates the directory layout and starter documents for
// a new ontology project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// ontologyDirs are the category subdirectories created under ontology/.
var ontologyDirs = []string{
	"customers",
	"products",
	"marketing",
	"sales",
	"operations",
}

// projectDirs are the top-level directories of a scaffolded project.
var projectDirs = []string{
	"generated",
	"models",
	"tests",
}

const starterSegments = `segments:
  EnterpriseCustomer:
    description: "Large accounts with complex needs and dedicated success teams"
    properties:
      companySize: enum["small", "medium", "large", "enterprise"]
      industry: string
      annualRevenue: range(1M, 1B+)
      employeeCount: int
      isActive: boolean
      contractStart: datetime
      channels: list[enum["email", "phone", "in_person"]]
    constraints:
      - "annualRevenue > 10M requires dedicated account manager"
      - "contractStart must precede any renewal date"
    journey_stages:
      awareness:
        duration: "2 weeks"
        touchpoints:
          - "industry events"
          - "analyst reports"
        success_metrics:
          - "qualified meetings booked"
      evaluation:
        duration: "6 weeks"
        touchpoints:
          - "technical deep dive"
          - "security review"
        success_metrics:
          - "proof of concept completed"
`

const starterCampaigns = `campaigns:
  ProductLaunchCampaign:
    description: "Coordinated launch push across owned and paid channels"
    metadata:
      owner_team: "Product Marketing"
      campaign_type: "launch"
      target_audience: "EnterpriseCustomer"
    components:
      email:
        cadence: "weekly"
        audience: enum["prospects", "customers"]
      webinar:
        capacity: int
    constraints:
      - "launch emails require legal review"
`

// Init creates a new ontology project in a directory named projectName
// under the current directory. It refuses to touch a directory that
// already exists.
func Init(projectName string) error {
	if _, err := os.Stat(projectName); err == nil {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	for _, dir := range ontologyDirs {
		if err := os.MkdirAll(filepath.Join(projectName, "ontology", dir), 0755); err != nil {
			return fmt.Errorf("create project directory: %w", err)
		}
	}
	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(projectName, dir), 0755); err != nil {
			return fmt.Errorf("create project directory: %w", err)
		}
	}

	segmentsPath := filepath.Join(projectName, "ontology", "customers", "segments.yaml")
	if err := os.WriteFile(segmentsPath, []byte(starterSegments), 0644); err != nil {
		return fmt.Errorf("write starter segments: %w", err)
	}

	campaignsPath := filepath.Join(projectName, "ontology", "marketing", "campaigns.yaml")
	if err := os.WriteFile(campaignsPath, []byte(starterCampaigns), 0644); err != nil {
		return fmt.Errorf("write starter campaigns: %w", err)
	}

	return nil
}
