package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/parcelgen/internal/engine"
	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/region"
)

// RegionSummary is the per-region part of a JSON lot export.
type RegionSummary struct {
	Name     string         `json:"name"`
	Boundary model.Outline  `json:"boundary"`
	Area     float64        `json:"area"`
	Lots     int            `json:"lots"`
	Outcomes map[string]int `json:"outcomes"`
}

// PlanDocument is the JSON form of a built plan.
type PlanDocument struct {
	Regions []RegionSummary `json:"regions"`
	Lots    []model.Lot     `json:"lots"`
	Roads   []model.Road    `json:"roads"`
}

// NewPlanDocument summarises plan with outcome counts per region.
func NewPlanDocument(plan *region.Plan) PlanDocument {
	doc := PlanDocument{
		Lots:  plan.Lots(),
		Roads: plan.Roads,
	}
	for _, r := range plan.Regions {
		outcomes := map[string]int{}
		r.Root.Walk(func(p *engine.Parcel) bool {
			outcomes[p.Outcome.String()]++
			return true
		})
		doc.Regions = append(doc.Regions, RegionSummary{
			Name:     r.Spec.Name,
			Boundary: r.Boundary,
			Area:     roundTo(r.Root.Area(), 6),
			Lots:     len(r.Lots),
			Outcomes: outcomes,
		})
	}
	if doc.Roads == nil {
		doc.Roads = []model.Road{}
	}
	return doc
}

// ExportJSON writes the plan's regions, lots and roads as indented JSON.
func ExportJSON(path string, plan *region.Plan) error {
	if plan == nil || len(plan.Regions) == 0 {
		return fmt.Errorf("no regions to export")
	}
	data, err := json.MarshalIndent(NewPlanDocument(plan), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
