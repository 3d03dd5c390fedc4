package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/parcelgen/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SubdivisionSettings
}

// ComparisonResult holds the subdivision tree and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Root          *Parcel
	Report        Report
	LeafCount     int
	TotalLeafArea float64
	AreaError     float64 // |input area - total leaf area|
	MinLeafArea   float64
	MaxLeafArea   float64
	Anomalies     int
}

// CompareScenarios subdivides the same boundary under each scenario and
// returns the results in scenario order. This shows how the bounding-box and
// orientation intersection tests diverge on a given input.
func CompareScenarios(scenarios []ComparisonScenario, boundary model.Outline) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	inputArea := boundary.Area()

	for _, scenario := range scenarios {
		pr := New(scenario.Settings)
		root := NewParcel("0", boundary, pr.Settings.PointTolerance)
		report := pr.Subdivide(root, scenario.Settings.Depth)

		leaves := root.Leaves()
		total := 0.0
		minArea, maxArea := math.Inf(1), 0.0
		for _, l := range leaves {
			a := l.Area()
			total += a
			minArea = math.Min(minArea, a)
			maxArea = math.Max(maxArea, a)
		}
		if len(leaves) == 0 {
			minArea = 0
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Root:          root,
			Report:        report,
			LeafCount:     len(leaves),
			TotalLeafArea: total,
			AreaError:     math.Abs(inputArea - total),
			MinLeafArea:   minArea,
			MaxLeafArea:   maxArea,
			Anomalies:     len(report.Anomalies),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.SubdivisionSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: the other intersection test
	alt := baseSettings
	if baseSettings.Intersection == model.IntersectionOrientation {
		alt.Intersection = model.IntersectionBoundingBox
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Bounding-box Intersection",
			Settings: alt,
		})
	} else {
		alt.Intersection = model.IntersectionOrientation
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Orientation Intersection",
			Settings: alt,
		})
	}

	// Scenario: one level deeper
	deeper := baseSettings
	deeper.Depth = baseSettings.Depth + 1
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Depth %d", deeper.Depth),
		Settings: deeper,
	})

	// Scenario: one level shallower
	if baseSettings.Depth > 1 {
		shallower := baseSettings
		shallower.Depth = baseSettings.Depth - 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Depth %d", shallower.Depth),
			Settings: shallower,
		})
	}

	return scenarios
}
