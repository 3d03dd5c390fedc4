package region

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/golang/glog"

	"github.com/piwi3910/parcelgen/internal/engine"
	"github.com/piwi3910/parcelgen/internal/model"
)

// ErrInvalidRegion is returned for a region with neither a boundary nor
// enough points to generate one.
var ErrInvalidRegion = errors.New("invalid region")

// Region is one subdivided region of a plan.
type Region struct {
	Spec     model.RegionSpec
	Boundary model.Outline
	Root     *engine.Parcel
	Report   engine.Report
	Lots     []model.Lot
}

// Plan is the result of building every region of a project.
type Plan struct {
	Regions []Region
	Roads   []model.Road
	Report  engine.Report
}

// Lots returns the lots of all regions in region order.
func (p *Plan) Lots() []model.Lot {
	var lots []model.Lot
	for _, r := range p.Regions {
		lots = append(lots, r.Lots...)
	}
	return lots
}

// BuildPlan creates one root parcel per spec, from its boundary or a
// generated outline, subdivides each to settings.Depth and links the regions
// with roads.
func BuildPlan(rng *rand.Rand, specs []model.RegionSpec, settings model.SubdivisionSettings) (*Plan, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no regions: %w", ErrInvalidRegion)
	}

	pr := engine.New(settings)
	plan := &Plan{}
	for i, spec := range specs {
		boundary := spec.Boundary
		if len(boundary) == 0 {
			if spec.NumPoints < 3 || spec.Range <= 0 {
				return nil, fmt.Errorf("region %q: %d points, range %.2f: %w",
					spec.Name, spec.NumPoints, spec.Range, ErrInvalidRegion)
			}
			boundary = GeneratePolygon(rng, spec.Center, spec.Range, spec.NumPoints)
		}

		root := engine.NewParcel(fmt.Sprintf("%d", i), boundary, pr.Settings.PointTolerance)
		report := pr.Subdivide(root, settings.Depth)
		lots := engine.CollectLots(root, spec.Name)
		glog.V(1).Infof("region %q: %d lots, area %.2f", spec.Name, len(lots), root.Area())

		plan.Regions = append(plan.Regions, Region{
			Spec:     spec,
			Boundary: root.Points,
			Root:     root,
			Report:   report,
			Lots:     lots,
		})
		plan.Report.Merge(report)
	}

	plan.Roads = LinkRegions(plan.Regions, settings.MaxRoadDistance)
	glog.Infof("plan: %d regions, %d lots, %d roads", len(plan.Regions), len(plan.Lots()), len(plan.Roads))
	return plan, nil
}
