package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/region"
)

// DXF layer names.
const (
	LayerBoundary = "BOUNDARY"
	LayerLots     = "LOTS"
	LayerRoads    = "ROADS"
	LayerLabels   = "LABELS"
)

// ExportDXF writes region boundaries and lots as closed polylines, roads as
// lines and lot names as text, each on its own layer. Boundaries are written
// first in region order.
func ExportDXF(path string, plan *region.Plan) error {
	if plan == nil || len(plan.Regions) == 0 {
		return fmt.Errorf("no regions to export")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerBoundary, color.White},
		{LayerLots, color.Cyan},
		{LayerRoads, color.Red},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerBoundary); err != nil {
		return err
	}
	for _, r := range plan.Regions {
		if _, err := d.LwPolyline(true, vertices(r.Boundary)...); err != nil {
			return fmt.Errorf("region %q: %w", r.Spec.Name, err)
		}
	}

	lots := plan.Lots()
	if err := d.ChangeLayer(LayerLots); err != nil {
		return err
	}
	for _, l := range lots {
		if _, err := d.LwPolyline(true, vertices(l.Boundary)...); err != nil {
			return fmt.Errorf("lot %q: %w", l.Name, err)
		}
	}

	if err := d.ChangeLayer(LayerRoads); err != nil {
		return err
	}
	for _, road := range plan.Roads {
		if _, err := d.Line(road.Start.X, road.Start.Y, 0, road.End.X, road.End.Y, 0); err != nil {
			return fmt.Errorf("road %s-%s: %w", road.From, road.To, err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	for _, l := range lots {
		h := l.Height / 8
		if h <= 0 {
			continue
		}
		if _, err := d.Text(l.Name, l.Centroid.X, l.Centroid.Y, 0, h); err != nil {
			return fmt.Errorf("lot label %q: %w", l.Name, err)
		}
	}

	return d.SaveAs(path)
}

func vertices(o model.Outline) [][]float64 {
	v := make([][]float64, len(o))
	for i, p := range o {
		v[i] = []float64{p.X, p.Y}
	}
	return v
}
