package engine

import (
	"math"

	"github.com/golang/glog"

	"github.com/piwi3910/parcelgen/internal/model"
)

// CollectLots turns the leaves of a subdivided tree into lots. Leaves with a
// degenerate hull are skipped.
func CollectLots(root *Parcel, region string) []model.Lot {
	var lots []model.Lot
	for _, leaf := range root.Leaves() {
		centroid, err := leaf.FindCentroid()
		if err != nil {
			glog.V(1).Infof("skipping lot %s: %v", leaf.Name, err)
			continue
		}
		w, h := leaf.OBB.Rect.Width(), leaf.OBB.Rect.Height()
		lots = append(lots, model.Lot{
			ID:        leaf.ID,
			Name:      leaf.Name,
			Region:    region,
			Boundary:  append(model.Outline(nil), leaf.Points...),
			Centroid:  centroid,
			Area:      leaf.Area(),
			Width:     math.Max(w, h),
			Height:    math.Min(w, h),
			Iteration: leaf.Iteration,
		})
	}
	return lots
}

// TotalArea sums lot areas.
func TotalArea(lots []model.Lot) float64 {
	var total float64
	for _, l := range lots {
		total += l.Area
	}
	return total
}
