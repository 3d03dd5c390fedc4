package region

import (
	"math"

	"github.com/piwi3910/parcelgen/internal/geometry"
	"github.com/piwi3910/parcelgen/internal/model"
)

// ShortestRoute returns the shortest segment between a vertex of a and a
// vertex of b. Ties keep the first pair found. ok is false if either set is empty.
func ShortestRoute(a, b []model.Point2D) (route geometry.Segment, ok bool) {
	best := math.Inf(1)
	for _, p := range a {
		for _, q := range b {
			if d := p.Distance(q); d < best {
				best = d
				route = geometry.NewSegment(p, q)
				ok = true
			}
		}
	}
	return route, ok
}

// LinkRegions computes a road for every unordered pair of regions whose
// shortest route is below maxDistance.
func LinkRegions(regions []Region, maxDistance float64) []model.Road {
	var roads []model.Road
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			route, ok := ShortestRoute(regions[i].Boundary, regions[j].Boundary)
			if !ok || route.Length() >= maxDistance {
				continue
			}
			roads = append(roads, model.Road{
				From:   regions[i].Spec.Name,
				To:     regions[j].Spec.Name,
				Start:  route.Start,
				End:    route.End,
				Length: route.Length(),
			})
		}
	}
	return roads
}
