package geometry

import (
	"math"

	"github.com/piwi3910/parcelgen/internal/model"
)

// ConvexHull returns the counter-clockwise convex hull of points using gift
// wrapping, starting at the leftmost (then lowest) point. Collinear points on
// hull edges are dropped. Returns nil when fewer than three points remain or
// the hull has no area.
func ConvexHull(points []model.Point2D) model.Outline {
	if len(points) < 3 {
		return nil
	}

	start := 0
	for i, p := range points {
		if p.X < points[start].X || (p.X == points[start].X && p.Y < points[start].Y) {
			start = i
		}
	}

	min, max := model.Outline(points).BoundingBox()
	extent := math.Max(max.X-min.X, max.Y-min.Y)
	if extent == 0 {
		return nil
	}
	tol := Epsilon * extent * extent

	hull := model.Outline{points[start]}
	current := points[start]
	for len(hull) <= len(points) {
		next := current
		for _, p := range points {
			if p == current {
				continue
			}
			if next == current {
				next = p
				continue
			}
			c := Cross(current, next, p)
			if c < -tol || (c <= tol && current.Distance(p) > current.Distance(next)) {
				next = p
			}
		}
		if next == current || next == points[start] {
			break
		}
		hull = append(hull, next)
		current = next
	}

	if len(hull) < 3 || hull.Area() <= tol {
		return nil
	}
	return hull
}
