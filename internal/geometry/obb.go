package geometry

import (
	"math"

	"github.com/piwi3910/parcelgen/internal/model"
)

// Extremes holds the hull vertices that were topmost, bottommost, rightmost
// and leftmost in the frame of the winning OBB edge. They are original
// boundary points, never rotated copies.
type Extremes struct {
	Top    model.Point2D `json:"top"`
	Bottom model.Point2D `json:"bottom"`
	Right  model.Point2D `json:"right"`
	Left   model.Point2D `json:"left"`
}

// OBB is the minimum-area oriented bounding box of a point set together with
// its convex hull and the chosen cut line.
type OBB struct {
	Rect         Rectangle     `json:"rect"`
	Hull         model.Outline `json:"hull"`
	HullSegments []Segment     `json:"-"`
	Angle        float64       `json:"angle"` // Rotation of Rect's frame in radians
	Extremes     Extremes      `json:"extremes"`

	// CutHorizontal is false for a cut running top to bottom (halving the
	// width) and true for one running left to right (halving the height).
	CutHorizontal bool          `json:"cut_horizontal"`
	CutStart      model.Point2D `json:"cut_start"`
	CutEnd        model.Point2D `json:"cut_end"`
}

// MinimumOBB finds the minimum-area bounding rectangle of points by testing
// the axis-aligned box in the frame of each convex hull edge. ok is false for
// a degenerate hull.
func MinimumOBB(points []model.Point2D) (obb OBB, ok bool) {
	hull := ConvexHull(points)
	if hull == nil {
		return OBB{}, false
	}

	best := math.Inf(1)
	var bestMin, bestMax model.Point2D
	var bestAngle float64
	var bestExt Extremes

	rotated := make(model.Outline, len(hull))
	for i := range hull {
		edge := hull[(i+1)%len(hull)].Sub(hull[i])
		angle := math.Atan2(edge.Y, edge.X)
		for j, p := range hull {
			rotated[j] = p.Rotate(-angle)
		}
		min, max := rotated.BoundingBox()
		area := (max.X - min.X) * (max.Y - min.Y)
		if area < best*(1-Epsilon) {
			best = area
			bestMin, bestMax = min, max
			bestAngle = angle
			bestExt = extremes(hull, rotated)
		}
	}

	if best <= 0 || math.IsInf(best, 1) {
		return OBB{}, false
	}

	obb = OBB{
		Rect:         NewAxisAligned(bestMin, bestMax).Rotate(bestAngle),
		Hull:         hull,
		HullSegments: SegmentsFromRing(hull),
		Angle:        bestAngle,
		Extremes:     bestExt,
	}
	obb.CheckCutAxis()
	return obb, true
}

// extremes picks, for each direction, the first hull vertex in hull order
// whose rotated coordinate is extremal.
func extremes(hull, rotated model.Outline) Extremes {
	top, bottom, right, left := 0, 0, 0, 0
	min, max := rotated.BoundingBox()
	tol := Epsilon * (1 + math.Max(max.X-min.X, max.Y-min.Y))
	for i, p := range rotated {
		if p.Y > rotated[top].Y+tol {
			top = i
		}
		if p.Y < rotated[bottom].Y-tol {
			bottom = i
		}
		if p.X > rotated[right].X+tol {
			right = i
		}
		if p.X < rotated[left].X-tol {
			left = i
		}
	}
	return Extremes{Top: hull[top], Bottom: hull[bottom], Right: hull[right], Left: hull[left]}
}

// Area returns the rectangle area, 0 for a zero OBB.
func (o OBB) Area() float64 {
	return o.Rect.Area()
}

// Center returns the rectangle center.
func (o OBB) Center() model.Point2D {
	return o.Rect.Center()
}

// CheckCutAxis places the cut perpendicular to the longer side. A top edge at
// least as long as the right edge gives a vertical cut, so squares cut vertically.
func (o *OBB) CheckCutAxis() {
	top, right := o.Rect.Width(), o.Rect.Height()
	o.setCut(top < right*(1-Epsilon))
}

// SwapCutAxis flips the cut orientation.
func (o *OBB) SwapCutAxis() {
	o.setCut(!o.CutHorizontal)
}

func (o *OBB) setCut(horizontal bool) {
	o.CutHorizontal = horizontal
	if horizontal {
		o.CutStart = o.Rect.Left().Midpoint()
		o.CutEnd = o.Rect.Right().Midpoint()
	} else {
		o.CutStart = o.Rect.Top().Midpoint()
		o.CutEnd = o.Rect.Bottom().Midpoint()
	}
}

// CutSegment returns the cut line between the two side midpoints.
func (o OBB) CutSegment() Segment {
	return NewSegment(o.CutStart, o.CutEnd)
}

// WalkStarts returns the extremal points on either side of the cut: right and
// left for a vertical cut, top and bottom for a horizontal one.
func (o OBB) WalkStarts() (first, second model.Point2D) {
	if o.CutHorizontal {
		return o.Extremes.Top, o.Extremes.Bottom
	}
	return o.Extremes.Right, o.Extremes.Left
}
