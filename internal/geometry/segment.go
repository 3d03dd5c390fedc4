package geometry

import (
	"math"

	"github.com/piwi3910/parcelgen/internal/model"
)

// Epsilon is the relative tolerance used by the intersection and containment tests.
const Epsilon = 1e-9

// Segment is a directed line segment in the horizontal plane.
type Segment struct {
	Start model.Point2D `json:"start"`
	End   model.Point2D `json:"end"`
}

func NewSegment(start, end model.Point2D) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the Euclidean distance from Start to End.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() model.Point2D {
	return s.Start.Midpoint(s.End)
}

// Reverse returns the segment with its endpoints swapped.
func (s Segment) Reverse() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Extend returns the segment lengthened by margin at both ends.
func (s Segment) Extend(margin float64) Segment {
	l := s.Length()
	if l == 0 {
		return s
	}
	d := s.End.Sub(s.Start).Scale(margin / l)
	return Segment{Start: s.Start.Sub(d), End: s.End.Add(d)}
}

// Coefficients returns a, b, c of the line a*x + b*y = c through the segment.
func (s Segment) Coefficients() (a, b, c float64) {
	a = s.End.Y - s.Start.Y
	b = s.Start.X - s.End.X
	c = a*s.Start.X + b*s.Start.Y
	return a, b, c
}

// IntersectionPoint solves for the crossing of the two infinite lines.
// ok is false when the lines are parallel.
func (s Segment) IntersectionPoint(o Segment) (p model.Point2D, ok bool) {
	a1, b1, c1 := s.Coefficients()
	a2, b2, c2 := o.Coefficients()
	det := a1*b2 - a2*b1
	scale := (math.Abs(a1) + math.Abs(b1)) * (math.Abs(a2) + math.Abs(b2))
	if scale == 0 || math.Abs(det) <= Epsilon*scale {
		return model.Point2D{}, false
	}
	return model.Point2D{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}, true
}

// Intersects is the bounding-box test: the lines must cross and the crossing
// must fall inside both segments' axis-aligned boxes.
func (s Segment) Intersects(o Segment) bool {
	p, ok := s.IntersectionPoint(o)
	if !ok {
		return false
	}
	return s.Contains(p) && o.Contains(p)
}

// IntersectsOrientation is the straddle test: each segment's endpoints lie on
// opposite sides of (or on) the other's line. Collinear segments never intersect.
func (s Segment) IntersectsOrientation(o Segment) bool {
	if _, ok := s.IntersectionPoint(o); !ok {
		return false
	}
	tol := Epsilon * (s.Length() + o.Length()) * (s.Length() + o.Length())
	d1 := sign(Cross(s.Start, s.End, o.Start), tol)
	d2 := sign(Cross(s.Start, s.End, o.End), tol)
	d3 := sign(Cross(o.Start, o.End, s.Start), tol)
	d4 := sign(Cross(o.Start, o.End, s.End), tol)
	return d1*d2 <= 0 && d3*d4 <= 0
}

// IntersectsMode dispatches on the configured intersection test.
func (s Segment) IntersectsMode(o Segment, mode model.IntersectionMode) bool {
	if mode == model.IntersectionOrientation {
		return s.IntersectsOrientation(o)
	}
	return s.Intersects(o)
}

// Contains reports whether p lies inside the segment's axis-aligned box.
func (s Segment) Contains(p model.Point2D) bool {
	tol := Epsilon * (1 + s.Length())
	minX, maxX := math.Min(s.Start.X, s.End.X), math.Max(s.Start.X, s.End.X)
	minY, maxY := math.Min(s.Start.Y, s.End.Y), math.Max(s.Start.Y, s.End.Y)
	return p.X >= minX-tol && p.X <= maxX+tol && p.Y >= minY-tol && p.Y <= maxY+tol
}

// Param returns the position of p projected onto the segment, 0 at Start and 1 at End.
func (s Segment) Param(p model.Point2D) float64 {
	d := s.End.Sub(s.Start)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return 0
	}
	v := p.Sub(s.Start)
	return (v.X*d.X + v.Y*d.Y) / l2
}

// ProjectPoint returns the orthogonal projection of p onto the segment's line.
func (s Segment) ProjectPoint(p model.Point2D) model.Point2D {
	t := s.Param(p)
	return s.Start.Add(s.End.Sub(s.Start).Scale(t))
}

// Cross returns the z component of (b-a) x (c-a). Positive when c is left of a->b.
func Cross(a, b, c model.Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func sign(v, tol float64) int {
	switch {
	case v > tol:
		return 1
	case v < -tol:
		return -1
	default:
		return 0
	}
}

// SegmentsFromRing connects consecutive points, wrapping last to first.
func SegmentsFromRing(points []model.Point2D) []Segment {
	n := len(points)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, n)
	for i := range points {
		segs[i] = NewSegment(points[i], points[(i+1)%n])
	}
	return segs
}
