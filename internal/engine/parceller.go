package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/glog"

	"github.com/piwi3910/parcelgen/internal/geometry"
	"github.com/piwi3910/parcelgen/internal/model"
)

// cutMargin lengthens the cut line past the OBB sides so boundary points lying
// on the box are still hit.
const cutMargin = 1e-3

// Parceller splits parcels along the short axis of their oriented bounding box.
type Parceller struct {
	Settings model.SubdivisionSettings
}

func New(settings model.SubdivisionSettings) *Parceller {
	if settings.PointTolerance <= 0 {
		settings.PointTolerance = model.DefaultSettings().PointTolerance
	}
	return &Parceller{Settings: settings}
}

// hit is one crossing of the cut line with a boundary edge.
type hit struct {
	edge  int     // index of the boundary segment, or of the vertex for t == 0
	t     float64 // position along the edge
	s     float64 // position along the cut
	point model.Point2D
}

// Split performs one subdivision step on p. depth is the number of levels
// still allowed below p; at depth 0 or with a degenerate hull the parcel
// becomes a leaf. On success p gets exactly two children with Iteration
// depth-1. The returned error wraps ErrDegenerateSplit or ErrMalformedBoundary
// and matches p.Outcome.
func (pr *Parceller) Split(p *Parcel, depth int) error {
	p.Children = nil
	if depth <= 0 {
		p.Outcome = OutcomeLeaf
		return nil
	}
	if err := p.FindMinimumOBB(); err != nil {
		p.Outcome = OutcomeLeaf
		return nil
	}
	if p.OBB.Area() <= 0 {
		p.Outcome = OutcomeLeaf
		return nil
	}
	return pr.split(p, depth)
}

// split cuts p using its current OBB.
func (pr *Parceller) split(p *Parcel, depth int) error {
	children, err := pr.cut(p)
	if err != nil {
		if errors.Is(err, ErrMalformedBoundary) {
			p.Outcome = OutcomeMalformedBoundary
		} else {
			p.Outcome = OutcomeDegenerateSplit
		}
		glog.Warningf("split %s: %v", p.Name, err)
		return err
	}
	for _, c := range children {
		c.Iteration = depth - 1
	}
	p.Children = children
	p.Outcome = OutcomeSplit
	glog.V(3).Infof("split %s into %s (%.4f) and %s (%.4f)",
		p.Name, children[0].Name, children[0].Area(), children[1].Name, children[1].Area())
	return nil
}

func (pr *Parceller) cut(p *Parcel) ([]*Parcel, error) {
	tol := pr.Settings.PointTolerance

	hits := pr.findHits(p, p.OBB.CutSegment())
	if len(hits) < 2 {
		glog.V(1).Infof("parcel %s: %d cut intersections, swapping cut axis", p.Name, len(hits))
		p.OBB.SwapCutAxis()
		hits = pr.findHits(p, p.OBB.CutSegment())
	}
	if len(hits) < 2 {
		return nil, fmt.Errorf("parcel %s: %d cut intersections: %w", p.Name, len(hits), ErrDegenerateSplit)
	}
	if len(hits) > 2 {
		glog.V(1).Infof("parcel %s: %d cut intersections, using the chord nearest the centre", p.Name, len(hits))
	}
	a, b := pickChord(hits, p.OBB.CutSegment(), p.OBB.Center())

	first, second := p.OBB.WalkStarts()
	start := indexOf(p.Points, first, tol)
	if start < 0 {
		return nil, fmt.Errorf("parcel %s: walk start %v not on boundary: %w", p.Name, first, ErrMalformedBoundary)
	}

	inner, outer := cutRing(p.Points, a, b)
	inner, outer = inner.Dedup(tol), outer.Dedup(tol)
	minArea := tol * tol
	if len(inner) < 3 || len(outer) < 3 || inner.Area() <= minArea || outer.Area() <= minArea {
		return nil, fmt.Errorf("parcel %s: empty piece: %w", p.Name, ErrDegenerateSplit)
	}

	own, other := outer, inner
	if start > a.edge && start <= b.edge {
		own, other = inner, outer
	}
	own, ok := rotateTo(own, first, tol)
	if !ok {
		return nil, fmt.Errorf("parcel %s: walk start %v lost after cut: %w", p.Name, first, ErrMalformedBoundary)
	}
	if r, ok := rotateTo(other, second, tol); ok {
		other = r
	}

	return []*Parcel{
		NewParcel(fmt.Sprintf("%s-0", p.Name), own, tol),
		NewParcel(fmt.Sprintf("%s-1", p.Name), other, tol),
	}, nil
}

// findHits intersects the cut with every boundary edge. Hits within tolerance
// of a vertex snap to it; vertices where the boundary only touches the cut
// line are ignored.
func (pr *Parceller) findHits(p *Parcel, cut geometry.Segment) []hit {
	tol := pr.Settings.PointTolerance
	cut = cut.Extend(cutMargin * (1 + cut.Length()))
	n := len(p.Segments)

	var hits []hit
	for i, seg := range p.Segments {
		if !cut.IntersectsMode(seg, pr.Settings.Intersection) {
			continue
		}
		pt, ok := cut.IntersectionPoint(seg)
		if !ok {
			continue
		}
		h := hit{edge: i, t: seg.Param(pt), point: pt}
		switch {
		case pt.Near(seg.Start, tol):
			h.t, h.point = 0, seg.Start
		case pt.Near(seg.End, tol):
			h.edge, h.t, h.point = (i+1)%n, 0, seg.End
		}
		if h.t == 0 && touchesOnly(p.Points, h.edge, cut) {
			continue
		}
		if containsNear(hits, h.point, tol) {
			continue
		}
		h.s = cut.Param(h.point)
		hits = append(hits, h)
	}
	return hits
}

// touchesOnly reports whether both neighbours of vertex v lie strictly on the
// same side of the cut line.
func touchesOnly(points model.Outline, v int, cut geometry.Segment) bool {
	n := len(points)
	tol := geometry.Epsilon * cut.Length() * cut.Length()
	prev := geometry.Cross(cut.Start, cut.End, points[(v-1+n)%n])
	next := geometry.Cross(cut.Start, cut.End, points[(v+1)%n])
	return (prev > tol && next > tol) || (prev < -tol && next < -tol)
}

func containsNear(hits []hit, p model.Point2D, tol float64) bool {
	for _, h := range hits {
		if h.point.Near(p, tol) {
			return true
		}
	}
	return false
}

// pickChord returns two hits bounding an interior chord, in boundary order.
// With more than two hits, crossings sorted along the cut pair up as
// (0,1), (2,3), ... and the chord containing or nearest to center wins.
func pickChord(hits []hit, cut geometry.Segment, center model.Point2D) (hit, hit) {
	a, b := hits[0], hits[1]
	if len(hits) > 2 {
		sorted := append([]hit(nil), hits...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].s < sorted[j].s })

		sc := cut.Extend(cutMargin * (1 + cut.Length())).Param(center)
		best := math.Inf(1)
		for k := 0; k+1 < len(sorted); k += 2 {
			lo, hi := sorted[k].s, sorted[k+1].s
			d := 0.0
			if sc < lo {
				d = lo - sc
			} else if sc > hi {
				d = sc - hi
			}
			if d < best {
				best = d
				a, b = sorted[k], sorted[k+1]
			}
		}
	}
	if b.edge < a.edge || (b.edge == a.edge && b.t < a.t) {
		a, b = b, a
	}
	return a, b
}

// cutRing splits the ring at hits a and b (a before b in boundary order).
// The inner piece runs a, points[a.edge+1..b.edge], b; the outer piece is
// the complement.
func cutRing(points model.Outline, a, b hit) (inner, outer model.Outline) {
	n := len(points)
	inner = model.Outline{a.point}
	for i := a.edge + 1; i <= b.edge; i++ {
		inner = append(inner, points[i])
	}
	inner = append(inner, b.point)

	outer = model.Outline{b.point}
	for i := b.edge + 1; i < n; i++ {
		outer = append(outer, points[i])
	}
	for i := 0; i <= a.edge; i++ {
		outer = append(outer, points[i])
	}
	outer = append(outer, a.point)
	return inner, outer
}

func indexOf(points model.Outline, p model.Point2D, tol float64) int {
	for i, q := range points {
		if q.Near(p, tol) {
			return i
		}
	}
	return -1
}

// rotateTo returns ring reordered to begin at the point matching p.
func rotateTo(ring model.Outline, p model.Point2D, tol float64) (model.Outline, bool) {
	i := indexOf(ring, p, tol)
	if i < 0 {
		return ring, false
	}
	out := make(model.Outline, 0, len(ring))
	out = append(out, ring[i:]...)
	out = append(out, ring[:i]...)
	return out, true
}
