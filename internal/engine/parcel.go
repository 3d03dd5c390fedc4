package engine

import (
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/piwi3910/parcelgen/internal/geometry"
	"github.com/piwi3910/parcelgen/internal/model"
)

var (
	// ErrDegenerateHull is returned when a boundary has fewer than three
	// effective hull points or zero area.
	ErrDegenerateHull = errors.New("degenerate hull")
	// ErrDegenerateSplit is returned when the cut line meets the boundary
	// fewer than twice or produces an empty child.
	ErrDegenerateSplit = errors.New("degenerate split")
	// ErrMalformedBoundary is returned when a walk start point cannot be
	// matched to a boundary point.
	ErrMalformedBoundary = errors.New("malformed boundary")
)

// Outcome records what happened when a parcel was processed.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSplit
	OutcomeLeaf
	OutcomeDegenerateSplit
	OutcomeMalformedBoundary
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSplit:
		return "split"
	case OutcomeLeaf:
		return "leaf"
	case OutcomeDegenerateSplit:
		return "degenerate-split"
	case OutcomeMalformedBoundary:
		return "malformed-boundary"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Terminal reports whether the outcome leaves the parcel without children.
func (o Outcome) Terminal() bool {
	return o != OutcomeSplit && o != OutcomePending
}

// Parcel is a closed polygon with lineage and an optional pair of children.
// Points[i] is always the start of Segments[i].
type Parcel struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"` // Lineage, e.g. "0-1-0"
	Iteration int                `json:"iteration"`
	Points    model.Outline      `json:"points"`
	Segments  []geometry.Segment `json:"-"`
	OBB       geometry.OBB       `json:"obb"`
	HasOBB    bool               `json:"has_obb"`
	Children  []*Parcel          `json:"children,omitempty"`
	Outcome   Outcome            `json:"outcome"`
}

// NewParcel builds a parcel from an ordered ring of points. Consecutive
// points closer than tolerance are merged.
func NewParcel(name string, points []model.Point2D, tolerance float64) *Parcel {
	p := &Parcel{
		ID:   uuid.New().String()[:8],
		Name: name,
	}
	p.CreateFromPoints(model.Outline(points).Dedup(tolerance))
	return p
}

// CreateFromPoints replaces the boundary with the ring through points.
func (p *Parcel) CreateFromPoints(points model.Outline) {
	p.Segments = geometry.SegmentsFromRing(points)
	p.UpdatePointsFromSegments()
	if len(points) == 1 {
		p.Points = model.Outline{points[0]}
	}
	p.HasOBB = false
}

// UpdatePointsFromSegments re-syncs the point ring to the segment starts.
func (p *Parcel) UpdatePointsFromSegments() {
	pts := make(model.Outline, len(p.Segments))
	for i, s := range p.Segments {
		pts[i] = s.Start
	}
	p.Points = pts
}

// Closed reports whether every segment ends where the next one starts.
func (p *Parcel) Closed() bool {
	n := len(p.Segments)
	if n == 0 {
		return false
	}
	for i, s := range p.Segments {
		if s.End != p.Segments[(i+1)%n].Start {
			return false
		}
	}
	return true
}

// FindMinimumOBB recomputes the hull and oriented bounding box.
func (p *Parcel) FindMinimumOBB() error {
	obb, ok := geometry.MinimumOBB(p.Points)
	if !ok {
		p.OBB = geometry.OBB{}
		p.HasOBB = false
		glog.V(2).Infof("parcel %s: degenerate hull from %d points", p.Name, len(p.Points))
		return fmt.Errorf("parcel %s: %w", p.Name, ErrDegenerateHull)
	}
	p.OBB = obb
	p.HasOBB = true
	return nil
}

// FindCentroid returns the average of the convex hull points. A degenerate
// hull yields the zero point and ErrDegenerateHull.
func (p *Parcel) FindCentroid() (model.Point2D, error) {
	if err := p.FindMinimumOBB(); err != nil {
		glog.Warningf("centroid of parcel %s: %v", p.Name, err)
		return model.Point2D{}, err
	}
	return p.OBB.Hull.Centroid(), nil
}

// Extremes returns the extremal points of the last OBB computation.
func (p *Parcel) Extremes() geometry.Extremes {
	return p.OBB.Extremes
}

// Area returns the polygon area of the boundary.
func (p *Parcel) Area() float64 {
	return p.Points.Area()
}

// IsLeaf reports whether the parcel has no children.
func (p *Parcel) IsLeaf() bool {
	return len(p.Children) == 0
}

// Walk visits the parcel and its descendants depth-first, parents first.
// Returning false from fn skips the node's children.
func (p *Parcel) Walk(fn func(*Parcel) bool) {
	stack := []*Parcel{p}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if !fn(cur) {
			continue
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Leaves returns all leaf parcels in left-to-right order.
func (p *Parcel) Leaves() []*Parcel {
	var leaves []*Parcel
	p.Walk(func(n *Parcel) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}
