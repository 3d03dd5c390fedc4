package geometry

import (
	"math"

	"github.com/piwi3910/parcelgen/internal/model"
)

// Rectangle is a possibly rotated rectangle described by its four corners.
// Corner names refer to the rectangle's own unrotated frame.
type Rectangle struct {
	LeftBot  model.Point2D `json:"left_bot"`
	LeftTop  model.Point2D `json:"left_top"`
	RightTop model.Point2D `json:"right_top"`
	RightBot model.Point2D `json:"right_bot"`
}

// NewAxisAligned builds a rectangle from its min and max corners.
func NewAxisAligned(min, max model.Point2D) Rectangle {
	return Rectangle{
		LeftBot:  min,
		LeftTop:  model.Point2D{X: min.X, Y: max.Y},
		RightTop: max,
		RightBot: model.Point2D{X: max.X, Y: min.Y},
	}
}

func (r Rectangle) Top() Segment    { return NewSegment(r.LeftTop, r.RightTop) }
func (r Rectangle) Bottom() Segment { return NewSegment(r.LeftBot, r.RightBot) }
func (r Rectangle) Left() Segment   { return NewSegment(r.LeftBot, r.LeftTop) }
func (r Rectangle) Right() Segment  { return NewSegment(r.RightBot, r.RightTop) }

// Width is the length of the top edge.
func (r Rectangle) Width() float64 { return r.Top().Length() }

// Height is the length of the right edge.
func (r Rectangle) Height() float64 { return r.Right().Length() }

func (r Rectangle) Area() float64 { return r.Width() * r.Height() }

func (r Rectangle) Center() model.Point2D {
	return r.LeftBot.Midpoint(r.RightTop)
}

// Corners returns the rectangle as a counter-clockwise outline.
func (r Rectangle) Corners() model.Outline {
	return model.Outline{r.LeftBot, r.RightBot, r.RightTop, r.LeftTop}
}

// Segments returns the four edges in counter-clockwise order.
func (r Rectangle) Segments() []Segment {
	return SegmentsFromRing(r.Corners())
}

// Rotate rotates all corners around the origin.
func (r Rectangle) Rotate(angle float64) Rectangle {
	return Rectangle{
		LeftBot:  r.LeftBot.Rotate(angle),
		LeftTop:  r.LeftTop.Rotate(angle),
		RightTop: r.RightTop.Rotate(angle),
		RightBot: r.RightBot.Rotate(angle),
	}
}

// Contains reports whether p lies inside or on the rectangle within tolerance.
func (r Rectangle) Contains(p model.Point2D, tolerance float64) bool {
	u := r.RightBot.Sub(r.LeftBot)
	v := r.LeftTop.Sub(r.LeftBot)
	w, h := math.Hypot(u.X, u.Y), math.Hypot(v.X, v.Y)
	if w == 0 || h == 0 {
		return false
	}
	d := p.Sub(r.LeftBot)
	pu := (d.X*u.X + d.Y*u.Y) / w
	pv := (d.X*v.X + d.Y*v.Y) / h
	return pu >= -tolerance && pu <= w+tolerance && pv >= -tolerance && pv <= h+tolerance
}
