package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a coordinate on the horizontal plane.
// Y is the second horizontal axis; height is never carried.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns a + b.
func (a Point2D) Add(b Point2D) Point2D {
	return Point2D{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func (a Point2D) Sub(b Point2D) Point2D {
	return Point2D{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns a multiplied by f.
func (a Point2D) Scale(f float64) Point2D {
	return Point2D{X: a.X * f, Y: a.Y * f}
}

// Midpoint returns the point halfway between a and b.
func (a Point2D) Midpoint(b Point2D) Point2D {
	return Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Distance returns the Euclidean distance between a and b.
func (a Point2D) Distance(b Point2D) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Near reports whether a and b are within tolerance of each other.
func (a Point2D) Near(b Point2D, tolerance float64) bool {
	return a.Distance(b) <= tolerance
}

// Rotate rotates the point around the origin by angle radians (counter-clockwise).
func (a Point2D) Rotate(angle float64) Point2D {
	sin, cos := math.Sincos(angle)
	return Point2D{
		X: a.X*cos - a.Y*sin,
		Y: a.X*sin + a.Y*cos,
	}
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (a Point2D) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Rotate rotates all points around the origin by angle radians.
func (o Outline) Rotate(angle float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = p.Rotate(angle)
	}
	return result
}

// SignedArea returns the shoelace area. Positive for counter-clockwise rings.
func (o Outline) SignedArea() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return area / 2
}

// Area returns the absolute polygon area.
func (o Outline) Area() float64 {
	return math.Abs(o.SignedArea())
}

// Centroid returns the vertex average of the outline.
func (o Outline) Centroid() Point2D {
	if len(o) == 0 {
		return Point2D{}
	}
	var c Point2D
	for _, p := range o {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(o)))
}

// Dedup drops consecutive points closer than tolerance, including a closing
// point that repeats the first one.
func (o Outline) Dedup(tolerance float64) Outline {
	result := make(Outline, 0, len(o))
	for _, p := range o {
		if len(result) > 0 && result[len(result)-1].Near(p, tolerance) {
			continue
		}
		result = append(result, p)
	}
	for len(result) > 1 && result[len(result)-1].Near(result[0], tolerance) {
		result = result[:len(result)-1]
	}
	return result
}

// IntersectionMode selects how the cut line is tested against boundary edges.
type IntersectionMode string

const (
	// IntersectionBoundingBox accepts a line intersection when it falls inside
	// both segments' axis-aligned boxes.
	IntersectionBoundingBox IntersectionMode = "bbox"
	// IntersectionOrientation uses a straddle test on the segment endpoints.
	IntersectionOrientation IntersectionMode = "orientation"
)

// ParseIntersectionMode maps user input to a mode, defaulting to bbox.
func ParseIntersectionMode(s string) IntersectionMode {
	switch s {
	case "orientation", "orient", "straddle":
		return IntersectionOrientation
	default:
		return IntersectionBoundingBox
	}
}

// SubdivisionSettings holds engine and plan configuration.
type SubdivisionSettings struct {
	// Engine settings
	Depth          int              `json:"depth"`           // Recursion depth; 0 = no split
	Intersection   IntersectionMode `json:"intersection"`    // Cut line vs boundary test
	PointTolerance float64          `json:"point_tolerance"` // Distance under which two points match
	Workers        int              `json:"workers"`         // Parallel subtree workers; <= 1 runs inline

	// Region plan settings
	MaxRoadDistance float64 `json:"max_road_distance"` // Longest road link between two regions
	RegionPoints    int     `json:"region_points"`     // Vertices of generated region outlines
	RegionRange     float64 `json:"region_range"`      // Nominal radius of generated regions
	Seed            uint64  `json:"seed"`              // Generator seed
}

func DefaultSettings() SubdivisionSettings {
	return SubdivisionSettings{
		Depth:           3,
		Intersection:    IntersectionBoundingBox,
		PointTolerance:  1e-3,
		Workers:         1,
		MaxRoadDistance: 100,
		RegionPoints:    10,
		RegionRange:     60,
		Seed:            1,
	}
}

// RegionSpec describes one region of a plan: either an explicit boundary or
// a generated outline around Center.
type RegionSpec struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Center    Point2D `json:"center"`
	Range     float64 `json:"range"`
	NumPoints int     `json:"num_points"`
	Boundary  Outline `json:"boundary,omitempty"` // Overrides generation when set
}

func NewRegionSpec(name string, center Point2D, rng float64, numPoints int) RegionSpec {
	return RegionSpec{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Center:    center,
		Range:     rng,
		NumPoints: numPoints,
	}
}

// Lot is a leaf parcel summary handed to consumers.
type Lot struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Boundary  Outline `json:"boundary"`
	Centroid  Point2D `json:"centroid"`
	Area      float64 `json:"area"`
	Width     float64 `json:"width"`  // OBB long side
	Height    float64 `json:"height"` // OBB short side
	Iteration int     `json:"iteration"`
}

// AspectRatio returns long side over short side, or 0 for degenerate lots.
func (l Lot) AspectRatio() float64 {
	if l.Height <= 0 {
		return 0
	}
	return l.Width / l.Height
}

// Road is a connecting segment between two regions.
type Road struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Start  Point2D `json:"start"`
	End    Point2D `json:"end"`
	Length float64 `json:"length"`
}

// Project ties everything together for save/load.
type Project struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Regions  []RegionSpec        `json:"regions"`
	Settings SubdivisionSettings `json:"settings"`
}

func NewProject() Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     "Untitled",
		Regions:  []RegionSpec{},
		Settings: DefaultSettings(),
	}
}
