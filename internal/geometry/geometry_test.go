package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/parcelgen/internal/model"
)

func unitSquare() []model.Point2D {
	return []model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func randomPoints(seed uint64, n int) []model.Point2D {
	rng := rand.New(rand.NewPCG(seed, seed))
	pts := make([]model.Point2D, n)
	for i := range pts {
		pts[i] = model.Point2D{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
	}
	return pts
}

// ─── Segment Tests ─────────────────────────────────────────

func TestSegment_Coefficients(t *testing.T) {
	s := NewSegment(model.Point2D{X: 1, Y: 2}, model.Point2D{X: 4, Y: 6})
	a, b, c := s.Coefficients()
	assert.Equal(t, 4.0, a)
	assert.Equal(t, -3.0, b)
	assert.Equal(t, 4.0*1-3.0*2, c)
	assert.Equal(t, 5.0, s.Length())
}

func TestSegment_IntersectionPoint(t *testing.T) {
	s := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 2})
	o := NewSegment(model.Point2D{X: 0, Y: 2}, model.Point2D{X: 2, Y: 0})

	p, ok := s.IntersectionPoint(o)
	require.True(t, ok)
	assert.InDelta(t, 1.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)
	assert.True(t, s.Intersects(o))
	assert.True(t, s.IntersectsOrientation(o))
}

func TestSegment_ParallelNeverIntersects(t *testing.T) {
	s := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 1, Y: 0})
	o := NewSegment(model.Point2D{X: 0, Y: 1}, model.Point2D{X: 1, Y: 1})
	collinear := NewSegment(model.Point2D{X: 0.5, Y: 0}, model.Point2D{X: 2, Y: 0})

	_, ok := s.IntersectionPoint(o)
	assert.False(t, ok)
	assert.False(t, s.Intersects(o))
	assert.False(t, s.IntersectsOrientation(collinear))
	assert.False(t, s.Intersects(collinear))
}

func TestSegment_BoxAndOrientationAgree(t *testing.T) {
	horizontal := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 4, Y: 0})
	short := NewSegment(model.Point2D{X: 1, Y: 1}, model.Point2D{X: 2, Y: 2})

	assert.False(t, horizontal.Intersects(short))
	assert.False(t, horizontal.IntersectsOrientation(short))

	touching := NewSegment(model.Point2D{X: 2, Y: 0}, model.Point2D{X: 2, Y: 3})
	assert.True(t, horizontal.Intersects(touching))
	assert.True(t, horizontal.IntersectsOrientation(touching))
}

func TestSegment_IntersectsMode(t *testing.T) {
	s := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 2})
	o := NewSegment(model.Point2D{X: 0, Y: 2}, model.Point2D{X: 2, Y: 0})
	far := NewSegment(model.Point2D{X: 5, Y: 0}, model.Point2D{X: 6, Y: -1})

	for _, mode := range []model.IntersectionMode{model.IntersectionBoundingBox, model.IntersectionOrientation} {
		assert.True(t, s.IntersectsMode(o, mode), mode)
		assert.False(t, s.IntersectsMode(far, mode), mode)
	}
}

func TestSegment_ProjectPoint(t *testing.T) {
	s := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 4, Y: 0})
	p := s.ProjectPoint(model.Point2D{X: 3, Y: 5})
	assert.Equal(t, model.Point2D{X: 3, Y: 0}, p)
	assert.Equal(t, 0.75, s.Param(model.Point2D{X: 3, Y: 5}))
}

func TestSegment_Extend(t *testing.T) {
	s := NewSegment(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}).Extend(1)
	assert.Equal(t, model.Point2D{X: -1, Y: 0}, s.Start)
	assert.Equal(t, model.Point2D{X: 3, Y: 0}, s.End)
}

func TestSegmentsFromRing_Closed(t *testing.T) {
	segs := SegmentsFromRing(unitSquare())
	require.Len(t, segs, 4)
	for i := range segs {
		assert.Equal(t, segs[i].End, segs[(i+1)%len(segs)].Start)
	}
}

// ─── Rectangle Tests ───────────────────────────────────────

func TestRectangle_AxisAligned(t *testing.T) {
	r := NewAxisAligned(model.Point2D{X: 1, Y: 1}, model.Point2D{X: 4, Y: 3})
	assert.Equal(t, 3.0, r.Width())
	assert.Equal(t, 2.0, r.Height())
	assert.Equal(t, 6.0, r.Area())
	assert.Equal(t, model.Point2D{X: 2.5, Y: 2}, r.Center())
	assert.True(t, r.Contains(model.Point2D{X: 4, Y: 3}, 1e-9))
	assert.False(t, r.Contains(model.Point2D{X: 4.1, Y: 3}, 1e-9))
}

func TestRectangle_RotateKeepsArea(t *testing.T) {
	r := NewAxisAligned(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 3, Y: 1}).Rotate(0.7)
	assert.InDelta(t, 3.0, r.Area(), 1e-9)
	assert.InDelta(t, 3.0, r.Corners().Area(), 1e-9)
	assert.True(t, r.Contains(r.Center(), 0))
}

// ─── Convex Hull Tests ─────────────────────────────────────

func TestConvexHull_Square(t *testing.T) {
	pts := append(unitSquare(), model.Point2D{X: 0.5, Y: 0.5}, model.Point2D{X: 0.5, Y: 0})
	hull := ConvexHull(pts)
	assert.Equal(t, model.Outline(unitSquare()), hull)
}

func TestConvexHull_Degenerate(t *testing.T) {
	assert.Nil(t, ConvexHull(nil))
	assert.Nil(t, ConvexHull(unitSquare()[:2]))
	assert.Nil(t, ConvexHull([]model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}))
	assert.Nil(t, ConvexHull([]model.Point2D{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}))
}

func TestConvexHull_DuplicatePoints(t *testing.T) {
	pts := []model.Point2D{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}}
	hull := ConvexHull(pts)
	require.Len(t, hull, 3)
	assert.InDelta(t, 2.0, hull.Area(), 1e-12)
}

func TestConvexHull_RandomPointsContainedAndCCW(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		pts := randomPoints(seed, 40)
		hull := ConvexHull(pts)
		require.NotNil(t, hull, "seed %d", seed)

		n := len(hull)
		for i := range hull {
			c := Cross(hull[i], hull[(i+1)%n], hull[(i+2)%n])
			assert.Greater(t, c, 0.0, "seed %d: hull not strictly counter-clockwise at %d", seed, i)
		}
		for _, p := range pts {
			for i := range hull {
				c := Cross(hull[i], hull[(i+1)%n], p)
				assert.GreaterOrEqual(t, c, -1e-9, "seed %d: point %v outside hull edge %d", seed, p, i)
			}
		}
	}
}

// ─── OBB Tests ─────────────────────────────────────────────

func bruteForceMinArea(hull model.Outline) float64 {
	best := math.Inf(1)
	for i := range hull {
		for j := range hull {
			if i == j {
				continue
			}
			d := hull[j].Sub(hull[i])
			angle := math.Atan2(d.Y, d.X)
			min, max := hull.Rotate(-angle).BoundingBox()
			if a := (max.X - min.X) * (max.Y - min.Y); a < best {
				best = a
			}
		}
	}
	return best
}

func TestMinimumOBB_UnitSquare(t *testing.T) {
	obb, ok := MinimumOBB(unitSquare())
	require.True(t, ok)
	assert.InDelta(t, 1.0, obb.Area(), 1e-9)
	assert.InDelta(t, 0.5, obb.Center().X, 1e-9)
	assert.InDelta(t, 0.5, obb.Center().Y, 1e-9)

	// Square tie cuts vertically through the centre.
	assert.False(t, obb.CutHorizontal)
	assert.InDelta(t, 0.5, obb.CutStart.X, 1e-9)
	assert.InDelta(t, 0.5, obb.CutEnd.X, 1e-9)
	first, second := obb.WalkStarts()
	assert.Equal(t, model.Point2D{X: 1, Y: 0}, first)
	assert.Equal(t, model.Point2D{X: 0, Y: 0}, second)
}

func TestMinimumOBB_RotatedRectangle(t *testing.T) {
	rect := NewAxisAligned(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 4, Y: 1}).Rotate(math.Pi / 6)
	obb, ok := MinimumOBB(rect.Corners())
	require.True(t, ok)
	assert.InDelta(t, 4.0, obb.Area(), 1e-9)

	// The long side is 4, so the cut must be perpendicular to it.
	cut := obb.CutSegment()
	long := obb.Rect.Top()
	if obb.Rect.Height() > obb.Rect.Width() {
		long = obb.Rect.Right()
	}
	d1 := cut.End.Sub(cut.Start)
	d2 := long.End.Sub(long.Start)
	assert.InDelta(t, 0.0, d1.X*d2.X+d1.Y*d2.Y, 1e-9)
	assert.InDelta(t, 1.0, cut.Length(), 1e-9)
}

func TestMinimumOBB_MinimalAgainstBruteForce(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		pts := randomPoints(seed, 3+int(seed%17))
		obb, ok := MinimumOBB(pts)
		if !ok {
			continue
		}
		ref := bruteForceMinArea(obb.Hull)
		assert.InDelta(t, ref, obb.Area(), 1e-6*math.Max(ref, 1), "seed %d", seed)

		// Never larger than the axis-aligned box.
		min, max := model.Outline(pts).BoundingBox()
		assert.LessOrEqual(t, obb.Area(), (max.X-min.X)*(max.Y-min.Y)+1e-9, "seed %d", seed)
	}
}

func TestMinimumOBB_ContainsAllPoints(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		pts := randomPoints(seed, 30)
		obb, ok := MinimumOBB(pts)
		require.True(t, ok)
		for _, p := range pts {
			assert.True(t, obb.Rect.Contains(p, 1e-4), "seed %d: %v outside OBB", seed, p)
		}
	}
}

func TestMinimumOBB_ExtremesAreHullVertices(t *testing.T) {
	pts := randomPoints(7, 25)
	obb, ok := MinimumOBB(pts)
	require.True(t, ok)

	for _, e := range []model.Point2D{obb.Extremes.Top, obb.Extremes.Bottom, obb.Extremes.Right, obb.Extremes.Left} {
		assert.Contains(t, []model.Point2D(obb.Hull), e)
	}
}

func TestMinimumOBB_Degenerate(t *testing.T) {
	_, ok := MinimumOBB([]model.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}})
	assert.False(t, ok)
}

func TestOBB_SwapCutAxis(t *testing.T) {
	obb, ok := MinimumOBB([]model.Point2D{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 0, Y: 1}})
	require.True(t, ok)
	require.False(t, obb.CutHorizontal)
	assert.InDelta(t, 1.0, obb.CutSegment().Length(), 1e-9)

	obb.SwapCutAxis()
	assert.True(t, obb.CutHorizontal)
	assert.InDelta(t, 4.0, obb.CutSegment().Length(), 1e-9)
	first, second := obb.WalkStarts()
	assert.Equal(t, obb.Extremes.Top, first)
	assert.Equal(t, obb.Extremes.Bottom, second)
}
