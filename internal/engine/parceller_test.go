package engine

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/parcelgen/internal/geometry"
	"github.com/piwi3910/parcelgen/internal/model"
)

func testSettings(mode model.IntersectionMode) model.SubdivisionSettings {
	s := model.DefaultSettings()
	s.Intersection = mode
	s.PointTolerance = 1e-6
	return s
}

var modes = []model.IntersectionMode{model.IntersectionBoundingBox, model.IntersectionOrientation}

// randomConvex returns the hull of random points in a 20x20 box.
func randomConvex(seed uint64) model.Outline {
	rng := rand.New(rand.NewPCG(seed, seed*7+1))
	pts := make([]model.Point2D, 30)
	for i := range pts {
		pts[i] = model.Point2D{X: rng.Float64() * 20, Y: rng.Float64() * 20}
	}
	return geometry.ConvexHull(pts)
}

// cShape opens to the right; a vertical cut through the middle crosses it four times.
func cShape() model.Outline {
	return model.Outline{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1.2}, {X: 1, Y: 1.2},
		{X: 1, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 3}, {X: 0, Y: 3},
	}
}

// ─── Single Split Tests ────────────────────────────────────

func TestSplit_UnitSquare(t *testing.T) {
	for _, mode := range modes {
		pr := New(testSettings(mode))
		p := NewParcel("0", unitSquare(), 1e-6)

		require.NoError(t, pr.Split(p, 1))
		require.Len(t, p.Children, 2, mode)
		assert.Equal(t, OutcomeSplit, p.Outcome)
		assert.InDelta(t, 1.0, p.OBB.Area(), 1e-9)
		assert.False(t, p.OBB.CutHorizontal, "square tie cuts vertically")

		right, left := p.Children[0], p.Children[1]
		assert.Equal(t, "0-0", right.Name)
		assert.Equal(t, "0-1", left.Name)
		assert.Equal(t, 0, right.Iteration)
		assert.InDelta(t, 0.5, right.Area(), 1e-9)
		assert.InDelta(t, 0.5, left.Area(), 1e-9)

		// Each child starts at its walk start point.
		assert.Equal(t, model.Point2D{X: 1, Y: 0}, right.Points[0])
		assert.Equal(t, model.Point2D{X: 0, Y: 0}, left.Points[0])
		minR, _ := right.Points.BoundingBox()
		_, maxL := left.Points.BoundingBox()
		assert.InDelta(t, 0.5, minR.X, 1e-9)
		assert.InDelta(t, 0.5, maxL.X, 1e-9)
	}
}

func TestSplit_DepthZeroIsLeaf(t *testing.T) {
	pr := New(testSettings(model.IntersectionBoundingBox))
	p := NewParcel("0", unitSquare(), 1e-6)

	require.NoError(t, pr.Split(p, 0))
	assert.Empty(t, p.Children)
	assert.Equal(t, OutcomeLeaf, p.Outcome)
}

func TestSplit_CollinearIsLeaf(t *testing.T) {
	pr := New(testSettings(model.IntersectionBoundingBox))
	p := NewParcel("0", model.Outline{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, 1e-6)

	require.NoError(t, pr.Split(p, 5))
	assert.Empty(t, p.Children)
	assert.Equal(t, OutcomeLeaf, p.Outcome)
}

func TestSplit_AreaConservedOnConvexInput(t *testing.T) {
	for _, mode := range modes {
		for seed := uint64(1); seed <= 30; seed++ {
			boundary := randomConvex(seed)
			require.NotNil(t, boundary)

			pr := New(testSettings(mode))
			p := NewParcel("0", boundary, 1e-6)
			require.NoError(t, pr.Split(p, 1), "seed %d mode %s", seed, mode)
			require.Len(t, p.Children, 2)

			sum := p.Children[0].Area() + p.Children[1].Area()
			assert.InDelta(t, p.Area(), sum, 1e-9*p.Area(), "seed %d mode %s", seed, mode)
			for _, c := range p.Children {
				assert.True(t, c.Closed())
				assert.Greater(t, c.Area(), 0.0)
			}
		}
	}
}

func TestSplit_CutPerpendicularToLongSide(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		pr := New(testSettings(model.IntersectionOrientation))
		p := NewParcel("0", randomConvex(seed), 1e-6)
		require.NoError(t, pr.Split(p, 1))

		cut := p.OBB.CutSegment()
		long := p.OBB.Rect.Top()
		if p.OBB.CutHorizontal {
			long = p.OBB.Rect.Right()
		}
		assert.GreaterOrEqual(t, long.Length()+1e-9, cut.Length(), "seed %d", seed)
		d1 := cut.End.Sub(cut.Start)
		d2 := long.End.Sub(long.Start)
		assert.InDelta(t, 0.0, d1.X*d2.X+d1.Y*d2.Y, 1e-6, "seed %d", seed)
	}
}

func TestSplit_ConcaveUsesChordNearestCentre(t *testing.T) {
	for _, mode := range modes {
		pr := New(testSettings(mode))
		p := NewParcel("0", cShape(), 1e-6)

		require.NoError(t, pr.Split(p, 1))
		require.Len(t, p.Children, 2)

		hits := pr.findHits(p, p.OBB.CutSegment())
		assert.Len(t, hits, 4, mode)

		// The lower chord (y 0..1.2) is closer to the box centre at y=1.5.
		assert.InDelta(t, 2.4, p.Children[0].Area(), 1e-9, mode)
		assert.InDelta(t, 7.2, p.Children[1].Area(), 1e-9, mode)
		assert.Equal(t, model.Point2D{X: 4, Y: 0}, p.Children[0].Points[0])
		assert.InDelta(t, p.Area(), p.Children[0].Area()+p.Children[1].Area(), 1e-9)
	}
}

func TestSplit_MalformedWalkStart(t *testing.T) {
	pr := New(testSettings(model.IntersectionBoundingBox))
	p := NewParcel("0", unitSquare(), 1e-6)
	require.NoError(t, p.FindMinimumOBB())
	p.OBB.Extremes.Right = model.Point2D{X: 0.7, Y: 0.3}
	p.OBB.Extremes.Top = model.Point2D{X: 0.7, Y: 0.3}

	err := pr.split(p, 1)
	assert.True(t, errors.Is(err, ErrMalformedBoundary))
	assert.Equal(t, OutcomeMalformedBoundary, p.Outcome)
	assert.Empty(t, p.Children)
}

func TestSplit_CutMissingBoundaryIsDegenerate(t *testing.T) {
	pr := New(testSettings(model.IntersectionOrientation))
	p := NewParcel("0", unitSquare(), 1e-6)
	require.NoError(t, p.FindMinimumOBB())
	p.OBB.Rect = geometry.NewAxisAligned(model.Point2D{X: 10, Y: 10}, model.Point2D{X: 11, Y: 12})
	p.OBB.CheckCutAxis()

	err := pr.split(p, 1)
	assert.True(t, errors.Is(err, ErrDegenerateSplit))
	assert.Equal(t, OutcomeDegenerateSplit, p.Outcome)
	assert.Empty(t, p.Children)
}

func TestPickChord_TwoHitsBoundaryOrder(t *testing.T) {
	a := hit{edge: 3, t: 0.2}
	b := hit{edge: 1, t: 0.5}
	first, second := pickChord([]hit{a, b}, geometry.Segment{}, model.Point2D{})
	assert.Equal(t, 1, first.edge)
	assert.Equal(t, 3, second.edge)
}

func TestCutRing_VertexHit(t *testing.T) {
	sq := unitSquare()
	a := hit{edge: 0, t: 0, point: sq[0]}
	b := hit{edge: 2, t: 0, point: sq[2]}
	inner, outer := cutRing(sq, a, b)
	inner, outer = inner.Dedup(1e-9), outer.Dedup(1e-9)

	assert.Equal(t, model.Outline{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, inner)
	assert.Equal(t, model.Outline{{X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}}, outer)
}
