// Package region builds multi-region plans: jittered region outlines, their
// subdivision into lots and the road links between neighbouring regions.
package region

import (
	"math"
	"math/rand/v2"

	"github.com/piwi3910/parcelgen/internal/model"
)

// angleJitter is the per-vertex deviation from an even angular step, in degrees.
const angleJitter = 5.0

// NewRNG returns a deterministic generator for seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// GeneratePolygon returns a jittered regular polygon with n vertices around
// center. Each vertex sits at radius U(size-size/3, size+size/3); the angular
// step is U(360/n-5, 360/n+5) degrees. Steps are rescaled to close exactly one
// turn so the ring stays star-shaped around center and never self-intersects.
func GeneratePolygon(rng *rand.Rand, center model.Point2D, size float64, n int) model.Outline {
	if n < 3 {
		return nil
	}
	step := 360.0 / float64(n)
	angles := make([]float64, n)
	radii := make([]float64, n)
	var angle float64
	for i := 0; i < n; i++ {
		radii[i] = uniform(rng, size-size/3, size+size/3)
		angle += uniform(rng, step-angleJitter, step+angleJitter)
		angles[i] = angle
	}

	scale := 360.0 / angle
	points := make(model.Outline, n)
	for i := range points {
		rad := angles[i] * scale * math.Pi / 180
		sin, cos := math.Sincos(rad)
		points[i] = model.Point2D{
			X: center.X + cos*radii[i],
			Y: center.Y + sin*radii[i],
		}
	}
	return points
}
