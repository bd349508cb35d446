// Package spline evaluates constant-speed curves through control points. Paths built
// from them drive travelling planets.
package spline

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// DistanceCount multiplies the number of candidate samples. Higher values give a
	// more even speed.
	DistanceCount = 3
	// SublineCount is how many straight lines approximate each curve section.
	SublineCount = 20
)

var (
	// ErrTooFewPoints rejects curves with fewer than four control points.
	ErrTooFewPoints = errors.New("spline: at least four control points are required")
	// ErrPointSetSize rejects Bezier paths whose point count is not a multiple of four.
	ErrPointSetSize = errors.New("spline: bezier path points must come in sets of four")
)

// Path is anything that can be sampled by a ratio along its length.
type Path interface {
	Point(ratio float32) rl.Vector3
	Distance() float32
}

// Curve is a Catmull-Rom spline through its control points. In constant speed mode
// Point walks a table of roughly equidistant samples so that equal ratio steps cover
// equal arc length.
//
// The control points are padded with one mirrored guide point at each end, so the
// curve starts at the first control point and ends at the last one.
type Curve struct {
	constantSpeed bool
	points        []rl.Vector3 // padded
	sections      int
	samples       []rl.Vector3
	arcLengths    []float32 // cumulative length at each sample
	distance      float32
}

// NewCurve builds a curve through points. Fewer than four points is an error.
func NewCurve(points []rl.Vector3, constantSpeed bool) (*Curve, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	n := len(points)
	padded := make([]rl.Vector3, 0, n+2)
	padded = append(padded, rl.Vector3Subtract(rl.Vector3Scale(points[0], 2), points[1]))
	padded = append(padded, points...)
	padded = append(padded, rl.Vector3Subtract(rl.Vector3Scale(points[n-1], 2), points[n-2]))

	c := &Curve{
		constantSpeed: constantSpeed,
		points:        padded,
		sections:      len(padded) - 3,
	}
	c.buildSamples()
	return c, nil
}

// buildSamples steps the raw interpolation finely and keeps a sample each time the
// distance from the last kept one reaches the minimum precision.
func (c *Curve) buildSamples() {
	var total float32
	for i := 2; i < len(c.points)-1; i++ {
		total += rl.Vector3Distance(c.points[i], c.points[i-1])
	}

	minSegment := total / float32(c.sections*SublineCount)
	minPrecision := minSegment / SublineCount

	precision := 2
	if minPrecision > 0 {
		precision = int(math.Ceil(float64(total/minPrecision))) * DistanceCount
	}
	if precision <= 1 {
		precision = 2
	}

	earlier := c.Interpolate(0)
	c.samples = make([]rl.Vector3, 1, precision+1)
	c.samples[0] = earlier
	c.arcLengths = make([]float32, 1, precision+1)

	for i := 0; i <= precision; i++ {
		ratio := float32(i) / float32(precision)
		p := c.Interpolate(ratio)
		d := rl.Vector3Distance(p, earlier)
		if (minPrecision > 0 && d >= minPrecision) || ratio >= 1 {
			c.distance += d
			c.samples = append(c.samples, p)
			c.arcLengths = append(c.arcLengths, c.distance)
			earlier = p
		}
	}
}

// Point returns the position at ratio. Ratios above 1 are clamped.
func (c *Curve) Point(ratio float32) rl.Vector3 {
	if ratio > 1 {
		ratio = 1
	}
	if c.constantSpeed {
		return c.Map(ratio)
	}
	return c.Interpolate(ratio)
}

// Map interpolates linearly between the precomputed samples.
func (c *Curve) Map(u float32) rl.Vector3 {
	if u >= 1 {
		return c.points[len(c.points)-2]
	}
	t := u * float32(len(c.samples)-1)
	first := int(math.Floor(float64(t)))
	next := int(math.Ceil(float64(t)))
	if first < 0 {
		first, next = 0, 0
	}
	a, b := c.samples[first], c.samples[next]
	return rl.Vector3Add(a, rl.Vector3Scale(rl.Vector3Subtract(b, a), t-float32(first)))
}

// Interpolate evaluates the Catmull-Rom basis directly. Speed along the curve is not
// uniform.
func (c *Curve) Interpolate(t float32) rl.Vector3 {
	id := int(math.Floor(float64(t * float32(c.sections))))
	id = min(id, c.sections-1)
	id = max(id, 0)
	u := t*float32(c.sections) - float32(id)

	a, b, cc, d := c.points[id], c.points[id+1], c.points[id+2], c.points[id+3]

	u2 := u * u
	u3 := u2 * u
	var out rl.Vector3
	out = rl.Vector3Add(out, rl.Vector3Scale(
		rl.Vector3Add(rl.Vector3Subtract(rl.Vector3Add(rl.Vector3Negate(a), rl.Vector3Scale(b, 3)), rl.Vector3Scale(cc, 3)), d), u3))
	out = rl.Vector3Add(out, rl.Vector3Scale(
		rl.Vector3Subtract(rl.Vector3Add(rl.Vector3Subtract(rl.Vector3Scale(a, 2), rl.Vector3Scale(b, 5)), rl.Vector3Scale(cc, 4)), d), u2))
	out = rl.Vector3Add(out, rl.Vector3Scale(rl.Vector3Subtract(cc, a), u))
	out = rl.Vector3Add(out, rl.Vector3Scale(b, 2))
	return rl.Vector3Scale(out, 0.5)
}

// RatioAtPoint returns the ratio of the sample nearest to p.
func (c *Curve) RatioAtPoint(p rl.Vector3) float32 {
	best := 0
	bestDist := float32(math.MaxFloat32)
	for i, s := range c.samples {
		if d := rl.Vector3Distance(p, s); d < bestDist {
			best, bestDist = i, d
		}
	}
	return float32(best) / float32(len(c.samples)-1)
}

// Distance is the accumulated length over the kept samples.
func (c *Curve) Distance() float32 { return c.distance }

// ConstantSpeed reports whether Point walks the sample table.
func (c *Curve) ConstantSpeed() bool { return c.constantSpeed }

// Samples returns a copy of the equidistant sample table.
func (c *Curve) Samples() []rl.Vector3 {
	return append([]rl.Vector3(nil), c.samples...)
}

// ArcLengths returns the cumulative length at each sample.
func (c *Curve) ArcLengths() []float32 {
	return append([]float32(nil), c.arcLengths...)
}
