package spline

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// bezierPrecision is the parameter step of a path segment's arc-length table.
const bezierPrecision = 0.05

// BezierCurve is a cubic Bezier segment re-parameterized by arc length.
type BezierCurve struct {
	a, aa, bb, cc rl.Vector3
	precision     float32
	arcLengths    []float32
	length        float32
}

// NewBezierCurve builds the segment from a to d with control points b and c.
// precision is the parameter step of the arc-length table and must be in (0, 1].
func NewBezierCurve(a, b, c, d rl.Vector3, precision float32) *BezierCurve {
	if precision <= 0 || precision > 1 {
		precision = bezierPrecision
	}
	bc := &BezierCurve{
		a:         a,
		aa:        rl.Vector3Add(rl.Vector3Add(rl.Vector3Negate(a), rl.Vector3Scale(rl.Vector3Subtract(b, c), 3)), d),
		bb:        rl.Vector3Subtract(rl.Vector3Scale(rl.Vector3Add(a, c), 3), rl.Vector3Scale(b, 6)),
		cc:        rl.Vector3Scale(rl.Vector3Subtract(b, a), 3),
		precision: precision,
	}

	count := int(1/precision+1e-4) + 1
	bc.arcLengths = make([]float32, count)
	prev := a
	for i := 1; i < count; i++ {
		v := bc.bezierPoint(float32(i) * precision)
		bc.length += rl.Vector3Distance(prev, v)
		bc.arcLengths[i] = bc.length
		prev = v
	}
	return bc
}

// Point returns the position at the given fraction of the segment's length.
func (b *BezierCurve) Point(t float32) rl.Vector3 {
	return b.bezierPoint(b.mapRatio(t))
}

func (b *BezierCurve) Distance() float32 { return b.length }

func (b *BezierCurve) bezierPoint(t float32) rl.Vector3 {
	p := rl.Vector3Add(rl.Vector3Scale(b.aa, t), b.bb)
	p = rl.Vector3Add(rl.Vector3Scale(p, t), b.cc)
	return rl.Vector3Add(rl.Vector3Scale(p, t), b.a)
}

// mapRatio converts a length fraction into the curve parameter by binary search over
// the arc-length table.
func (b *BezierCurve) mapRatio(u float32) float32 {
	last := len(b.arcLengths) - 1
	target := u * b.arcLengths[last]

	low, high := 0, last
	for low < high {
		mid := low + (high-low)/2
		if b.arcLengths[mid] < target {
			low = mid + 1
		} else {
			high = mid
		}
	}
	index := low
	if b.arcLengths[index] > target {
		index--
	}
	index = max(0, min(index, last-1))

	span := b.arcLengths[index+1] - b.arcLengths[index]
	var frac float32
	if span > 0 {
		frac = (target - b.arcLengths[index]) / span
	}
	return (float32(index) + frac) * b.precision
}

// BezierPath chains Bezier segments. Points come in sets of four per segment:
// start, second control, first control, end.
type BezierPath struct {
	segments    []*BezierCurve
	lengthRatio []float32
	length      float32
}

func NewBezierPath(points []rl.Vector3) (*BezierPath, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	if len(points)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrPointSetSize, len(points))
	}

	p := &BezierPath{}
	for i := 0; i < len(points); i += 4 {
		seg := NewBezierCurve(points[i], points[i+2], points[i+1], points[i+3], bezierPrecision)
		p.segments = append(p.segments, seg)
		p.length += seg.length
	}
	p.lengthRatio = make([]float32, len(p.segments))
	for i, seg := range p.segments {
		if p.length > 0 {
			p.lengthRatio[i] = seg.length / p.length
		} else {
			p.lengthRatio[i] = 1 / float32(len(p.segments))
		}
	}
	return p, nil
}

// Point finds the segment covering ratio by cumulative length share.
func (p *BezierPath) Point(ratio float32) rl.Vector3 {
	var added float32
	for i, share := range p.lengthRatio {
		added += share
		if added >= ratio && share > 0 {
			return p.segments[i].Point((ratio - (added - share)) / share)
		}
	}
	return p.segments[len(p.segments)-1].Point(1)
}

func (p *BezierPath) Distance() float32 { return p.length }

// WrapRatio folds a ratio outside [0, 1] back into it by its fractional part:
// 1.4 and -1.4 both give 0.4.
func WrapRatio(ratio float32) float32 {
	switch {
	case ratio >= 0 && ratio <= 1:
		return ratio
	case ratio < 0:
		return float32(math.Ceil(float64(ratio))) - ratio
	default:
		return ratio - float32(math.Floor(float64(ratio)))
	}
}
