package spline

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestBezierCurveStraight(t *testing.T) {
	b := NewBezierCurve(rl.Vector3{}, rl.Vector3{X: 1}, rl.Vector3{X: 2}, rl.Vector3{X: 3}, 0.05)

	if d := b.Distance(); d < 2.99 || d > 3.01 {
		t.Errorf("Expected length 3, got %v", d)
	}
	for _, ratio := range []float32{0, 0.25, 0.5, 1} {
		want := rl.Vector3{X: 3 * ratio}
		if p := b.Point(ratio); !near(p, want, 0.01) {
			t.Errorf("Expected %v at %v, got %v", want, ratio, p)
		}
	}
}

func TestBezierCurveArcLengthMapping(t *testing.T) {
	// control points bunched at the start make raw parameter speed uneven
	b := NewBezierCurve(rl.Vector3{}, rl.Vector3{X: 0.1}, rl.Vector3{X: 0.2}, rl.Vector3{X: 3}, 0.05)
	if p := b.Point(0.5); !near(p, rl.Vector3{X: 1.5}, 0.05) {
		t.Errorf("Expected arc-length midpoint (1.5,0,0), got %v", p)
	}
}

func TestNewBezierPathErrors(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want error
	}{
		{"too few", 3, ErrTooFewPoints},
		{"not a set of four", 6, ErrPointSetSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBezierPath(line(tt.n))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBezierPathSegments(t *testing.T) {
	// start, second control, first control, end
	points := []rl.Vector3{
		{X: 0}, {X: 2}, {X: 1}, {X: 3},
		{X: 3}, {X: 5}, {X: 4}, {X: 6},
	}
	p, err := NewBezierPath(points)
	if err != nil {
		t.Fatalf("NewBezierPath failed: %v", err)
	}
	if d := p.Distance(); d < 5.98 || d > 6.02 {
		t.Errorf("Expected length 6, got %v", d)
	}
	tests := []struct {
		ratio float32
		want  rl.Vector3
	}{
		{0, rl.Vector3{}},
		{0.25, rl.Vector3{X: 1.5}},
		{0.75, rl.Vector3{X: 4.5}},
		{1, rl.Vector3{X: 6}},
	}
	for _, tt := range tests {
		if got := p.Point(tt.ratio); !near(got, tt.want, 0.02) {
			t.Errorf("Expected %v at %v, got %v", tt.want, tt.ratio, got)
		}
	}
}

func TestWrapRatio(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.3, 0.3},
		{1, 1},
		{0, 0},
		{1.4, 0.4},
		{-1.4, 0.4},
		{2.25, 0.25},
	}
	for _, tt := range tests {
		got := WrapRatio(tt.in)
		if got < tt.want-1e-5 || got > tt.want+1e-5 {
			t.Errorf("WrapRatio(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
