package spline

import (
	"cubeplanets/internal/engine"
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b rl.Vector3, eps float32) bool {
	return rl.Vector3Distance(a, b) <= eps
}

var arch = []rl.Vector3{{X: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3}}

func line(n int) []rl.Vector3 {
	pts := make([]rl.Vector3, n)
	for i := range pts {
		pts[i] = rl.Vector3{X: float32(i)}
	}
	return pts
}

func TestNewCurveTooFewPoints(t *testing.T) {
	_, err := NewCurve(line(3), true)
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Expected ErrTooFewPoints, got %v", err)
	}
}

func TestCurveEndpoints(t *testing.T) {
	for _, constant := range []bool{true, false} {
		c, err := NewCurve(arch, constant)
		if err != nil {
			t.Fatalf("NewCurve failed: %v", err)
		}
		if p := c.Point(0); !near(p, rl.Vector3{}, 1e-4) {
			t.Errorf("constant=%v: Expected Point(0) (0,0,0), got %v", constant, p)
		}
		if p := c.Point(1); !near(p, rl.Vector3{X: 3}, 1e-3) {
			t.Errorf("constant=%v: Expected Point(1) (3,0,0), got %v", constant, p)
		}
		if p := c.Point(5); !near(p, c.Point(1), 1e-6) {
			t.Errorf("constant=%v: Expected ratios above 1 clamped, got %v", constant, p)
		}
	}
}

func TestCurvePassesThroughControlPoints(t *testing.T) {
	c, err := NewCurve(arch, false)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	// one section per pair of neighbouring control points
	for i, want := range arch {
		ratio := float32(i) / float32(len(arch)-1)
		if p := c.Interpolate(ratio); !near(p, want, 1e-4) {
			t.Errorf("Expected control point %v at ratio %v, got %v", want, ratio, p)
		}
	}
}

func TestCurveArcLengthTable(t *testing.T) {
	tests := []struct {
		name   string
		points []rl.Vector3
	}{
		{"arch", arch},
		{"line", line(6)},
		{"zigzag", []rl.Vector3{{X: 0}, {X: 1, Z: 2}, {X: 2}, {X: 3, Z: 2}, {X: 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCurve(tt.points, true)
			if err != nil {
				t.Fatalf("NewCurve failed: %v", err)
			}
			lengths := c.ArcLengths()
			for i := 1; i < len(lengths); i++ {
				if lengths[i] < lengths[i-1] {
					t.Fatalf("Expected non-decreasing arc lengths, got %v then %v at %d", lengths[i-1], lengths[i], i)
				}
			}
			if last := lengths[len(lengths)-1]; last != c.Distance() {
				t.Errorf("Expected distance %v to equal final arc length %v", c.Distance(), last)
			}
			if len(c.Samples()) != len(lengths) {
				t.Errorf("Expected one arc length per sample, got %d and %d", len(lengths), len(c.Samples()))
			}
		})
	}
}

func TestCurveLineDistance(t *testing.T) {
	c, err := NewCurve(line(4), true)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	if d := c.Distance(); d < 2.99 || d > 3.01 {
		t.Errorf("Expected distance 3, got %v", d)
	}
	if p := c.Point(0.5); !near(p, rl.Vector3{X: 1.5}, 0.01) {
		t.Errorf("Expected midpoint (1.5,0,0), got %v", p)
	}
}

// stepSpread returns the ratio between the longest and shortest distance covered
// by ten equal ratio steps.
func stepSpread(c *Curve) float32 {
	const steps = 10
	longest, shortest := float32(0), float32(1e9)
	prev := c.Point(0)
	for i := 1; i < steps; i++ {
		p := c.Point(float32(i) / steps)
		d := rl.Vector3Distance(prev, p)
		longest = max(longest, d)
		shortest = min(shortest, d)
		prev = p
	}
	return longest / shortest
}

func TestCurveConstantSpeed(t *testing.T) {
	c, err := NewCurve(arch, true)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	if spread := stepSpread(c); spread > 1.6 {
		t.Errorf("Expected even steps in constant speed mode, got spread %v", spread)
	}

	// bunched control points make raw interpolation speed very uneven
	uneven := []rl.Vector3{{X: 0}, {X: 0.2}, {X: 0.4}, {X: 3}}
	raw, err := NewCurve(uneven, false)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	if spread := stepSpread(raw); spread < 3 {
		t.Errorf("Expected uneven raw steps, got spread %v", spread)
	}
}

func TestCurveRatioAtPoint(t *testing.T) {
	c, err := NewCurve(arch, true)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	for _, ratio := range []float32{0, 0.25, 0.5, 0.8} {
		got := c.RatioAtPoint(c.Point(ratio))
		if got < ratio-0.01 || got > ratio+0.01 {
			t.Errorf("Expected ratio %v, got %v", ratio, got)
		}
	}
}

func TestCurvePlace(t *testing.T) {
	c, err := NewCurve(line(4), true)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	obj := engine.NewGameObject("Traveller")

	c.Place(obj, 0.5, rl.Vector3{Y: 1})
	if !near(obj.WorldPosition(), rl.Vector3{X: 1.5}, 0.01) {
		t.Errorf("Expected position (1.5,0,0), got %v", obj.WorldPosition())
	}
	if !near(obj.Forward(), rl.Vector3{X: 1}, 1e-3) {
		t.Errorf("Expected to face along the path, got %v", obj.Forward())
	}

	before := obj.Transform.Rotation
	c.Place(obj, 1, rl.Vector3{Y: 1})
	if obj.Transform.Rotation != before {
		t.Error("Expected orientation untouched at the end of the path")
	}
}

func TestCurvePlaceLocal(t *testing.T) {
	c, err := NewCurve(line(4), true)
	if err != nil {
		t.Fatalf("NewCurve failed: %v", err)
	}
	parent := engine.NewGameObject("Galaxy")
	parent.Transform.Position = rl.Vector3{Y: 10}
	obj := engine.NewGameObject("Planet")
	if err := parent.AddChild(obj); err != nil {
		t.Fatalf("AddChild failed: %v", err)
	}

	c.PlaceLocal(obj, 0.5, rl.Vector3{Y: 1})
	if !near(obj.Transform.Position, rl.Vector3{X: 1.5}, 0.01) {
		t.Errorf("Expected local position (1.5,0,0), got %v", obj.Transform.Position)
	}
	if !near(obj.WorldPosition(), rl.Vector3{X: 1.5, Y: 10}, 0.01) {
		t.Errorf("Expected world position (1.5,10,0), got %v", obj.WorldPosition())
	}
	if !near(obj.Forward(), rl.Vector3{X: 1}, 1e-3) {
		t.Errorf("Expected to face along the path, got %v", obj.Forward())
	}
}
