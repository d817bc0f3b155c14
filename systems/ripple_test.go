package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/ripple/config"
)

func newTestField() *RippleField {
	return NewRippleField(DefaultRippleParams())
}

func TestAddPointFirstSampleHasNoDirection(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.3, 0.7)

	pts := f.Points()
	if len(pts) != 1 {
		t.Fatalf("expected 1 point, got %d", len(pts))
	}
	p := pts[0]
	if p.Force != 0 || p.Dir.X != 0 || p.Dir.Y != 0 {
		t.Errorf("first point should have zero force and direction, got force=%v dir=%v", p.Force, p.Dir)
	}
	if p.Age != 0 {
		t.Errorf("new point age = %d, want 0", p.Age)
	}
	if p.Pos.X != 0.3 || p.Pos.Y != 0.7 {
		t.Errorf("position = %v, want (0.3, 0.7)", p.Pos)
	}
}

func TestAddPointDirectionAndForce(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.5, 0.5)
	f.AddPoint(0.6, 0.5)

	p := f.Points()[1]
	if math.Abs(p.Dir.X-1) > 1e-9 || math.Abs(p.Dir.Y) > 1e-9 {
		t.Errorf("direction = %v, want (1, 0)", p.Dir)
	}
	if p.Force != 1 {
		t.Errorf("force = %v, want 1", p.Force)
	}

	f.Step()

	p = f.Points()[1]
	if math.Abs(p.Pos.X-0.61) > 1e-9 || math.Abs(p.Pos.Y-0.5) > 1e-9 {
		t.Errorf("position after step = %v, want (0.61, 0.5)", p.Pos)
	}
	if p.Age != 1 {
		t.Errorf("age after step = %d, want 1", p.Age)
	}

	// The first point has no direction and must not move
	if first := f.Points()[0]; first.Pos.X != 0.5 || first.Pos.Y != 0.5 {
		t.Errorf("directionless point moved to %v", first.Pos)
	}
}

func TestAddPointForceBound(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    float64
		wantForce float64
	}{
		{"tiny move", 0.001, 0, 0.01},
		{"half force", 0.005, 0.005, 0.5},
		{"threshold", 0.01, 0, 1},
		{"large move", 0.3, -0.4, 1},
		{"diagonal small", -0.003, 0.004, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField()
			f.AddPoint(0.4, 0.4)
			f.AddPoint(0.4+tt.dx, 0.4+tt.dy)

			p := f.Points()[1]
			if p.Force < 0 || p.Force > 1 {
				t.Fatalf("force %v outside [0,1]", p.Force)
			}
			if math.Abs(p.Force-tt.wantForce) > 1e-6 {
				t.Errorf("force = %v, want %v", p.Force, tt.wantForce)
			}

			norm := p.Dir.X*p.Dir.X + p.Dir.Y*p.Dir.Y
			if math.Abs(norm-1) > 1e-9 {
				t.Errorf("|dir|^2 = %v, want 1", norm)
			}
		})
	}
}

func TestAddPointTracksLastSampleNotDriftedPoint(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.2, 0.2)
	f.AddPoint(0.3, 0.2)
	for i := 0; i < 10; i++ {
		f.Step()
	}

	// The stored point drifted right, but the next sample is measured
	// against the raw (0.3, 0.2) sample.
	f.AddPoint(0.3, 0.25)
	p := f.Points()[len(f.Points())-1]
	if math.Abs(p.Dir.X) > 1e-9 || math.Abs(p.Dir.Y-1) > 1e-9 {
		t.Errorf("direction = %v, want (0, 1)", p.Dir)
	}
}

func TestAddPointDuplicateSampleHasNoNaN(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.5, 0.5)
	f.AddPoint(0.5, 0.5)

	p := f.Points()[1]
	if p.Force != 0 {
		t.Errorf("duplicate sample force = %v, want 0", p.Force)
	}
	if math.IsNaN(p.Dir.X) || math.IsNaN(p.Dir.Y) {
		t.Fatalf("duplicate sample produced NaN direction %v", p.Dir)
	}
	if p.Dir.X != 0 || p.Dir.Y != 0 {
		t.Errorf("duplicate sample direction = %v, want zero", p.Dir)
	}

	for i := 0; i < 20; i++ {
		f.Step()
	}
	for _, pt := range f.Points() {
		if math.IsNaN(pt.Pos.X) || math.IsNaN(pt.Pos.Y) {
			t.Fatalf("NaN position after stepping: %v", pt.Pos)
		}
	}
	img := f.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d lost opacity: %v", i/4, img.Pix[i:i+4])
		}
	}
}

func TestStepAgingAndPruning(t *testing.T) {
	f := newTestField()
	maxAge := f.Params().MaxAge
	f.AddPoint(0.5, 0.5)

	for n := 1; n <= maxAge; n++ {
		f.Step()
		if f.Len() != 1 {
			t.Fatalf("after %d steps expected 1 point, got %d", n, f.Len())
		}
		if got := f.Points()[0].Age; got != n {
			t.Fatalf("after %d steps age = %d", n, got)
		}
	}

	// Boundary: still present at age == maxAge, gone on the next step
	f.Step()
	if f.Len() != 0 {
		t.Errorf("expected point removed after %d steps, %d remain", maxAge+1, f.Len())
	}
	if f.LastExpired() != 1 {
		t.Errorf("LastExpired = %d, want 1", f.LastExpired())
	}
}

func TestStepPreservesOrderOfSurvivors(t *testing.T) {
	f := newTestField()
	maxAge := f.Params().MaxAge

	f.AddPoint(0.1, 0.1)
	for i := 0; i < maxAge; i++ {
		f.Step()
	}
	f.AddPoint(0.2, 0.2)
	f.AddPoint(0.3, 0.3)
	f.AddPoint(0.4, 0.4)

	// Oldest point expires; the three newer ones stay in insertion order
	f.Step()
	pts := f.Points()
	if len(pts) != 3 {
		t.Fatalf("expected 3 survivors, got %d", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Pos.X <= pts[i-1].Pos.X {
			t.Errorf("survivor order broken at %d: %v after %v", i, pts[i].Pos, pts[i-1].Pos)
		}
	}
}

func TestStepDecayStopsDriftAtMaxAge(t *testing.T) {
	f := newTestField()
	maxAge := f.Params().MaxAge
	f.AddPoint(0.2, 0.5)
	f.AddPoint(0.3, 0.5)

	for i := 0; i < maxAge; i++ {
		f.Step()
	}
	before := f.Points()[1].Pos

	// The last advance before removal runs with decay 0: no movement.
	f.Step()
	if f.Len() != 0 {
		t.Fatalf("expected all points expired, got %d", f.Len())
	}

	// Drift sums force * (1 - k/maxAge) * 0.01 for k = 0..maxAge-1
	var want float64 = 0.3
	for k := 0; k < maxAge; k++ {
		want += (1 - float64(k)/float64(maxAge)) * 0.01
	}
	if math.Abs(before.X-want) > 1e-9 {
		t.Errorf("x at max age = %v, want %v", before.X, want)
	}
}

func TestStepMarksTextureForUpload(t *testing.T) {
	f := newTestField()
	if !f.NeedsUpload() {
		t.Error("new field should need an initial upload")
	}
	f.MarkUploaded()
	if f.NeedsUpload() {
		t.Error("expected clean texture after MarkUploaded")
	}
	f.Step()
	if !f.NeedsUpload() {
		t.Error("expected Step to mark texture dirty")
	}
}

func TestStepWithNoPointsLeavesBaseline(t *testing.T) {
	f := newTestField()
	f.Step()
	f.Step()

	img := f.Image()
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected texture size %v", img.Bounds())
	}
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 || img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d = %v, want opaque black", i/4, img.Pix[i:i+4])
		}
	}
}

func TestResetClearsState(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.5, 0.5)
	f.AddPoint(0.6, 0.5)
	for i := 0; i < 15; i++ {
		f.Step()
	}
	f.Reset()

	if f.Len() != 0 {
		t.Errorf("expected no points after Reset, got %d", f.Len())
	}
	// After Reset the next sample is a first sample again
	f.AddPoint(0.9, 0.9)
	if p := f.Points()[0]; p.Force != 0 {
		t.Errorf("first sample after Reset has force %v", p.Force)
	}
	img := f.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+2] != 0 {
			t.Fatalf("pixel %d not cleared after Reset", i/4)
		}
	}
}

func TestRippleParamsFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	p := RippleParamsFromConfig(cfg.Ripple)
	if p != DefaultRippleParams() {
		t.Errorf("params from default config = %+v, want %+v", p, DefaultRippleParams())
	}

	// Zero values fall back to defaults
	p = RippleParamsFromConfig(config.RippleConfig{Size: 32})
	if p.Size != 32 || p.MaxAge != 64 || p.ForceScale != 10000 {
		t.Errorf("unexpected params %+v", p)
	}
	if math.Abs(p.Radius()-3.2) > 1e-9 {
		t.Errorf("radius = %v, want 3.2", p.Radius())
	}
}

func TestIntensities(t *testing.T) {
	f := newTestField()
	f.AddPoint(0.5, 0.5)
	f.AddPoint(0.6, 0.5)
	for i := 0; i < 19; i++ {
		f.Step()
	}

	got := f.Intensities(nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 intensities, got %d", len(got))
	}
	if got[0] != 0 {
		t.Errorf("zero-force point intensity = %v, want 0", got[0])
	}
	if got[1] < 0.99 || got[1] > 1 {
		t.Errorf("full-force point near attack peak intensity = %v, want ~1", got[1])
	}
}

func BenchmarkRippleFieldStep(b *testing.B) {
	f := newTestField()
	for i := 0; i < 64; i++ {
		t := float64(i) / 64
		f.AddPoint(0.5+0.3*math.Cos(t*2*math.Pi), 0.5+0.3*math.Sin(t*2*math.Pi))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
		if f.Len() < 32 {
			f.AddPoint(0.5, 0.5)
			f.AddPoint(0.52, 0.5)
		}
	}
}
