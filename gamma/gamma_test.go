package gamma

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a)-float64(b)) < 1e-6
}

func flat(size int, v float32) *Table {
	t := NewTable(size)
	for i := 0; i < size; i++ {
		t.R[i], t.G[i], t.B[i] = v, v, v
	}
	return t
}

func TestCurveChannelWeights(t *testing.T) {
	for _, tc := range []struct {
		name       string
		sample     float32
		brightness float32
		filter     Filter
		intensity  float32
		r, g, b    float32
	}{
		{"none full brightness", 0.8, 1, FilterNone, 0, 0.8, 0.8, 0.8},
		{"dim only", 0.8, 0.5, FilterNone, 0, 0.4, 0.4, 0.4},
		{"orange at half brightness", 0.8, 0.5, FilterOrange, 1, 0.6, 0.28, 0.08},
		{"orange half intensity", 1, 1, FilterOrange, 0.5, 1, 0.85, 0.6},
		{"red boost", 0.5, 1, FilterRed, 1, 0.65, 0.1, 0.1},
		{"green boost", 0.5, 1, FilterGreen, 1, 0.1, 0.65, 0.1},
		{"blue boost", 0.5, 1, FilterBlue, 1, 0.1, 0.1, 0.65},
	} {
		out := Curve(flat(8, tc.sample), tc.brightness, tc.filter, tc.intensity)
		if !near(out.R[3], tc.r) || !near(out.G[3], tc.g) || !near(out.B[3], tc.b) {
			t.Errorf("%s: got (%v, %v, %v), want (%v, %v, %v)",
				tc.name, out.R[3], out.G[3], out.B[3], tc.r, tc.g, tc.b)
		}
	}
}

func TestCurveClampsBoostedChannel(t *testing.T) {
	// 0.9 * 1.3 would exceed the representable range.
	out := Curve(flat(4, 0.9), 1, FilterRed, 1)
	if out.R[0] != 1 {
		t.Errorf("boosted red sample = %v, want clamped to 1", out.R[0])
	}
	out = Curve(flat(4, 0.5), 1, FilterRed, 1)
	if !near(out.R[0], 0.65) {
		t.Errorf("boosted red sample = %v, want 0.65", out.R[0])
	}
}

func TestCurveBrightnessFloor(t *testing.T) {
	floored := Curve(Identity(16), 0, FilterNone, 0)
	want := Curve(Identity(16), MinBrightness, FilterNone, 0)
	if !floored.Equal(want) {
		t.Error("brightness 0 should behave as the 0.05 floor")
	}
}

func TestCurveDeterministic(t *testing.T) {
	base := Identity(256)
	a := Curve(base, 0.73, FilterOrange, 0.42)
	b := Curve(base, 0.73, FilterOrange, 0.42)
	if !a.Equal(b) {
		t.Error("identical inputs must produce bit-identical tables")
	}
}

func TestCurveNeutralIsBaseline(t *testing.T) {
	base := Identity(64)
	if !Curve(base, 1, FilterNone, 0).Equal(base) {
		t.Error("neutral curve should reproduce the baseline")
	}
}

func TestCurveDoesNotMutateBaseline(t *testing.T) {
	base := Identity(16)
	orig := base.Clone()
	Curve(base, 0.5, FilterBlue, 1)
	if !base.Equal(orig) {
		t.Error("Curve mutated its input")
	}
}

func TestParseFilter(t *testing.T) {
	for _, f := range []Filter{FilterNone, FilterOrange, FilterRed, FilterGreen, FilterBlue} {
		got, err := ParseFilter(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFilter(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseFilter("sepia"); err == nil {
		t.Error("ParseFilter should reject unknown names")
	}
}

func TestIdentity(t *testing.T) {
	id := Identity(256)
	if id.R[0] != 0 || id.R[255] != 1 || !near(id.G[128], float32(128)/255) {
		t.Errorf("unexpected identity ramp: %v %v %v", id.R[0], id.R[255], id.G[128])
	}
}
