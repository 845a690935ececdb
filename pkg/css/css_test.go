package css

import (
	"image/color"
	"math"
	"testing"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}},
		{"#FFF", color.NRGBA{255, 255, 255, 255}},
		{"#1a1a1a", color.NRGBA{0x1a, 0x1a, 0x1a, 255}},
		{"#0093E9", color.NRGBA{0x00, 0x93, 0xe9, 255}},
		{"#f008", color.NRGBA{255, 0, 0, 0x88}},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}},
		{"rgba(0, 0, 0, 0.5)", color.NRGBA{0, 0, 0, 128}},
		{"rgb(0 128 255 / 50%)", color.NRGBA{0, 128, 255, 128}},
		{"rgb(100%, 0%, 0%)", color.NRGBA{255, 0, 0, 255}},
		{"RGBA(300, -4, 0, 2)", color.NRGBA{255, 0, 0, 255}},
		{"red", color.NRGBA{255, 0, 0, 255}},
		{"  White ", color.NRGBA{255, 255, 255, 255}},
		{"transparent", color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#ff", "#gggggg", "rgb(1, 2)", "rgb(1, 2, 3", "hsl(0, 0%, 0%)", "notacolor"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			if err == nil {
				t.Fatalf("ParseColor(%q) succeeded", in)
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestMustParseColor(t *testing.T) {
	fb := color.NRGBA{1, 2, 3, 4}
	if got := MustParseColor("bogus", fb); got != fb {
		t.Errorf("got %v, want fallback", got)
	}
	if got := MustParseColor("#000", fb); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("got %v", got)
	}
}

func TestHexOpacity(t *testing.T) {
	c := color.NRGBA{0x66, 0x7e, 0xea, 0x80}
	if got := Hex(c); got != "#667eea" {
		t.Errorf("Hex = %q", got)
	}
	if got := Opacity(c); math.Abs(got-0.502) > 0.001 {
		t.Errorf("Opacity = %v", got)
	}
}

func TestParseLinearGradient(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		angle   float64
		offsets []float64
	}{
		{"default template", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", 135, []float64{0, 1}},
		{"no direction", "linear-gradient(red, blue)", 180, []float64{0, 1}},
		{"to right", "linear-gradient(to right, red, green, blue)", 90, []float64{0, 0.5, 1}},
		{"to top", "linear-gradient(to top, red 20%, blue)", 0, []float64{0.2, 1}},
		{"turn", "linear-gradient(0.25turn, red, blue)", 90, []float64{0, 1}},
		{"negative", "linear-gradient(-45deg, red, blue)", -45, []float64{0, 1}},
		{"zero", "linear-gradient(0, red, blue)", 0, []float64{0, 1}},
		{"rgba stops", "linear-gradient(90deg, rgba(0, 0, 0, 0.5) 10%, rgba(255, 255, 255, 1) 90%)", 90, []float64{0.1, 0.9}},
		{"spread interior", "linear-gradient(red 0%, white, white, blue 90%)", 180, []float64{0, 0.3, 0.6, 0.9}},
		{"clamped", "linear-gradient(red 50%, blue 20%)", 180, []float64{0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseLinearGradient(tt.in)
			if err != nil {
				t.Fatalf("ParseLinearGradient(%q) error: %v", tt.in, err)
			}
			if g.Angle != tt.angle {
				t.Errorf("Angle = %v, want %v", g.Angle, tt.angle)
			}
			if len(g.Stops) != len(tt.offsets) {
				t.Fatalf("len(Stops) = %d, want %d", len(g.Stops), len(tt.offsets))
			}
			for i, want := range tt.offsets {
				if math.Abs(g.Stops[i].Offset-want) > 1e-9 {
					t.Errorf("stop %d offset = %v, want %v", i, g.Stops[i].Offset, want)
				}
			}
		})
	}
}

func TestParseLinearGradientErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"#667eea",
		"radial-gradient(circle, #333 1px, transparent 1px)",
		"linear-gradient(135deg, red)",
		"linear-gradient(135deg, red, blue",
		"linear-gradient(to nowhere, red, blue)",
		"linear-gradient(135deg, red, notacolor)",
		"linear-gradient(45, red, blue)",
	} {
		if _, err := ParseLinearGradient(in); err == nil {
			t.Errorf("ParseLinearGradient(%q) succeeded", in)
		}
	}
}

func TestGradientLine(t *testing.T) {
	const eps = 1e-9
	near := func(a, b float64) bool { return math.Abs(a-b) < eps }

	g, _ := ParseLinearGradient("linear-gradient(to right, red, blue)")
	x0, y0, x1, y1 := g.Line(200, 100)
	if !near(x0, 0) || !near(y0, 50) || !near(x1, 200) || !near(y1, 50) {
		t.Errorf("to right line = (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}

	g, _ = ParseLinearGradient("linear-gradient(red, blue)")
	x0, y0, x1, y1 = g.Line(200, 100)
	if !near(x0, 100) || !near(y0, 0) || !near(x1, 100) || !near(y1, 100) {
		t.Errorf("to bottom line = (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}

	// 45deg in a square reaches corner to corner.
	g, _ = ParseLinearGradient("linear-gradient(45deg, red, blue)")
	x0, y0, x1, y1 = g.Line(100, 100)
	if !near(x0, 0) || !near(y0, 100) || !near(x1, 100) || !near(y1, 0) {
		t.Errorf("45deg line = (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}
}

func TestGradientCorner(t *testing.T) {
	g, err := ParseLinearGradient("linear-gradient(to bottom right, red, blue)")
	if err != nil {
		t.Fatal(err)
	}
	if !g.ToCorner() {
		t.Fatal("ToCorner() = false")
	}
	if got := g.AngleFor(100, 100); math.Abs(got-135) > 1e-9 {
		t.Errorf("square corner angle = %v, want 135", got)
	}
	// A wide box tilts the line toward the bottom edge.
	if got := g.AngleFor(1920, 1080); got <= 135 || got >= 180 {
		t.Errorf("wide corner angle = %v, want between 135 and 180", got)
	}
}
