package style

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	s := Default()

	if s.Text != DefaultText {
		t.Errorf("Text = %q, want %q", s.Text, DefaultText)
	}
	if s.FontSize != 64 {
		t.Errorf("FontSize = %v, want 64", s.FontSize)
	}
	if s.TextAlign != AlignCenter {
		t.Errorf("TextAlign = %q, want center", s.TextAlign)
	}
	if s.ShadowEnabled {
		t.Error("shadow should start disabled")
	}
	if s.BackgroundType != BackgroundGradient || s.BackgroundValue != DefaultGradient {
		t.Errorf("background = %q/%q", s.BackgroundType, s.BackgroundValue)
	}
	if s.BackgroundColor == "" {
		t.Error("BackgroundColor must always be populated")
	}
}

func TestApplyReplacesOnlyPresentFields(t *testing.T) {
	base := Default()

	tests := []struct {
		name  string
		patch Patch
		check func(t *testing.T, got BannerStyle)
	}{
		{
			name:  "empty patch is identity",
			patch: Patch{},
			check: func(t *testing.T, got BannerStyle) {
				if got != base {
					t.Errorf("Apply(s, {}) = %+v, want %+v", got, base)
				}
			},
		},
		{
			name:  "text only",
			patch: Patch{Text: Ptr("Hello")},
			check: func(t *testing.T, got BannerStyle) {
				want := base
				want.Text = "Hello"
				if got != want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			},
		},
		{
			name:  "empty text is a value, not absence",
			patch: Patch{Text: Ptr("")},
			check: func(t *testing.T, got BannerStyle) {
				if got.Text != "" {
					t.Errorf("Text = %q, want empty", got.Text)
				}
			},
		},
		{
			name:  "zero spacing is applied",
			patch: Patch{LetterSpacing: Ptr(0.0), ShadowEnabled: Ptr(false)},
			check: func(t *testing.T, got BannerStyle) {
				if got.LetterSpacing != 0 || got.ShadowEnabled {
					t.Errorf("got %+v", got)
				}
			},
		},
		{
			name:  "no validation",
			patch: Patch{FontSize: Ptr(-5.0), Color: Ptr("not-a-color")},
			check: func(t *testing.T, got BannerStyle) {
				if got.FontSize != -5 || got.Color != "not-a-color" {
					t.Errorf("got size=%v color=%q", got.FontSize, got.Color)
				}
			},
		},
		{
			name:  "unknown background type is representable",
			patch: Patch{BackgroundType: Ptr(BackgroundType("hologram"))},
			check: func(t *testing.T, got BannerStyle) {
				if got.BackgroundType != "hologram" {
					t.Errorf("BackgroundType = %q", got.BackgroundType)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Apply(base, tt.patch))
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := Default()
	before := base

	_ = Apply(base, Patch{Text: Ptr("changed"), FontSize: Ptr(100.0)})

	if base != before {
		t.Error("Apply mutated its input")
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	p := Patch{Text: Ptr("x"), Color: Ptr("#000"), ShadowBlur: Ptr(9.0)}
	once := Apply(Default(), p)
	twice := Apply(once, p)
	if once != twice {
		t.Errorf("Apply not idempotent: %+v vs %+v", once, twice)
	}
}

func TestApplyEveryField(t *testing.T) {
	want := BannerStyle{
		Text:            "t",
		FontFamily:      "Go Mono",
		FontSize:        99,
		Color:           "red",
		TextAlign:       AlignRight,
		LetterSpacing:   3,
		LineHeight:      2,
		ShadowEnabled:   true,
		ShadowX:         -1,
		ShadowY:         5,
		ShadowBlur:      7,
		ShadowColor:     "#000",
		BackgroundType:  BackgroundPattern,
		BackgroundValue: "grid-lines",
		BackgroundColor: "#123456",
	}
	p := Patch{
		Text:            Ptr(want.Text),
		FontFamily:      Ptr(want.FontFamily),
		FontSize:        Ptr(want.FontSize),
		Color:           Ptr(want.Color),
		TextAlign:       Ptr(want.TextAlign),
		LetterSpacing:   Ptr(want.LetterSpacing),
		LineHeight:      Ptr(want.LineHeight),
		ShadowEnabled:   Ptr(want.ShadowEnabled),
		ShadowX:         Ptr(want.ShadowX),
		ShadowY:         Ptr(want.ShadowY),
		ShadowBlur:      Ptr(want.ShadowBlur),
		ShadowColor:     Ptr(want.ShadowColor),
		BackgroundType:  Ptr(want.BackgroundType),
		BackgroundValue: Ptr(want.BackgroundValue),
		BackgroundColor: Ptr(want.BackgroundColor),
	}

	if got := Apply(Default(), p); got != want {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
	if n := len(p.Fields()); n != reflect.TypeOf(BannerStyle{}).NumField() {
		t.Errorf("Fields() = %d names, want one per style field", n)
	}
}

func TestPatchFields(t *testing.T) {
	p := Patch{FontSize: Ptr(10.0), Text: Ptr("a")}
	got := p.Fields()
	want := []string{"text", "fontSize"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
	if p.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty patch")
	}
	if !(Patch{}).IsEmpty() {
		t.Error("IsEmpty() = false for empty patch")
	}
}

func TestPatchMerge(t *testing.T) {
	a := Patch{Text: Ptr("a"), Color: Ptr("#111")}
	b := Patch{Color: Ptr("#222"), FontSize: Ptr(30.0)}

	got := Apply(Default(), a.Merge(b))
	if got.Text != "a" || got.Color != "#222" || got.FontSize != 30 {
		t.Errorf("merged = %+v", got)
	}
	if got != Apply(Apply(Default(), a), b) {
		t.Error("Merge must equal sequential Apply")
	}
}

func TestBackgroundPatches(t *testing.T) {
	s := Apply(Default(), SolidPatch("#ff0000"))
	if s.BackgroundType != BackgroundSolid || s.BackgroundColor != "#ff0000" || s.BackgroundValue != "#ff0000" {
		t.Errorf("SolidPatch: %+v", s)
	}

	s = Apply(s, PatternPatch("grid-lines"))
	if s.BackgroundType != BackgroundPattern || s.BackgroundValue != "grid-lines" {
		t.Errorf("PatternPatch: %+v", s)
	}
	if s.BackgroundColor != "#ff0000" {
		t.Errorf("PatternPatch must keep BackgroundColor, got %q", s.BackgroundColor)
	}

	s = Apply(s, ImagePatch("data:image/png;base64,AAAA"))
	if s.BackgroundType != BackgroundCustom {
		t.Errorf("ImagePatch: %+v", s)
	}

	g := "linear-gradient(90deg, red, blue)"
	s = Apply(s, GradientPatch(g))
	if s.BackgroundType != BackgroundGradient || s.BackgroundValue != g {
		t.Errorf("GradientPatch: %+v", s)
	}
}

func TestParseAlign(t *testing.T) {
	for _, in := range []string{"left", "center", "right"} {
		if a, ok := ParseAlign(in); !ok || string(a) != in {
			t.Errorf("ParseAlign(%q) = %q, %v", in, a, ok)
		}
	}
	if _, ok := ParseAlign("justify"); ok {
		t.Error("ParseAlign(justify) should fail")
	}
}

func TestIsKnownBackground(t *testing.T) {
	for _, bt := range BackgroundTypes {
		if !IsKnownBackground(bt) {
			t.Errorf("IsKnownBackground(%q) = false", bt)
		}
	}
	if IsKnownBackground("hologram") {
		t.Error("IsKnownBackground(hologram) = true")
	}
}

func TestStyleEncoding(t *testing.T) {
	s := Default()

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatal(err)
		}
		for _, key := range []string{"fontFamily", "backgroundType", "shadowEnabled"} {
			if _, ok := m[key]; !ok {
				t.Errorf("json missing %q", key)
			}
		}
	})

	t.Run("toml patch", func(t *testing.T) {
		doc := `
text = "Launch day"
font_size = 96.0
background_type = "pattern"
background_value = "grid-lines"
`
		var p Patch
		if _, err := toml.Decode(doc, &p); err != nil {
			t.Fatal(err)
		}
		got := Apply(s, p)
		if got.Text != "Launch day" || got.FontSize != 96 || got.BackgroundType != BackgroundPattern {
			t.Errorf("decoded patch applied = %+v", got)
		}
		if got.Color != s.Color {
			t.Error("absent toml key must leave field untouched")
		}
	})
}
