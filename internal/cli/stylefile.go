package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/css"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// styleFile is a banner description on disk. Style fields sit at the top
// level next to optional file references, which resolve relative to the
// style file.
//
//	text = "Launch day"
//	font_size = 96
//	template = "template-1"
//	font_file = "fonts/Brand-Bold.woff2"
type styleFile struct {
	style.Patch

	Template        string `json:"template,omitempty" toml:"template"`
	FontFile        string `json:"fontFile,omitempty" toml:"font_file"`
	BackgroundImage string `json:"backgroundImage,omitempty" toml:"background_image"`
}

// loadStyleFile decodes a TOML or JSON style file. The extension picks the
// decoder; unknown keys are rejected.
func loadStyleFile(path string) (styleFile, error) {
	var sf styleFile
	data, err := os.ReadFile(path)
	if err != nil {
		return sf, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read style file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sf); err != nil {
			return sf, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse %s", filepath.Base(path))
		}
	case ".toml", "":
		md, err := toml.Decode(string(data), &sf)
		if err != nil {
			return sf, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse %s", filepath.Base(path))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return sf, errors.New(errors.ErrCodeInvalidInput, "unknown key %q in %s", undecoded[0].String(), filepath.Base(path))
		}
	default:
		return sf, errors.New(errors.ErrCodeInvalidInput, "style file must be .toml or .json, got %s", filepath.Ext(path))
	}

	base := filepath.Dir(path)
	sf.FontFile = resolveRelative(base, sf.FontFile)
	sf.BackgroundImage = resolveRelative(base, sf.BackgroundImage)
	return sf, nil
}

func resolveRelative(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// backgroundPatch interprets a --background value. Accepted forms, in order:
// a linear-gradient(...) value, a pattern key, a gradient preset name, or a
// CSS color.
func backgroundPatch(value string) (style.Patch, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return style.Patch{}, errors.New(errors.ErrCodeInvalidInput, "background cannot be empty")
	}
	if strings.HasPrefix(strings.ToLower(v), "linear-gradient(") {
		if _, err := css.ParseLinearGradient(v); err != nil {
			return style.Patch{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid background gradient")
		}
		return style.GradientPatch(v), nil
	}
	if _, ok := background.LookupPattern(v); ok {
		return style.PatternPatch(v), nil
	}
	for _, p := range style.GradientPresets() {
		if strings.EqualFold(p.Name, v) {
			return style.GradientPatch(p.Value), nil
		}
	}
	if _, err := css.ParseColor(v); err == nil {
		return style.SolidPatch(v), nil
	}
	return style.Patch{}, errors.New(errors.ErrCodeInvalidInput,
		"unrecognized background %q (use a linear-gradient, pattern key, preset name or color)", v)
}
