package errors

import (
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid font", "Roboto-Regular.ttf", false},
		{"valid with spaces", "Li Chayana Teesta Unicode.ttf", false},
		{"valid export", "banner-1700000000000", false},
		{"valid unicode", "বাংলা.otf", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "fonts/evil.ttf", true},
		{"backslash", `fonts\evil.ttf`, true},
		{"traversal", "..", true},
		{"dot", ".", true},
		{"null byte", "foo\x00.ttf", true},
		{"newline", "foo\n.ttf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFilename) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFilename)
			}
		})
	}
}

func TestValidateDataURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		family  string
		wantErr bool
	}{
		{"png image", "data:image/png;base64,iVBORw0KGgo=", "image/", false},
		{"any family", "data:font/ttf;base64,AAEAAA==", "", false},
		{"font as image", "data:font/ttf;base64,AAEAAA==", "image/", true},
		{"no scheme", "image/png;base64,AAAA", "image/", true},
		{"no payload", "data:image/png;base64", "image/", true},
		{"url", "https://example.com/bg.png", "image/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataURI(tt.input, tt.family)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataURI(%q, %q) error = %v, wantErr %v", tt.input, tt.family, err, tt.wantErr)
			}
		})
	}
}
