// Package fonts provides the built-in font families and the per-session
// registry of user-uploaded fonts.
//
// The built-in families are the Go fonts, compiled into the binary by
// golang.org/x/image/font/gofont, so every banner has a usable face without
// external files. Custom fonts are added through [Registry.Register], which
// encodes the upload as a data URI, hands it to a [Loader] and only returns
// once the face can measure and paint text.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily is used when a style names a family the registry does not
// know. It mirrors the browser falling back to its default face.
const FallbackFamily = "Go"

type builtin struct {
	family string
	ttf    []byte

	once    sync.Once
	dataURI string
}

var builtins = []*builtin{
	{family: "Go", ttf: goregular.TTF},
	{family: "Go Medium", ttf: gomedium.TTF},
	{family: "Go Bold", ttf: gobold.TTF},
	{family: "Go Italic", ttf: goitalic.TTF},
	{family: "Go Mono", ttf: gomono.TTF},
}

func lookupBuiltin(family string) *builtin {
	for _, b := range builtins {
		if b.family == family {
			return b
		}
	}
	return nil
}

// Builtins returns the names of the built-in families in display order.
func Builtins() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.family
	}
	return names
}

// IsBuiltin reports whether family is one of the built-in families.
func IsBuiltin(family string) bool {
	return lookupBuiltin(family) != nil
}

// BuiltinTTF returns the TrueType data of a built-in family.
func BuiltinTTF(family string) ([]byte, bool) {
	b := lookupBuiltin(family)
	if b == nil {
		return nil, false
	}
	return b.ttf, true
}

// BuiltinDataURI returns a built-in family as a font/ttf data URI.
// The encoding is computed once per family.
func BuiltinDataURI(family string) (string, bool) {
	b := lookupBuiltin(family)
	if b == nil {
		return "", false
	}
	b.once.Do(func() {
		b.dataURI = DataURI(FormatTTF, b.ttf)
	})
	return b.dataURI, true
}

// DataURI encodes data as a base64 data URI with a font/<format> media type.
func DataURI(format Format, data []byte) string {
	return "data:font/" + string(format) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
