package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	family string
	size   float64
}

// measureFaces caches faces used for measurement. The mutex also
// serializes use of the faces, which keep internal buffers.
type measureFaces struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func (reg *Registry) measureFace(family string, size float64) font.Face {
	h := reg.ResolveOrFallback(family)
	key := faceKey{family: h.Family, size: size}

	if reg.measure.faces == nil {
		reg.measure.faces = make(map[faceKey]font.Face)
	}
	if f, ok := reg.measure.faces[key]; ok {
		return f
	}
	f, err := NewFace(h.Font, size)
	if err != nil {
		return nil
	}
	reg.measure.faces[key] = f
	return f
}

// Advance returns the advance width in px of s set in family at size.
// Unknown families are measured with FallbackFamily.
func (reg *Registry) Advance(family string, size float64, s string) float64 {
	reg.measure.mu.Lock()
	defer reg.measure.mu.Unlock()
	f := reg.measureFace(family, size)
	if f == nil {
		return 0
	}
	return toFloat(font.MeasureString(f, s))
}

// Metrics returns the ascent and descent in px of family at size.
func (reg *Registry) Metrics(family string, size float64) (ascent, descent float64) {
	reg.measure.mu.Lock()
	defer reg.measure.mu.Unlock()
	f := reg.measureFace(family, size)
	if f == nil {
		return size * 0.8, size * 0.2
	}
	m := f.Metrics()
	return toFloat(m.Ascent), toFloat(m.Descent)
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
