package background

import "sort"

// LayerKind identifies the shape a pattern layer paints inside each tile.
type LayerKind string

const (
	// LayerDot paints a filled circle centered in the tile.
	LayerDot LayerKind = "dot"
	// LayerHLine paints a horizontal line along the top edge of the tile.
	LayerHLine LayerKind = "hline"
	// LayerVLine paints a vertical line along the left edge of the tile.
	LayerVLine LayerKind = "vline"
)

// Layer is one CSS background-image layer of a pattern, kept both as its CSS
// source and in a structured form the sinks can paint directly.
type Layer struct {
	Kind  LayerKind `json:"kind"`
	Color string    `json:"color"`
	// Size is the dot radius or line thickness in px.
	Size float64 `json:"size"`
	CSS  string  `json:"css"`
}

// Pattern is an entry of the static pattern table.
type Pattern struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	BackgroundColor string  `json:"backgroundColor"`
	Layers          []Layer `json:"layers"`
	// TileSize is the edge length of the square repeat tile in px.
	TileSize float64 `json:"tileSize"`
}

// Image returns the CSS background-image value of p.
func (p Pattern) Image() string {
	s := ""
	for i, l := range p.Layers {
		if i > 0 {
			s += ", "
		}
		s += l.CSS
	}
	return s
}

var patterns = map[string]Pattern{
	"dotted-squares-dark": {
		Key:             "dotted-squares-dark",
		Name:            "Dotted Squares Dark",
		BackgroundColor: "#1a1a1a",
		TileSize:        20,
		Layers: []Layer{
			{Kind: LayerDot, Color: "#333", Size: 1, CSS: "radial-gradient(circle, #333 1px, transparent 1px)"},
		},
	},
	"grid-lines": {
		Key:             "grid-lines",
		Name:            "Grid Lines",
		BackgroundColor: "#2a2a2a",
		TileSize:        25,
		Layers: []Layer{
			{Kind: LayerHLine, Color: "#444", Size: 1, CSS: "linear-gradient(#444 1px, transparent 1px)"},
			{Kind: LayerVLine, Color: "#444", Size: 1, CSS: "linear-gradient(90deg, #444 1px, transparent 1px)"},
		},
	},
}

// LookupPattern returns the pattern registered under key.
func LookupPattern(key string) (Pattern, bool) {
	p, ok := patterns[key]
	if !ok {
		return Pattern{}, false
	}
	p.Layers = append([]Layer(nil), p.Layers...)
	return p, true
}

// Patterns returns the pattern table sorted by key.
func Patterns() []Pattern {
	keys := make([]string, 0, len(patterns))
	for k := range patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Pattern, 0, len(keys))
	for _, k := range keys {
		p, _ := LookupPattern(k)
		out = append(out, p)
	}
	return out
}
