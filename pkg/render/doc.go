// Package render derives the visual tree of a banner from its style.
//
// # Overview
//
// [Render] is the preview renderer. It is called on every style change and
// maps a [style.BannerStyle] to a [Tree]: a fixed-size canvas (1920×1080 by
// default) with a full-bleed background paint and a centered text block.
//
//	tree := render.Render(s, render.Options{
//	    Placeholder: "Type your banner text...",
//	    Measurer:    registry,
//	})
//	svg, err := sink.RenderSVG(tree)
//
// # Layout
//
// The text block is at most 896px wide and inset 48px from the canvas
// edges. It is centered both ways; lines are aligned inside it. Each line
// box is FontSize×LineHeight tall with the glyphs centered in it, matching
// CSS line-height. Text wraps between words, and a word that cannot fit on
// a line by itself is broken between characters.
//
// Empty text is replaced by Options.Placeholder. The renderer has no
// opinion on placeholder content.
//
// # Output
//
// The [sink] subpackage turns a Tree into SVG, PNG or JPEG bytes.
//
// [sink]: github.com/matzehuels/bannersmith/pkg/render/sink
package render
