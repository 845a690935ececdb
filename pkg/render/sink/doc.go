// Package sink provides output formats for banner trees.
//
// # Available Formats
//
//   - [RenderSVG]: standalone SVG with an embedded @font-face
//   - [RenderPNG]: lossless raster via fogleman/gg
//   - [RenderJPEG]: lossy raster at quality 95 by default
//
// All sinks draw from the same [render.Tree] at design resolution and scale
// the output by a pixel ratio:
//
//	png, err := sink.RenderPNG(tree, sink.WithScale(2), sink.WithFonts(registry))
//	svg, err := sink.RenderSVG(tree, sink.WithSVGScale(2), sink.WithSVGFonts(registry))
//
// Raster sinks are pure Go. Gradients follow the CSS gradient line from
// package css, custom images are fitted with imaging.Fill as CSS "cover"
// does, and text shadows are blurred with imaging.Blur using half the CSS
// blur radius as the Gaussian sigma.
//
// A gradient that does not parse, or a solid color that does not parse,
// paints nothing, leaving the canvas transparent, as a browser would drop
// the invalid declaration.
package sink
