// Package css parses the subset of CSS values a banner style carries: colors
// and linear gradients.
//
// Values are tokenized with the gorilla CSS scanner. Hex colors are decoded
// with go-colorful and named colors come from the SVG 1.1 keyword table in
// golang.org/x/image/colornames.
//
//	c, _ := css.ParseColor("rgba(0, 0, 0, 0.5)")
//	g, _ := css.ParseLinearGradient("linear-gradient(135deg, #667eea 0%, #764ba2 100%)")
//	x0, y0, x1, y1 := g.Line(1920, 1080)
//
// [LinearGradient.Line] follows the CSS geometry: the gradient line runs
// through the center of the box at the given angle and is long enough for the
// end stops to touch the far corners. Both sinks build their gradients from
// it, so preview and export agree.
package css
