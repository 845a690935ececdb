// Package style defines the banner style model.
//
// A [BannerStyle] is an immutable-per-update value describing one banner:
// text, font, color, alignment, spacing, an optional drop shadow and the
// background. The only mutation primitive is [Apply], a pure shallow merge of
// a [Patch] into the current style:
//
//	s := style.Default()
//	s = style.Apply(s, style.Patch{
//	    Text:     style.Ptr("Hello"),
//	    FontSize: style.Ptr(96.0),
//	})
//
// Fields named in the patch replace the current values entirely; every other
// field is carried over. Apply never validates and never fails, which also
// makes every previous style a valid snapshot for a future undo stack.
//
// # Backgrounds
//
// BackgroundValue has no meaning on its own. Its grammar is selected by
// BackgroundType:
//
//   - gradient, template: a CSS background shorthand (a gradient expression)
//   - custom: an image source, normally a data URI
//   - pattern: a key into the static pattern table
//   - solid: ignored; BackgroundColor is painted
//
// BackgroundColor is always populated, so switching back to a solid
// background keeps its own color.
//
// # Templates
//
// [Templates] are read-only partial styles. Selecting one applies
// [TemplatePatch], which sets the background to the template gradient and
// copies the template's suggested font size, color and alignment.
package style
