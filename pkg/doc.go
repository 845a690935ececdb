// Package pkg provides the core libraries for Bannersmith banner editing.
//
// # Overview
//
// Bannersmith turns a styled line of text into a 1920×1080 banner that can be
// previewed and exported as PNG, JPEG or SVG. The pkg directory is organized
// by stage:
//
//  1. [style] - The banner style value, partial patches and templates
//  2. [background] - Resolving the background fields into a paint
//  3. [fonts] - Built-in faces and runtime font registration
//  4. [render] - The visual tree shared by preview and export
//  5. [pipeline] - Export orchestration with caching and delivery
//  6. [session] - One editing session tying the stages together
//
// Supporting packages: [css] parses CSS colors and gradients, [cache] stores
// export artifacts, [errors] defines the error codes surfaced to users, and
// [observability] exposes hooks for logging and metrics.
//
// # Architecture
//
// The typical data flow through Bannersmith:
//
//	style.Patch (user edit, template, upload)
//	         ↓
//	    [session] (apply the patch to the current style)
//	         ↓
//	    [render] (background.Resolve + text layout → Tree)
//	         ↓
//	    [pipeline] (cache lookup, sink encode, download)
//	         ↓
//	    PNG/JPEG/SVG file
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bannersmith/pkg/session"
//	    "github.com/matzehuels/bannersmith/pkg/style"
//	)
//
//	s := session.New()
//	s.ApplyPatch(style.Patch{Text: style.Ptr("Launch day")})
//	if _, err := s.SelectTemplateID("template-2"); err != nil {
//	    return err
//	}
//	art, err := s.RequestExport(context.Background(), "png", 2)
//	// art.Filename == "banner-<unix millis>.png", art.Width == 3840
//
// [style]: github.com/matzehuels/bannersmith/pkg/style
// [background]: github.com/matzehuels/bannersmith/pkg/background
// [fonts]: github.com/matzehuels/bannersmith/pkg/fonts
// [render]: github.com/matzehuels/bannersmith/pkg/render
// [pipeline]: github.com/matzehuels/bannersmith/pkg/pipeline
// [session]: github.com/matzehuels/bannersmith/pkg/session
// [css]: github.com/matzehuels/bannersmith/pkg/css
// [cache]: github.com/matzehuels/bannersmith/pkg/cache
// [errors]: github.com/matzehuels/bannersmith/pkg/errors
// [observability]: github.com/matzehuels/bannersmith/pkg/observability
package pkg
