package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/pipeline"
	"github.com/matzehuels/bannersmith/pkg/session"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	styleFile       string   // optional TOML/JSON style file
	output          string   // output file or directory
	format          string   // png, jpeg or svg
	scale           int      // 1, 2 or 4
	template        string   // template id applied before flags
	background      string   // gradient, pattern key, preset name or color
	backgroundImage string   // image file used as cover background
	fontFiles       []string // uploaded fonts; the last one is selected
	placeholder     string
	refresh         bool // bypass the artifact cache
	noCache         bool

	// flag-backed style fields; applied only when the flag was set
	text          string
	font          string
	size          float64
	color         string
	align         string
	letterSpacing float64
	lineHeight    float64
	shadow        bool
}

// renderCommand creates the render command for exporting a banner.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [style.toml|style.json]",
		Short: "Export a banner as PNG, JPEG or SVG",
		Long: `Export a banner built from an optional style file and flags.

Style sources apply in order: the configured template, the style file,
--template, then the individual style flags.`,
		Example: `  bannersmith render --text "Launch day" --template template-1 -s 4
  bannersmith render banner.toml -o out/promo.jpeg
  bannersmith render --text "Hi" --background grid-lines --font-file Brand.woff2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.styleFile = args[0]
			}
			patch, err := flagPatch(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd, &opts, patch)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "banner text")
	f.StringVar(&opts.font, "font", "", "font family (see 'bannersmith fonts')")
	f.StringArrayVar(&opts.fontFiles, "font-file", nil, "register a .ttf/.otf/.woff/.woff2 file and use it (repeatable)")
	f.Float64Var(&opts.size, "size", 0, "font size in px")
	f.StringVar(&opts.color, "color", "", "text color")
	f.StringVar(&opts.align, "align", "", "text alignment: left, center, right")
	f.Float64Var(&opts.letterSpacing, "letter-spacing", 0, "letter spacing in px")
	f.Float64Var(&opts.lineHeight, "line-height", 0, "line height multiplier")
	f.BoolVar(&opts.shadow, "shadow", false, "enable the text shadow")
	f.StringVar(&opts.template, "template", "", "template id (see 'bannersmith templates')")
	f.StringVar(&opts.background, "background", "", "linear-gradient(...), pattern key, preset name or color")
	f.StringVar(&opts.backgroundImage, "background-image", "", "image file used as the background")
	f.StringVarP(&opts.format, "export-format", "f", "", "export format: png (default), jpeg, svg")
	f.IntVarP(&opts.scale, "scale", "s", 0, "pixel ratio: 1, 2 (default) or 4")
	f.StringVarP(&opts.output, "output", "o", "", "output file or directory")
	f.StringVar(&opts.placeholder, "placeholder", "", "text exported when the banner text is empty")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached export exists")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var ids []string
		for _, t := range style.Templates() {
			ids = append(ids, t.ID+"\t"+t.Name)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("export-format", cobra.FixedCompletions(
		[]string{pipeline.FormatPNG, pipeline.FormatJPEG, pipeline.FormatSVG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// flagPatch builds a patch from the style flags the user actually set.
func flagPatch(cmd *cobra.Command, opts *renderOpts) (style.Patch, error) {
	var p style.Patch
	changed := cmd.Flags().Changed

	if changed("text") {
		p.Text = style.Ptr(opts.text)
	}
	if changed("font") {
		p.FontFamily = style.Ptr(opts.font)
	}
	if changed("size") {
		if opts.size <= 0 {
			return p, errors.New(errors.ErrCodeInvalidInput, "--size must be positive")
		}
		p.FontSize = style.Ptr(opts.size)
	}
	if changed("color") {
		p.Color = style.Ptr(opts.color)
	}
	if changed("align") {
		a, ok := style.ParseAlign(opts.align)
		if !ok {
			return p, errors.New(errors.ErrCodeInvalidInput, "invalid --align %q (must be left, center or right)", opts.align)
		}
		p.TextAlign = style.Ptr(a)
	}
	if changed("letter-spacing") {
		p.LetterSpacing = style.Ptr(opts.letterSpacing)
	}
	if changed("line-height") {
		if opts.lineHeight <= 0 {
			return p, errors.New(errors.ErrCodeInvalidInput, "--line-height must be positive")
		}
		p.LineHeight = style.Ptr(opts.lineHeight)
	}
	if changed("shadow") {
		p.ShadowEnabled = style.Ptr(opts.shadow)
	}
	if changed("background") {
		bg, err := backgroundPatch(opts.background)
		if err != nil {
			return p, err
		}
		p = p.Merge(bg)
	}
	return p, nil
}

// outputTarget splits -o into a directory, a base name and, when the
// extension names a format, that format.
func outputTarget(output, defaultDir string) (dir, name, format string) {
	if output == "" {
		return defaultDir, "", ""
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return output, "", ""
	}
	if fi, err := os.Stat(output); err == nil && fi.IsDir() {
		return output, "", ""
	}

	dir, name = filepath.Split(output)
	if dir == "" {
		dir = "."
	}
	if ext := filepath.Ext(name); ext != "" {
		if f := pipeline.ParseFormat(strings.TrimPrefix(ext, ".")); pipeline.ValidFormats[f] {
			return filepath.Clean(dir), strings.TrimSuffix(name, ext), f
		}
	}
	return filepath.Clean(dir), name, ""
}

// buildSession creates a session with the configured fonts registered and
// every style source applied.
func (c *CLI) buildSession(ctx context.Context, cfg Config, opts *renderOpts, flags style.Patch) (*session.Session, *pipeline.Runner, error) {
	reg := fonts.NewRegistry(fonts.WithLogger(c.Logger))
	runner, err := c.newRunner(cfg, reg)
	if err != nil {
		return nil, nil, err
	}

	placeholder := cfg.Placeholder
	if opts.placeholder != "" {
		placeholder = opts.placeholder
	}
	s := session.New(
		session.WithRegistry(reg),
		session.WithRunner(runner),
		session.WithLogger(c.Logger),
		session.WithPlaceholder(placeholder),
	)

	// Fonts from the config are available but only selected if named.
	family := s.Style().FontFamily
	for _, path := range cfg.Fonts {
		if err := uploadFontFile(ctx, s, path); err != nil {
			return nil, nil, err
		}
	}
	s.ApplyPatch(style.Patch{FontFamily: style.Ptr(family)})

	if cfg.Template != "" {
		if _, err := s.SelectTemplateID(cfg.Template); err != nil {
			return nil, nil, err
		}
	}

	fontFiles := opts.fontFiles
	bgImage := opts.backgroundImage
	if opts.styleFile != "" {
		sf, err := loadStyleFile(opts.styleFile)
		if err != nil {
			return nil, nil, err
		}
		if sf.Template != "" {
			if _, err := s.SelectTemplateID(sf.Template); err != nil {
				return nil, nil, err
			}
		}
		s.ApplyPatch(sf.Patch)
		if sf.FontFile != "" {
			fontFiles = append([]string{sf.FontFile}, fontFiles...)
		}
		if bgImage == "" {
			bgImage = sf.BackgroundImage
		}
	}

	if opts.template != "" {
		if _, err := s.SelectTemplateID(opts.template); err != nil {
			return nil, nil, err
		}
	}
	for _, path := range fontFiles {
		if err := uploadFontFile(ctx, s, path); err != nil {
			return nil, nil, err
		}
	}
	if bgImage != "" {
		if err := uploadBackgroundFile(ctx, s, bgImage); err != nil {
			return nil, nil, err
		}
	}
	s.ApplyPatch(flags)
	return s, runner, nil
}

func uploadFontFile(ctx context.Context, s *session.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFontRead, err, "failed to open font %s", path)
	}
	defer f.Close()
	_, err = s.UploadFont(ctx, f, filepath.Base(path))
	return err
}

func uploadBackgroundFile(ctx context.Context, s *session.Session, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "failed to open image %s", path)
	}
	defer f.Close()
	return s.UploadBackgroundImage(ctx, f)
}

// runRender builds the banner and exports it.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, opts *renderOpts, flags style.Patch) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.config()
	if err != nil {
		return err
	}
	if opts.noCache {
		cfg.NoCache = true
	}

	dir, name, extFormat := outputTarget(opts.output, cfg.OutputDir)
	format := cfg.Format
	switch {
	case opts.format != "":
		format = pipeline.ParseFormat(opts.format)
	case extFormat != "":
		format = extFormat
	}
	scale := cfg.Scale
	if opts.scale != 0 {
		scale = opts.scale
	}

	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Loading banner...")
	spin.Start()
	defer spin.Stop()

	s, runner, err := c.buildSession(ctx, cfg, opts, flags)
	if err != nil {
		spin.StopWithError(errors.UserMessage(err))
		return err
	}
	defer s.Close()

	dl := pipeline.NewDirDownloader(dir)
	runner.Downloader = dl

	if s.Tree().Text.Placeholder {
		spin.Stop()
		printWarning(c.Out, "Banner text is empty, exporting the placeholder")
	}

	logger.Debug("exporting", "format", format, "scale", scale, "dir", dir, "template", opts.template)
	prog := newProgress(logger)
	spin.SetMessage("Rendering banner...")
	art, err := s.Export(ctx, pipeline.Options{
		Format:   format,
		Scale:    scale,
		Filename: name,
		Refresh:  opts.refresh,
	})
	if err != nil {
		if spin.Cancelled() {
			spin.Stop()
			return context.Canceled
		}
		spin.StopWithError(errors.UserMessage(err))
		return err
	}

	prog.done("Exported", "file", art.Filename)
	spin.StopWithSuccess("Exported " + art.Filename)
	printArtifact(c.Out, dl.Path(art), art)
	return nil
}
