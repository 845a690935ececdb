package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/css"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/session"
	"github.com/matzehuels/bannersmith/pkg/style"
)

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// newTable returns a table in the shared CLI look.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// swatch renders a short color sample. Gradients are sampled at each stop
// and blended in Lab space.
func swatch(value string) string {
	if g, err := css.ParseLinearGradient(value); err == nil && len(g.Stops) > 0 {
		const width = 6
		var b strings.Builder
		for i := 0; i < width; i++ {
			b.WriteString(block(gradientAt(g, float64(i)/(width-1))))
		}
		return b.String()
	}
	c, err := css.ParseColor(value)
	if err != nil || c.A == 0 {
		return StyleDim.Render("—")
	}
	cf, _ := colorful.MakeColor(c)
	return strings.Repeat(block(cf), 6)
}

func block(c colorful.Color) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render(" ")
}

// gradientAt returns the gradient color at offset t in [0, 1].
func gradientAt(g css.LinearGradient, t float64) colorful.Color {
	stops := g.Stops
	first, _ := colorful.MakeColor(stops[0].Color)
	last, _ := colorful.MakeColor(stops[len(stops)-1].Color)
	switch {
	case t <= stops[0].Offset:
		return first
	case t >= stops[len(stops)-1].Offset:
		return last
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, _ := colorful.MakeColor(stops[i-1].Color)
			b, _ := colorful.MakeColor(stops[i].Color)
			span := stops[i].Offset - stops[i-1].Offset
			if span <= 0 {
				return b
			}
			return a.BlendLab(b, (t-stops[i-1].Offset)/span)
		}
	}
	return last
}

// templatesCommand lists the built-in templates.
func (c *CLI) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printTemplates()
			return nil
		},
	}
}

func (c *CLI) printTemplates() {
	t := newTable("ID", "Name", "Preview", "Size", "Color", "Align")
	for _, tpl := range style.Templates() {
		s := tpl.Suggested
		t.Row(tpl.ID, tpl.Name, swatch(tpl.Background), fmt.Sprintf("%gpx", s.FontSize), s.Color, string(s.TextAlign))
	}
	fmt.Fprintln(c.Out, t.Render())

	g := newTable("Gradient preset", "Preview", "Value")
	for _, p := range style.GradientPresets() {
		g.Row(p.Name, swatch(p.Value), p.Value)
	}
	fmt.Fprintln(c.Out, g.Render())
}

// patternsCommand lists the static pattern table.
func (c *CLI) patternsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the background patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printPatterns()
			return nil
		},
	}
}

func (c *CLI) printPatterns() {
	t := newTable("Key", "Name", "Base", "Tile", "Layers")
	for _, p := range background.Patterns() {
		kinds := make([]string, len(p.Layers))
		for i, l := range p.Layers {
			kinds[i] = string(l.Kind) + " " + l.Color
		}
		t.Row(p.Key, p.Name, swatch(p.BackgroundColor), fmt.Sprintf("%gpx", p.TileSize), strings.Join(kinds, ", "))
	}
	fmt.Fprintln(c.Out, t.Render())
}

// fontsCommand lists the fonts available to render, including any files
// given with --font-file or listed in the config.
func (c *CLI) fontsCommand() *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List the available font families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			s := session.New(session.WithLogger(c.Logger))
			defer s.Close()
			for _, path := range append(cfg.Fonts, files...) {
				if err := uploadFontFile(cmd.Context(), s, path); err != nil {
					return err
				}
			}
			c.printFonts(s.Fonts(), s.Registry())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&files, "font-file", nil, "also register this font file (repeatable)")
	return cmd
}

func (c *CLI) printFonts(entries []session.FontEntry, reg *fonts.Registry) {
	t := newTable("Family", "Name", "Source")
	for _, e := range entries {
		src := "built-in"
		if e.Custom {
			src = "upload"
			for _, cf := range reg.Fonts() {
				if cf.Family == e.Family {
					src = "upload (" + string(cf.Format) + ")"
				}
			}
		}
		t.Row(e.Family, e.DisplayName, src)
	}
	fmt.Fprintln(c.Out, t.Render())
}
