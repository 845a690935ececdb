package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/buildinfo"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/pipeline"
	"github.com/matzehuels/bannersmith/pkg/session"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// Editor styles
var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	editDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	editErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	editOKStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	editPreviewStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "edit [style.toml|style.json]",
		Short: "Edit a banner interactively and export it",
		Long: `Open a terminal editor for a banner.

Move between fields with the arrow keys, press enter to edit a value,
left/right to cycle choices and ctrl+s to export.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.styleFile = args[0]
			}
			return c.runEdit(cmd.Context(), &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output directory")
	f.StringVar(&opts.template, "template", "", "template id to start from")
	f.StringArrayVar(&opts.fontFiles, "font-file", nil, "register a font file before editing (repeatable)")
	f.StringVar(&opts.placeholder, "placeholder", "", "text shown while the banner text is empty")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, opts *renderOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	s, runner, err := c.buildSession(ctx, cfg, opts, style.Patch{})
	if err != nil {
		return err
	}
	defer s.Close()

	dir := cfg.OutputDir
	if opts.output != "" {
		dir = opts.output
	}
	dl := pipeline.NewDirDownloader(dir)
	runner.Downloader = dl

	m := newEditModel(ctx, s, dl.Path)
	m.format, m.scale = cfg.Format, cfg.Scale

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(c.Out))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(editModel); ok && fm.lastPath != "" {
		printSuccess(c.Out, "Last export: %s", fm.lastPath)
	}
	return nil
}

// fieldKind controls how a field reacts to keys.
type fieldKind int

const (
	fieldInput fieldKind = iota // enter opens a text input
	fieldCycle                  // left/right cycles choices
	fieldToggle                 // enter or space toggles
)

// editField is one row of the editor.
type editField struct {
	label string
	kind  fieldKind
	// prefill starts the input with the current value.
	prefill bool
	value func(m editModel) string
	// set applies typed input. Nil for cycle and toggle fields.
	set func(m *editModel, input string) error
	// step moves a cycle field by delta, or flips a toggle.
	step func(m *editModel, delta int)
}

// exportDoneMsg reports the result of an async export.
type exportDoneMsg struct {
	art  *pipeline.Artifact
	path string
	err  error
}

// editModel is the bubbletea model of the banner editor.
type editModel struct {
	ctx     context.Context
	session *session.Session
	pathFor func(*pipeline.Artifact) string
	fields  []editField

	cursor  int
	editing bool
	input   string

	format string
	scale  int

	exporting bool
	status    string
	statusErr bool
	lastPath  string
}

func newEditModel(ctx context.Context, s *session.Session, pathFor func(*pipeline.Artifact) string) editModel {
	if pathFor == nil {
		pathFor = func(a *pipeline.Artifact) string { return a.Filename }
	}
	return editModel{
		ctx:     ctx,
		session: s,
		pathFor: pathFor,
		fields:  editFields(),
		format:  pipeline.DefaultFormat,
		scale:   pipeline.DefaultScale,
	}
}

func editFields() []editField {
	num := func(get func(style.BannerStyle) float64, patch func(float64) style.Patch, positive bool) (func(editModel) string, func(*editModel, string) error) {
		value := func(m editModel) string { return strconv.FormatFloat(get(m.session.Style()), 'g', -1, 64) }
		set := func(m *editModel, in string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(in), 64)
			if err != nil || (positive && f <= 0) {
				return errors.New(errors.ErrCodeInvalidInput, "%q is not a valid number", in)
			}
			m.session.ApplyPatch(patch(f))
			return nil
		}
		return value, set
	}

	sizeV, sizeS := num(func(s style.BannerStyle) float64 { return s.FontSize },
		func(f float64) style.Patch { return style.Patch{FontSize: style.Ptr(f)} }, true)
	spacingV, spacingS := num(func(s style.BannerStyle) float64 { return s.LetterSpacing },
		func(f float64) style.Patch { return style.Patch{LetterSpacing: style.Ptr(f)} }, false)
	lineV, lineS := num(func(s style.BannerStyle) float64 { return s.LineHeight },
		func(f float64) style.Patch { return style.Patch{LineHeight: style.Ptr(f)} }, true)

	return []editField{
		{
			label:   "Text",
			kind:    fieldInput,
			prefill: true,
			value: func(m editModel) string { return m.session.Style().Text },
			set: func(m *editModel, in string) error {
				m.session.ApplyPatch(style.Patch{Text: style.Ptr(in)})
				return nil
			},
		},
		{
			label: "Font",
			kind:  fieldCycle,
			value: func(m editModel) string { return m.session.Style().FontFamily },
			step: func(m *editModel, d int) {
				entries := m.session.Fonts()
				names := make([]string, len(entries))
				for i, e := range entries {
					names[i] = e.Family
				}
				next := cycle(names, m.session.Style().FontFamily, d)
				m.session.ApplyPatch(style.Patch{FontFamily: style.Ptr(next)})
			},
		},
		{label: "Size", kind: fieldInput, prefill: true, value: sizeV, set: sizeS},
		{
			label:   "Color",
			kind:    fieldInput,
			prefill: true,
			value: func(m editModel) string { return m.session.Style().Color },
			set: func(m *editModel, in string) error {
				m.session.ApplyPatch(style.Patch{Color: style.Ptr(strings.TrimSpace(in))})
				return nil
			},
		},
		{
			label: "Align",
			kind:  fieldCycle,
			value: func(m editModel) string { return string(m.session.Style().TextAlign) },
			step: func(m *editModel, d int) {
				aligns := []string{string(style.AlignLeft), string(style.AlignCenter), string(style.AlignRight)}
				next := cycle(aligns, string(m.session.Style().TextAlign), d)
				m.session.ApplyPatch(style.Patch{TextAlign: style.Ptr(style.TextAlign(next))})
			},
		},
		{label: "Letter spacing", kind: fieldInput, prefill: true, value: spacingV, set: spacingS},
		{label: "Line height", kind: fieldInput, prefill: true, value: lineV, set: lineS},
		{
			label: "Shadow",
			kind:  fieldToggle,
			value: func(m editModel) string {
				if m.session.Style().ShadowEnabled {
					return "on"
				}
				return "off"
			},
			step: func(m *editModel, _ int) {
				m.session.ApplyPatch(style.Patch{ShadowEnabled: style.Ptr(!m.session.Style().ShadowEnabled)})
			},
		},
		{
			label: "Template",
			kind:  fieldCycle,
			value: func(m editModel) string {
				st := m.session.Style()
				if st.BackgroundType != style.BackgroundTemplate {
					return "none"
				}
				for _, t := range style.Templates() {
					if t.Background == st.BackgroundValue {
						return t.Name
					}
				}
				return "custom"
			},
			step: func(m *editModel, d int) {
				tpls := style.Templates()
				ids := make([]string, len(tpls))
				current := ""
				st := m.session.Style()
				for i, t := range tpls {
					ids[i] = t.ID
					if st.BackgroundType == style.BackgroundTemplate && t.Background == st.BackgroundValue {
						current = t.ID
					}
				}
				next := cycle(ids, current, d)
				for _, t := range tpls {
					if t.ID == next {
						m.session.SelectTemplate(t)
					}
				}
			},
		},
		{
			label: "Background",
			kind:  fieldInput,
			value: func(m editModel) string { return m.session.Tree().Background.String() },
			set: func(m *editModel, in string) error {
				p, err := backgroundPatch(in)
				if err != nil {
					return err
				}
				m.session.ApplyPatch(p)
				return nil
			},
		},
		{
			label: "Font file",
			kind:  fieldInput,
			value: func(m editModel) string { return fmt.Sprintf("%d uploaded", len(m.session.Registry().Fonts())) },
			set: func(m *editModel, in string) error {
				return uploadFontFile(m.ctx, m.session, strings.TrimSpace(in))
			},
		},
		{
			label: "Background image",
			kind:  fieldInput,
			value: func(m editModel) string {
				if m.session.Style().BackgroundType == style.BackgroundCustom {
					return "set"
				}
				return "none"
			},
			set: func(m *editModel, in string) error {
				return uploadBackgroundFile(m.ctx, m.session, strings.TrimSpace(in))
			},
		},
		{
			label: "Format",
			kind:  fieldCycle,
			value: func(m editModel) string { return m.format },
			step: func(m *editModel, d int) {
				m.format = cycle([]string{pipeline.FormatPNG, pipeline.FormatJPEG, pipeline.FormatSVG}, m.format, d)
			},
		},
		{
			label: "Scale",
			kind:  fieldCycle,
			value: func(m editModel) string { return fmt.Sprintf("%dx", m.scale) },
			step: func(m *editModel, d int) {
				next := cycle([]string{"1", "2", "4"}, strconv.Itoa(m.scale), d)
				m.scale, _ = strconv.Atoi(next)
			},
		},
	}
}

// cycle returns the element delta steps from current, wrapping around. An
// unknown current starts from the first element.
func cycle(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}
	idx := -1
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return values[0]
	}
	n := len(values)
	return values[((idx+delta)%n+n)%n]
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.setStatus(errors.UserMessage(msg.err), true)
			return m, nil
		}
		m.lastPath = msg.path
		m.setStatus(fmt.Sprintf("Exported %s (%d×%d, %s)", msg.path, msg.art.Width, msg.art.Height, formatBytes(len(msg.art.Data))), false)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m editModel) updateNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.fields[m.cursor]
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "left", "h":
		if f.kind != fieldInput {
			f.step(&m, -1)
		}
	case "right", "l":
		if f.kind != fieldInput {
			f.step(&m, 1)
		}
	case "enter", " ":
		switch f.kind {
		case fieldInput:
			m.editing = true
			m.input = ""
			if f.prefill {
				m.input = f.value(m)
			}
		default:
			f.step(&m, 1)
		}
	case "ctrl+s", "e":
		return m.startExport()
	}
	return m, nil
}

func (m editModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.editing = false
		if err := m.fields[m.cursor].set(&m, m.input); err != nil {
			m.setStatus(errors.UserMessage(err), true)
		} else {
			m.setStatus(m.fields[m.cursor].label+" updated", false)
		}
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *editModel) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m editModel) startExport() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	m.exporting = true
	m.setStatus("Exporting...", false)

	ctx, s, format, scale, pathFor := m.ctx, m.session, m.format, m.scale, m.pathFor
	return m, func() tea.Msg {
		art, err := s.RequestExport(ctx, format, scale)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{art: art, path: pathFor(art)}
	}
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Banner Editor") + " " + editDimStyle.Render(buildinfo.Short()))
	b.WriteString("\n")
	b.WriteString(editDimStyle.Render("↑/↓ navigate  ⏎ edit  ←/→ cycle  ctrl+s export  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.preview())
	b.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		labelStyle := editNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			labelStyle = editSelectedStyle
		}
		value := f.value(m)
		if i == m.cursor && m.editing {
			value = m.input + "█"
		} else if f.kind == fieldCycle {
			value = "‹ " + value + " ›"
		}
		b.WriteString(cursor + labelStyle.Width(18).Render(f.label) + StyleValue.Render(value) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(editErrorStyle.Render(iconError + " " + m.status))
		} else {
			b.WriteString(editOKStyle.Render(iconSuccess) + " " + m.status)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// preview summarizes the render tree: the wrapped lines as laid out and
// the resolved background.
func (m editModel) preview() string {
	t := m.session.Tree()
	var lines []string
	for _, l := range t.Text.Lines {
		lines = append(lines, l.Text)
	}
	textStyle := lipgloss.NewStyle().Bold(true)
	if t.Text.Placeholder {
		textStyle = editDimStyle.Italic(true)
	}
	switch t.Text.Align {
	case style.AlignLeft:
		textStyle = textStyle.Align(lipgloss.Left)
	case style.AlignRight:
		textStyle = textStyle.Align(lipgloss.Right)
	default:
		textStyle = textStyle.Align(lipgloss.Center)
	}
	body := textStyle.Width(48).Render(strings.Join(lines, "\n"))
	meta := editDimStyle.Render(fmt.Sprintf("%s %gpx · %s", t.Text.Family, t.Text.Size, t.Background))
	return editPreviewStyle.Render(body + "\n" + meta)
}
