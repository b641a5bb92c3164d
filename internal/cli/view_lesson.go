package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/content"
	"github.com/alexanderramin/wisemind/internal/progress"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// lessonChrome is the header (title + rule) plus footer (status + help).
const lessonChrome = 4

// progressSavedMsg reports the outcome of one tracker write.
type progressSavedMsg struct {
	step   int
	result progress.Result
	err    error
}

func observeStep(ctx context.Context, t *progress.Tracker, step int) tea.Cmd {
	return func() tea.Msg {
		res, err := t.Observe(ctx, step)
		return progressSavedMsg{step: step, result: res, err: err}
	}
}

type lessonKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
	Page   key.Binding
	Quit   key.Binding
}

var lessonKeys = lessonKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next tab")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("⇧tab/←", "prev tab")),
	Page:   key.NewBinding(key.WithKeys("pgdown", "pgup", "ctrl+d", "ctrl+u"), key.WithHelp("pgup/pgdn", "scroll")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "close")),
}

// lessonStatus tracks what the footer says about the last progress write.
type lessonStatus struct {
	step  int
	total int
	note  string
}

func (s *lessonStatus) apply(msg progressSavedMsg) {
	switch msg.result {
	case progress.Written, progress.AlreadyRecorded:
		s.note = formatter.StyleGreen.Render("saved")
	case progress.Failed:
		s.note = formatter.StyleYellow.Render("not saved, will retry")
	}
}

func (s lessonStatus) render() string {
	line := formatter.RenderSteps(s.step, s.total, 10)
	if s.note != "" {
		line += "  " + s.note
	}
	return line
}

// newMarkdownRenderer builds a glamour renderer wrapped to width. An
// unknown style falls back to plain text rendering.
func newMarkdownRenderer(style string, width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r, _ = glamour.NewTermRenderer(glamour.WithStylePath("notty"), glamour.WithWordWrap(width))
	}
	return r
}

func renderMarkdown(r *glamour.TermRenderer, md string) string {
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// lessonView shows a long-scroll lesson. Its step is derived from how far
// the reader has scrolled and only ever moves forward.
type lessonView struct {
	ctx     context.Context
	screen  progress.Screen
	lesson  content.Lesson
	tracker *progress.Tracker
	scroll  *progress.ScrollProgress
	style   string

	viewport viewport.Model
	renderer *glamour.TermRenderer
	help     help.Model
	status   lessonStatus
	width    int
	height   int
	ready    bool
}

func newLessonView(ctx context.Context, screen progress.Screen, lesson content.Lesson, tracker *progress.Tracker, style string) *lessonView {
	return &lessonView{
		ctx:     ctx,
		screen:  screen,
		lesson:  lesson,
		tracker: tracker,
		scroll:  progress.NewScrollProgress(screen.TotalSteps),
		style:   style,
		help:    help.New(),
		status:  lessonStatus{step: 1, total: screen.TotalSteps},
	}
}

// Init records the mount as step 1.
func (v *lessonView) Init() tea.Cmd {
	return observeStep(v.ctx, v.tracker, 1)
}

func (v *lessonView) Step() int { return v.status.step }

func (v *lessonView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
	case progressSavedMsg:
		v.status.apply(msg)
		return v, nil
	case tea.KeyMsg:
		if key.Matches(msg, lessonKeys.Quit) {
			return v, tea.Quit
		}
	}

	if v.ready {
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, v.track())
	}
	return v, tea.Batch(cmds...)
}

// track recomputes the scroll step and persists it when it grew.
func (v *lessonView) track() tea.Cmd {
	step := v.scroll.Update(v.viewport.ScrollPercent())
	if step <= v.status.step {
		return nil
	}
	v.status.step = step
	return observeStep(v.ctx, v.tracker, step)
}

func (v *lessonView) resize(w, h int) {
	v.width, v.height = w, h
	bodyHeight := max(h-lessonChrome, 1)
	if !v.ready {
		v.viewport = viewport.New(w, bodyHeight)
		v.ready = true
	} else {
		v.viewport.Width = w
		v.viewport.Height = bodyHeight
	}
	v.renderer = newMarkdownRenderer(v.style, max(w-2, 20))
	v.viewport.SetContent(renderMarkdown(v.renderer, v.lesson.Markdown()))
}

func (v *lessonView) View() string {
	if !v.ready {
		return "Loading..."
	}
	header := formatter.StyleHeader.Render(v.screen.Title) + "\n" +
		formatter.Dim(strings.Repeat("─", max(v.width, 1)))
	footer := fmt.Sprintf("%s  %s\n%s",
		v.status.render(),
		formatter.Dim(fmt.Sprintf("%3.0f%%", v.viewport.ScrollPercent()*100)),
		v.help.ShortHelpView([]key.Binding{lessonKeys.Up, lessonKeys.Down, lessonKeys.Page, lessonKeys.Quit}),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, v.viewport.View(), footer)
}
