package cli

import (
	"context"
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

var (
	sectionCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	tabActiveStyle     = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	tabInactiveStyle   = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	tabSeenStyle       = lipgloss.NewStyle().Foreground(formatter.ColorGreen).Padding(0, 1)
)

// sectionsView shows a lesson split into accordion sections or tabs. Each
// distinct section opened advances a step; the last step also needs the
// bottom of the content to have been reached.
type sectionsView struct {
	ctx        context.Context
	screen     progress.Screen
	lesson     content.Lesson
	tracker    *progress.Tracker
	engagement *progress.EngagementProgress
	style      string

	cursor   int
	expanded map[int]bool
	// headerLines holds the first content line of each accordion header.
	headerLines []int

	viewport viewport.Model
	renderer *glamour.TermRenderer
	help     help.Model
	status   lessonStatus
	width    int
	height   int
	ready    bool
}

// newSectionsView opens with the first section expanded (accordion) or
// selected (tabs), which counts as viewed.
func newSectionsView(ctx context.Context, screen progress.Screen, lesson content.Lesson, tracker *progress.Tracker, style string) *sectionsView {
	total := min(screen.TotalSteps, len(lesson.Sections))
	v := &sectionsView{
		ctx:        ctx,
		screen:     screen,
		lesson:     lesson,
		tracker:    tracker,
		engagement: progress.NewEngagementProgress(total, 0),
		style:      style,
		expanded:   map[int]bool{0: true},
		help:       help.New(),
	}
	v.status = lessonStatus{step: v.engagement.Step(), total: screen.TotalSteps}
	return v
}

func (v *sectionsView) tabs() bool { return v.screen.Kind == progress.KindTabs }

func (v *sectionsView) Init() tea.Cmd {
	return observeStep(v.ctx, v.tracker, v.status.step)
}

func (v *sectionsView) Step() int { return v.status.step }

func (v *sectionsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize(msg.Width, msg.Height)
		return v, v.checkBottom()

	case progressSavedMsg:
		v.status.apply(msg)
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, lessonKeys.Quit) {
			return v, tea.Quit
		}
		if !v.ready {
			return v, nil
		}
		if v.tabs() {
			return v, v.updateTabs(msg)
		}
		return v, v.updateAccordion(msg)
	}

	if !v.ready {
		return v, nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, tea.Batch(cmd, v.checkBottom())
}

func (v *sectionsView) updateAccordion(msg tea.KeyMsg) tea.Cmd {
	n := len(v.lesson.Sections)
	switch {
	case key.Matches(msg, lessonKeys.Up):
		v.cursor = (v.cursor - 1 + n) % n
		v.refresh()
		v.followCursor()
		return v.checkBottom()
	case key.Matches(msg, lessonKeys.Down):
		v.cursor = (v.cursor + 1) % n
		v.refresh()
		v.followCursor()
		return v.checkBottom()
	case key.Matches(msg, lessonKeys.Toggle):
		v.expanded[v.cursor] = !v.expanded[v.cursor]
		v.refresh()
		v.followCursor()
		var cmd tea.Cmd
		if v.expanded[v.cursor] {
			cmd = v.advance(v.engagement.View(v.cursor))
		}
		return tea.Batch(cmd, v.checkBottom())
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return tea.Batch(cmd, v.checkBottom())
}

func (v *sectionsView) updateTabs(msg tea.KeyMsg) tea.Cmd {
	n := len(v.lesson.Sections)
	switch {
	case key.Matches(msg, lessonKeys.Next):
		return v.selectTab((v.cursor + 1) % n)
	case key.Matches(msg, lessonKeys.Prev):
		return v.selectTab((v.cursor - 1 + n) % n)
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return tea.Batch(cmd, v.checkBottom())
}

func (v *sectionsView) selectTab(idx int) tea.Cmd {
	v.cursor = idx
	v.refresh()
	v.viewport.GotoTop()
	return tea.Batch(v.advance(v.engagement.View(idx)), v.checkBottom())
}

// checkBottom marks the bottom as reached once the viewport shows the end
// of the content.
func (v *sectionsView) checkBottom() tea.Cmd {
	if !v.ready || v.engagement.AtBottom() || !v.viewport.AtBottom() {
		return nil
	}
	return v.advance(v.engagement.ReachBottom())
}

func (v *sectionsView) advance(step int) tea.Cmd {
	if step <= v.status.step {
		return nil
	}
	v.status.step = step
	return observeStep(v.ctx, v.tracker, step)
}

func (v *sectionsView) resize(w, h int) {
	v.width, v.height = w, h
	bodyHeight := max(h-lessonChrome, 1)
	if v.tabs() {
		bodyHeight = max(bodyHeight-2, 1)
	}
	if !v.ready {
		v.viewport = viewport.New(w, bodyHeight)
		v.ready = true
	} else {
		v.viewport.Width = w
		v.viewport.Height = bodyHeight
	}
	v.renderer = newMarkdownRenderer(v.style, max(w-4, 20))
	v.refresh()
}

// refresh re-renders the viewport content, keeping the scroll offset.
func (v *sectionsView) refresh() {
	offset := v.viewport.YOffset
	if v.tabs() {
		v.viewport.SetContent(renderMarkdown(v.renderer, v.lesson.Sections[v.cursor].Body))
	} else {
		v.viewport.SetContent(v.renderAccordion())
	}
	v.viewport.SetYOffset(offset)
}

func (v *sectionsView) renderAccordion() string {
	var b strings.Builder
	v.headerLines = v.headerLines[:0]
	line := 0
	for i, s := range v.lesson.Sections {
		v.headerLines = append(v.headerLines, line)
		marker := "▸ "
		if v.expanded[i] {
			marker = "▾ "
		}
		title := marker + s.Title
		switch {
		case i == v.cursor:
			title = sectionCursorStyle.Render(title)
		case v.engagement.Viewed(i):
			title = formatter.StyleGreen.Render(title)
		}
		b.WriteString(title + "\n")
		line++
		if v.expanded[i] {
			body := strings.TrimRight(renderMarkdown(v.renderer, s.Body), "\n")
			b.WriteString(body + "\n")
			line += strings.Count(body, "\n") + 1
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// followCursor scrolls so the cursor's header is visible.
func (v *sectionsView) followCursor() {
	if v.cursor >= len(v.headerLines) {
		return
	}
	top := v.headerLines[v.cursor]
	switch {
	case top < v.viewport.YOffset:
		v.viewport.SetYOffset(top)
	case top >= v.viewport.YOffset+v.viewport.Height:
		v.viewport.SetYOffset(top - v.viewport.Height + 1)
	}
}

func (v *sectionsView) renderTabBar() string {
	parts := make([]string, 0, len(v.lesson.Sections))
	for i, s := range v.lesson.Sections {
		switch {
		case i == v.cursor:
			parts = append(parts, tabActiveStyle.Render(s.Title))
		case v.engagement.Viewed(i):
			parts = append(parts, tabSeenStyle.Render(s.Title))
		default:
			parts = append(parts, tabInactiveStyle.Render(s.Title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (v *sectionsView) View() string {
	if !v.ready {
		return "Loading..."
	}
	rows := []string{
		formatter.StyleHeader.Render(v.screen.Title),
		formatter.Dim(strings.Repeat("─", max(v.width, 1))),
	}
	bindings := []key.Binding{lessonKeys.Up, lessonKeys.Down, lessonKeys.Toggle, lessonKeys.Quit}
	if v.tabs() {
		rows = append(rows, v.renderTabBar(), "")
		bindings = []key.Binding{lessonKeys.Next, lessonKeys.Prev, lessonKeys.Page, lessonKeys.Quit}
	}
	rows = append(rows,
		v.viewport.View(),
		v.status.render(),
		v.help.ShortHelpView(bindings),
	)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
