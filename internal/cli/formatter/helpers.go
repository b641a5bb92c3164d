package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDateFrom renders a YYYY-MM-DD date relative to now's calendar day.
// Unparseable input is returned unchanged.
func HumanDateFrom(date string, now time.Time) string {
	t, err := domain.ParseDate(date)
	if err != nil {
		return date
	}
	today := domain.FormatDate(now)
	switch date {
	case today:
		return "Today"
	case domain.FormatDate(now.AddDate(0, 0, -1)):
		return "Yesterday"
	}
	return t.Format("Mon Jan 2, 2006")
}

// List renders items as dimmed bullets, or placeholder when empty.
func List(items []string, placeholder string) string {
	if len(items) == 0 {
		return Dim(placeholder) + "\n"
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString(Dim("• "))
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}

// OrDash returns s, or a dimmed "--" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
