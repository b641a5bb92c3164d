package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// ratings renders a name->0..5 map sorted by name.
func ratings(m map[string]int) string {
	if len(m) == 0 {
		return Dim("--")
	}
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s %d", n, m[n]))
	}
	return strings.Join(parts, ", ")
}

func FormatDiary(e *domain.DiaryEntry, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Diary card: "+HumanDateFrom(e.Date, now)) + "\n")
	b.WriteString(RenderFields([][2]string{
		{"Emotions", ratings(e.Emotions)},
		{"Urges", ratings(e.Urges)},
		{"Skills used", OrDash(strings.Join(e.SkillsUsed, ", "))},
		{"Notes", OrDash(e.Notes)},
	}))
	return b.String()
}

func FormatReview(r *domain.WeeklyReview) string {
	var b strings.Builder
	b.WriteString(Header("Week of "+r.WeekOf) + "\n")
	b.WriteString(Bold("Wins") + "\n" + List(r.Wins, "--"))
	b.WriteString(Bold("Challenges") + "\n" + List(r.Challenges, "--"))
	b.WriteString(Bold("Skills practiced") + "\n" + List(r.SkillsPracticed, "--"))
	b.WriteString(Bold("Focus next week") + "\n" + OrDash(r.FocusNextWeek) + "\n")
	return b.String()
}

func FormatTracking(p *domain.ProgressTracking, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Tracking: "+HumanDateFrom(p.Date, now)) + "\n")
	if len(p.Behaviors) == 0 {
		b.WriteString(Dim("No behaviors recorded.") + "\n")
	} else {
		rows := make([][]string, 0, len(p.Behaviors))
		for _, bc := range p.Behaviors {
			rows = append(rows, []string{bc.Name, fmt.Sprintf("%d", bc.Count)})
		}
		b.WriteString(RenderTable([]string{"BEHAVIOR", "COUNT"}, rows))
	}
	if p.Notes != "" {
		b.WriteString("\n" + p.Notes + "\n")
	}
	return b.String()
}
