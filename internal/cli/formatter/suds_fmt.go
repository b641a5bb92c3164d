package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/service"
)

func FormatSudsCheckin(c *domain.SudsCheckin, now time.Time) string {
	var b strings.Builder
	b.WriteString(Bold(HumanDateFrom(c.Date, now)) + "  " + SudsScore(c.Score) + "\n\n")
	b.WriteString(RenderFields([][2]string{
		{"Emotions", OrDash(strings.Join(c.Emotions, ", "))},
		{"Trigger", OrDash(c.Trigger)},
		{"Coping used", OrDash(strings.Join(c.CopingUsed, ", "))},
		{"Note", OrDash(c.Note)},
	}))
	return b.String()
}

// FormatSudsLog confirms a saved check-in and shows what the coping plan
// suggests for its score.
func FormatSudsLog(r *service.SudsLogResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Logged %s for %s\n", SudsScore(r.Checkin.Score), r.Checkin.Date))
	if r.CopingStep != nil {
		b.WriteString("\n" + Header(fmt.Sprintf("Coping plan (%d-%d)", r.CopingStep.MinScore, r.CopingStep.MaxScore)) + "\n")
		b.WriteString(List(r.CopingStep.Actions, "No actions in this step."))
	}
	return b.String()
}

// FormatSudsList renders check-ins newest first.
func FormatSudsList(list domain.SudsList, now time.Time) string {
	if len(list) == 0 {
		return Dim("No check-ins yet. Log one with `wisemind suds log`.") + "\n"
	}
	sorted := make(domain.SudsList, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	rows := make([][]string, 0, len(sorted))
	for _, c := range sorted {
		rows = append(rows, []string{
			HumanDateFrom(c.Date, now),
			SudsScore(c.Score),
			OrDash(c.Trigger),
		})
	}
	return RenderTable([]string{"DATE", "SUDS", "TRIGGER"}, rows)
}

func FormatSudsCalendar(cal *domain.SudsCalendar) string {
	var b strings.Builder
	title := cal.Month
	if t, err := domain.ParseMonth(cal.Month); err == nil {
		title = t.Format("January 2006")
	}
	b.WriteString(Header(title) + "\n")
	if len(cal.Days) == 0 {
		b.WriteString(Dim("No check-ins this month.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(cal.Days))
	for _, d := range cal.Days {
		rows = append(rows, []string{d.Date, SudsAverage(d.Average), fmt.Sprintf("%d", d.Count)})
	}
	b.WriteString(RenderTable([]string{"DATE", "AVG", "CHECK-INS"}, rows))
	return b.String()
}

func FormatCopingPlan(p *domain.CopingPlan) string {
	if len(p.Steps) == 0 {
		return Dim("Your coping plan is empty.") + "\n"
	}
	var b strings.Builder
	for i, step := range p.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		band := fmt.Sprintf("SUDS %d-%d", step.MinScore, step.MaxScore)
		b.WriteString(SudsStyle(step.MaxScore).Render(band) + "\n")
		b.WriteString(List(step.Actions, "No actions."))
	}
	return b.String()
}
