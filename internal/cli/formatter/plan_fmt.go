package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/service"
)

const stepBarWidth = 12

var counterLabels = map[domain.Counter]string{
	domain.CounterUnderstandYourself: "Understand yourself",
	domain.CounterUnderstandEmotions: "Understand emotions",
	domain.CounterAboutDBT:           "About DBT",
	domain.CounterDBTSkills:          "DBT skills",
	domain.CounterDBTJourney:         "DBT journey",
	domain.CounterStepsCompleted:     "Treatment plan",
}

// CounterLabel returns the display name of a pre-treatment counter.
func CounterLabel(c domain.Counter) string {
	if l, ok := counterLabels[c]; ok {
		return l
	}
	return string(c)
}

// FormatTreatmentPlan groups plan items under their stage.
func FormatTreatmentPlan(plan domain.TreatmentPlan) string {
	if len(plan) == 0 {
		return Dim("No treatment plan yet.") + "\n"
	}
	byStage := map[int][]domain.TreatmentPlanItem{}
	for _, it := range plan {
		byStage[it.Stage] = append(byStage[it.Stage], it)
	}
	stages := make([]int, 0, len(byStage))
	for s := range byStage {
		stages = append(stages, s)
	}
	sort.Ints(stages)

	var items []TreeItem
	for _, s := range stages {
		items = append(items, TreeItem{Title: Bold(fmt.Sprintf("Stage %d", s))})
		group := byStage[s]
		for i, it := range group {
			detail := ""
			if len(it.Skills) > 0 {
				detail = strings.Join(it.Skills, ", ")
			}
			items = append(items, TreeItem{
				Title:  it.Title,
				Level:  1,
				IsLast: i == len(group)-1,
				Done:   it.Completed,
				Detail: detail,
			})
		}
	}

	var b strings.Builder
	b.WriteString(RenderTree(items))
	b.WriteString(fmt.Sprintf("\n%s\n", Dim(fmt.Sprintf("%d of %d steps completed", plan.CompletedCount(), len(plan)))))
	return b.String()
}

func FormatState(s *service.StateSummary) string {
	rows := make([][]string, 0, len(s.Overview)+1)
	row := func(c service.CounterProgress) []string {
		return []string{CounterLabel(c.Counter), RenderSteps(c.Value, c.Max, stepBarWidth)}
	}
	for _, c := range s.Overview {
		rows = append(rows, row(c))
	}
	rows = append(rows, row(s.StepsCompleted))
	return RenderTable([]string{"SECTION", "PROGRESS"}, rows)
}

func FormatGoals(g *domain.Goals) string {
	var b strings.Builder
	if g.LifeWorthLiving != "" {
		b.WriteString(Header("A life worth living") + "\n" + g.LifeWorthLiving + "\n\n")
	}
	b.WriteString(Header("Goals") + "\n")
	if len(g.Goals) == 0 {
		b.WriteString(Dim("No goals yet. Add one with `wisemind goals set`.") + "\n")
		return b.String()
	}
	for i, goal := range g.Goals {
		b.WriteString(fmt.Sprintf("%s %s\n", StylePurple.Render(fmt.Sprintf("%d.", i+1)), Bold(goal.Title)))
		if goal.Why != "" {
			b.WriteString("   " + Dim(goal.Why) + "\n")
		}
		for _, step := range goal.Steps {
			b.WriteString("   " + Dim("• ") + step + "\n")
		}
	}
	return b.String()
}

func FormatStrengths(s *domain.StrengthsAndResources) string {
	var b strings.Builder
	b.WriteString(Header("Strengths") + "\n" + List(s.Strengths, "None listed.") + "\n")
	b.WriteString(Header("Resources") + "\n" + List(s.Resources, "None listed.") + "\n")
	b.WriteString(Header("Support people") + "\n" + List(s.SupportPeople, "None listed."))
	return b.String()
}

func FormatLetter(l *domain.Letter) string {
	if strings.TrimSpace(l.Content) == "" {
		return Dim("You have not written your letter yet. Start with `wisemind letter write`.") + "\n"
	}
	body := l.Content
	if l.UpdatedAt > 0 {
		body += "\n\n" + Dim("Last edited "+time.Unix(l.UpdatedAt, 0).Format("Jan 2, 2006"))
	}
	return RenderBox("Letter from your future self", body)
}
