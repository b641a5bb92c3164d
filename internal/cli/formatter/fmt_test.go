package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/service"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestFormatProfile(t *testing.T) {
	got := stripANSI(FormatProfile(&service.ProfileOverview{
		Name:        "Robin",
		Email:       "robin@example.com",
		MemberSince: 2024,
		LastActive:  "Yesterday",
		Subscribed:  true,
		Stage:       3,
		StageName:   "Young Plant",
		TotalStages: 6,
		Percentage:  50,
		DaysActive:  12,
		Contacts:    []domain.Contact{{Name: "Sam", Relationship: "Sister", Phone: "+1 5551234"}},
	}))

	assert.Contains(t, got, "Robin")
	assert.Contains(t, got, "2024")
	assert.Contains(t, got, "Yesterday")
	assert.Contains(t, got, "subscribed")
	assert.Contains(t, got, "Young Plant")
	assert.Contains(t, got, "stage 3 of 6")
	assert.Contains(t, got, " 50%")
	assert.Contains(t, got, "Sister")
	assert.NotContains(t, got, "could not be loaded")
}

func TestFormatProfile_DegradedAndEmpty(t *testing.T) {
	got := stripANSI(FormatProfile(&service.ProfileOverview{
		Name:     service.DefaultProfileName,
		Stage:    1,
		Degraded: []string{"profile", "contacts"},
	}))

	assert.Contains(t, got, "Friend")
	assert.Contains(t, got, "No emergency contacts yet.")
	assert.Contains(t, got, "could not be loaded: profile, contacts")
	assert.Contains(t, got, "free")
}

func TestFormatSudsList_NewestFirst(t *testing.T) {
	got := stripANSI(FormatSudsList(domain.SudsList{
		{Date: "2026-10-10", Score: 2},
		{Date: "2026-10-18", Score: 8, Trigger: "work"},
		{Date: "2026-10-17", Score: 5},
	}, fixedNow))

	today := strings.Index(got, "Today")
	yesterday := strings.Index(got, "Yesterday")
	older := strings.Index(got, "Sat Oct 10, 2026")
	assert.True(t, today < yesterday && yesterday < older, got)
	assert.Contains(t, got, "8/10")
	assert.Contains(t, got, "work")
}

func TestFormatSudsList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSudsList(nil, fixedNow)), "No check-ins yet")
}

func TestFormatSudsLog_ShowsCopingStep(t *testing.T) {
	got := stripANSI(FormatSudsLog(&service.SudsLogResult{
		Checkin:    domain.SudsCheckin{Date: "2026-10-18", Score: 7},
		CopingStep: &domain.CopingStep{MinScore: 7, MaxScore: 10, Actions: []string{"Cold water"}},
	}))

	assert.Contains(t, got, "Logged 7/10 for 2026-10-18")
	assert.Contains(t, got, "COPING PLAN (7-10)")
	assert.Contains(t, got, "• Cold water")
}

func TestFormatSudsCalendar(t *testing.T) {
	got := stripANSI(FormatSudsCalendar(&domain.SudsCalendar{
		Month: "2026-10",
		Days:  []domain.SudsCalendarDay{{Date: "2026-10-01", Average: 4.5, Count: 2}},
	}))

	assert.Contains(t, got, "OCTOBER 2026")
	assert.Contains(t, got, "4.5")
	assert.Contains(t, got, "2026-10-01")
}

func TestFormatTreatmentPlan_GroupsByStage(t *testing.T) {
	got := stripANSI(FormatTreatmentPlan(domain.TreatmentPlan{
		{ID: "b", Title: "Mindfulness", Stage: 2},
		{ID: "a", Title: "Commitment", Stage: 1, Completed: true},
	}))

	assert.Less(t, strings.Index(got, "Stage 1"), strings.Index(got, "Stage 2"))
	assert.Contains(t, got, "└─ ✔ Commitment")
	assert.Contains(t, got, "1 of 2 steps completed")
}

func TestFormatState(t *testing.T) {
	got := stripANSI(FormatState(&service.StateSummary{
		StepsCompleted: service.CounterProgress{Counter: domain.CounterStepsCompleted, Value: 1, Max: 4},
		Overview: []service.CounterProgress{
			{Counter: domain.CounterDBTSkills, Value: 6, Max: 6},
		},
	}))

	assert.Contains(t, got, "DBT skills")
	assert.Contains(t, got, "6/6")
	assert.Contains(t, got, "Treatment plan")
	assert.Contains(t, got, "1/4")
	assert.Less(t, strings.Index(got, "DBT skills"), strings.Index(got, "Treatment plan"))
}

func TestFormatGoalsAndStrengths(t *testing.T) {
	goals := stripANSI(FormatGoals(&domain.Goals{
		LifeWorthLiving: "Calm mornings",
		Goals:           []domain.Goal{{Title: "Sleep", Why: "energy", Steps: []string{"No phone in bed"}}},
	}))
	assert.Contains(t, goals, "Calm mornings")
	assert.Contains(t, goals, "1. Sleep")
	assert.Contains(t, goals, "• No phone in bed")

	assert.Contains(t, stripANSI(FormatGoals(&domain.Goals{})), "No goals yet")

	strengths := stripANSI(FormatStrengths(&domain.StrengthsAndResources{Strengths: []string{"Humor"}}))
	assert.Contains(t, strengths, "• Humor")
	assert.Contains(t, strengths, "None listed.")
}

func TestFormatLetter(t *testing.T) {
	assert.Contains(t, stripANSI(FormatLetter(&domain.Letter{})), "not written your letter")
	assert.Contains(t, stripANSI(FormatLetter(&domain.Letter{Content: "Dear me"})), "Dear me")
}

func TestFormatDiaryAndTracking(t *testing.T) {
	diary := stripANSI(FormatDiary(&domain.DiaryEntry{
		Date:     "2026-10-18",
		Emotions: map[string]int{"sadness": 2, "anger": 4},
	}, fixedNow))
	assert.Contains(t, diary, "DIARY CARD: TODAY")
	assert.Contains(t, diary, "anger 4, sadness 2")

	tracking := stripANSI(FormatTracking(&domain.ProgressTracking{
		Date:      "2026-10-17",
		Behaviors: []domain.BehaviorCount{{Name: "self-harm urges", Count: 1}},
	}, fixedNow))
	assert.Contains(t, tracking, "TRACKING: YESTERDAY")
	assert.Contains(t, tracking, "self-harm urges")
}

func TestFormatReview(t *testing.T) {
	got := stripANSI(FormatReview(&domain.WeeklyReview{WeekOf: "2026-10-12", Wins: []string{"Went for walks"}}))
	assert.Contains(t, got, "WEEK OF 2026-10-12")
	assert.Contains(t, got, "• Went for walks")
}
