package domain

import "fmt"

const (
	MinSuds = 0
	MaxSuds = 10
)

// SudsCheckin is one day's Subjective Units of Distress rating.
type SudsCheckin struct {
	Date       string   `json:"date"`
	Score      int      `json:"score"`
	Emotions   []string `json:"emotions,omitempty"`
	Trigger    string   `json:"trigger,omitempty"`
	CopingUsed []string `json:"copingUsed,omitempty"`
	Note       string   `json:"note,omitempty"`
}

func (c SudsCheckin) Validate() error {
	if c.Score < MinSuds || c.Score > MaxSuds {
		return fmt.Errorf("suds score %d out of range %d-%d", c.Score, MinSuds, MaxSuds)
	}
	if c.Date != "" {
		if _, err := ParseDate(c.Date); err != nil {
			return err
		}
	}
	return nil
}

// SudsList is the full check-in history returned by GET /suds-list.
type SudsList []SudsCheckin

func (l SudsList) Validate() error {
	for _, c := range l {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type SudsCalendarDay struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// SudsCalendar summarises check-ins per day for one month.
type SudsCalendar struct {
	Month string            `json:"month"`
	Days  []SudsCalendarDay `json:"days"`
}

// CopingStep is what to do when distress falls in [MinScore, MaxScore].
type CopingStep struct {
	MinScore int      `json:"minScore"`
	MaxScore int      `json:"maxScore"`
	Actions  []string `json:"actions"`
}

type CopingPlan struct {
	Steps []CopingStep `json:"steps"`
}

// StepFor returns the first step whose range contains score.
func (p CopingPlan) StepFor(score int) (CopingStep, bool) {
	for _, s := range p.Steps {
		if score >= s.MinScore && score <= s.MaxScore {
			return s, true
		}
	}
	return CopingStep{}, false
}

// DiaryEntry is the daily DBT diary card.
type DiaryEntry struct {
	Date       string         `json:"date"`
	Emotions   map[string]int `json:"emotions,omitempty"`
	Urges      map[string]int `json:"urges,omitempty"`
	SkillsUsed []string       `json:"skillsUsed,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

type WeeklyReview struct {
	WeekOf          string   `json:"weekOf"`
	Wins            []string `json:"wins,omitempty"`
	Challenges      []string `json:"challenges,omitempty"`
	SkillsPracticed []string `json:"skillsPracticed,omitempty"`
	FocusNextWeek   string   `json:"focusNextWeek,omitempty"`
}

type BehaviorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProgressTracking records target behaviours for one day.
type ProgressTracking struct {
	Date      string          `json:"date"`
	Behaviors []BehaviorCount `json:"behaviors,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}
