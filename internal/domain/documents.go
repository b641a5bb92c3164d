package domain

import "fmt"

// TreatmentPlanItem is one stage of the read-only treatment plan.
type TreatmentPlanItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Stage       int      `json:"stage"`
	Skills      []string `json:"skills,omitempty"`
	Completed   bool     `json:"completed"`
}

// TreatmentPlan is the ordered list returned by GET /treatment-plan.
type TreatmentPlan []TreatmentPlanItem

// CompletedCount returns how many plan items are marked completed.
func (p TreatmentPlan) CompletedCount() int {
	n := 0
	for _, item := range p {
		if item.Completed {
			n++
		}
	}
	return n
}

type Goal struct {
	Title string   `json:"title"`
	Why   string   `json:"why,omitempty"`
	Steps []string `json:"steps,omitempty"`
}

// Goals is the pre-treatment goals worksheet.
type Goals struct {
	LifeWorthLiving string `json:"lifeWorthLiving,omitempty"`
	Goals           []Goal `json:"goals"`
}

func (g Goals) Validate() error {
	for i, goal := range g.Goals {
		if goal.Title == "" {
			return fmt.Errorf("goal %d: title is required", i)
		}
	}
	return nil
}

// StrengthsAndResources is the pre-treatment strengths worksheet.
type StrengthsAndResources struct {
	Strengths     []string `json:"strengths"`
	Resources     []string `json:"resources"`
	SupportPeople []string `json:"supportPeople,omitempty"`
}

// Letter is the "letter from your future self" exercise.
type Letter struct {
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
}
