package progress

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/wisemind/internal/domain"
)

// Kind selects which signal drives a screen's step.
type Kind string

const (
	KindScroll    Kind = "scroll"
	KindAccordion Kind = "accordion"
	KindTabs      Kind = "tabs"
)

// Screen binds a learning screen to its signal and the counter it advances.
type Screen struct {
	ID         string
	Title      string
	Kind       Kind
	TotalSteps int
	Counter    domain.Counter
}

// Engagement reports whether the screen uses discrete sections.
func (s Screen) Engagement() bool {
	return s.Kind == KindAccordion || s.Kind == KindTabs
}

var Screens = map[string]Screen{
	"about-dbt": {
		ID: "about-dbt", Title: "About DBT", Kind: KindScroll,
		TotalSteps: 3, Counter: domain.CounterAboutDBT,
	},
	"understand-yourself": {
		ID: "understand-yourself", Title: "Understand Yourself", Kind: KindScroll,
		TotalSteps: 3, Counter: domain.CounterUnderstandYourself,
	},
	"understand-emotions": {
		ID: "understand-emotions", Title: "Understand Emotions", Kind: KindScroll,
		TotalSteps: 3, Counter: domain.CounterUnderstandEmotions,
	},
	"dbt-skills": {
		ID: "dbt-skills", Title: "DBT Skills", Kind: KindAccordion,
		TotalSteps: 6, Counter: domain.CounterDBTSkills,
	},
	"dbt-journey": {
		ID: "dbt-journey", Title: "Your DBT Journey", Kind: KindTabs,
		TotalSteps: 4, Counter: domain.CounterDBTJourney,
	},
	"treatment-plan": {
		ID: "treatment-plan", Title: "Treatment Plan", Kind: KindScroll,
		TotalSteps: 4, Counter: domain.CounterStepsCompleted,
	},
}

// LookupScreen returns the screen registered under id.
func LookupScreen(id string) (Screen, error) {
	s, ok := Screens[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Screen{}, fmt.Errorf("unknown screen %q (choose from %s)", id, strings.Join(ScreenIDs(), ", "))
	}
	return s, nil
}

// ScreenIDs returns the registered screen IDs sorted.
func ScreenIDs() []string {
	ids := make([]string, 0, len(Screens))
	for id := range Screens {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
