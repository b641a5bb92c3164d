package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollStep(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		total    int
		want     int
	}{
		{"top", 0, 3, 1},
		{"just below first boundary", 0.33, 3, 1},
		{"just past first boundary", 0.34, 3, 2},
		{"second boundary", 0.67, 3, 3},
		{"complete threshold", 0.95, 3, 3},
		{"beyond end", 1.2, 3, 3},
		{"negative", -0.5, 4, 1},
		{"quarter of four", 0.25, 4, 2},
		{"half of four", 0.5, 4, 3},
		{"three quarters of four", 0.75, 4, 4},
		{"no steps", 0.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScrollStep(tt.fraction, tt.total))
		})
	}
}

func TestScrollProgress_TerminalStepIsSticky(t *testing.T) {
	p := NewScrollProgress(3)

	assert.Equal(t, 1, p.Update(0.1))
	assert.Equal(t, 2, p.Update(0.4))
	assert.Equal(t, 3, p.Update(0.96))
	assert.Equal(t, 3, p.Update(0.0), "scrolling back up keeps the final step")
	assert.Equal(t, 3, p.Update(0.5))
}

func TestScrollProgress_IntermediateStepsFollowFraction(t *testing.T) {
	p := NewScrollProgress(4)

	assert.Equal(t, 3, p.Update(0.6))
	assert.Equal(t, 1, p.Update(0.1), "only the terminal step is sticky; the tracker guards decreases")
}

func TestEngagementProgress_FinalStepNeedsBottom(t *testing.T) {
	p := NewEngagementProgress(6, 0)
	assert.Equal(t, 1, p.Step())

	for i := 1; i < 6; i++ {
		p.View(i)
	}
	assert.Equal(t, 5, p.Step(), "all sections viewed without reaching bottom")

	assert.Equal(t, 6, p.ReachBottom())
}

func TestEngagementProgress_BottomAloneDoesNotComplete(t *testing.T) {
	p := NewEngagementProgress(4)

	assert.Equal(t, 1, p.ReachBottom())
	assert.Equal(t, 1, p.View(0))
	assert.Equal(t, 2, p.View(1))
	assert.Equal(t, 3, p.View(2))
	assert.Equal(t, 4, p.View(3), "bottom reached earlier stays recorded")
}

func TestEngagementProgress_CountsDistinctSections(t *testing.T) {
	p := NewEngagementProgress(6)

	p.View(2)
	p.View(2)
	p.View(2)
	assert.Equal(t, 1, p.Step())
	assert.Equal(t, 2, p.View(4))
	assert.Equal(t, 2, p.View(99), "out of range index ignored")
	assert.True(t, p.Viewed(4))
	assert.False(t, p.Viewed(5))
}

func TestEngagementProgress_SingleSection(t *testing.T) {
	p := NewEngagementProgress(1, 0)
	assert.Equal(t, 1, p.Step())
	assert.Equal(t, 1, p.ReachBottom())
}

func TestNearBottom(t *testing.T) {
	assert.True(t, NearBottom(950, 100, 1000))
	assert.True(t, NearBottom(850, 100, 1000), "exactly 50 from the end")
	assert.False(t, NearBottom(849, 100, 1000))
	assert.True(t, NearBottom(0, 100, 120), "short content is always near the bottom")
}

func TestLookupScreen(t *testing.T) {
	s, err := LookupScreen("DBT-Skills")
	assert.NoError(t, err)
	assert.Equal(t, 6, s.TotalSteps)
	assert.True(t, s.Engagement())

	_, err = LookupScreen("nope")
	assert.ErrorContains(t, err, "about-dbt")
}

func TestScreens_TotalsMatchCounterMax(t *testing.T) {
	for id, s := range Screens {
		assert.Equal(t, s.Counter.Max(), s.TotalSteps, id)
		assert.Equal(t, id, s.ID)
	}
}
