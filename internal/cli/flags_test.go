package cli

import (
	"testing"

	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValue(t *testing.T) {
	var d dateValue
	require.NoError(t, d.Set("2026-10-18"))
	assert.Equal(t, "2026-10-18", d.String())
	assert.Error(t, d.Set("18/10/2026"))
	assert.Equal(t, "2026-10-18", d.String(), "a rejected value keeps the previous one")
}

func TestMonthValue(t *testing.T) {
	var m monthValue
	require.NoError(t, m.Set("2026-10"))
	assert.Error(t, m.Set("2026-13"))
}

func TestPlanValue(t *testing.T) {
	var p planValue
	require.NoError(t, p.Set("yearly"))
	assert.Equal(t, domain.PlanYearly, p.plan)
	assert.Error(t, p.Set("weekly"))
}

func TestDecodeDocument_YAMLUsesJSONNames(t *testing.T) {
	goals, err := decodeDocument[domain.Goals]([]byte(`
lifeWorthLiving: Calm mornings
goals:
  - title: Sleep
    steps: [No phone in bed]
`))

	require.NoError(t, err)
	assert.Equal(t, "Calm mornings", goals.LifeWorthLiving)
	require.Len(t, goals.Goals, 1)
	assert.Equal(t, []string{"No phone in bed"}, goals.Goals[0].Steps)
}

func TestDecodeDocument_JSON(t *testing.T) {
	plan, err := decodeDocument[domain.CopingPlan]([]byte(`{"steps":[{"minScore":0,"maxScore":3,"actions":["Breathe"]}]}`))

	require.NoError(t, err)
	assert.Equal(t, 3, plan.Steps[0].MaxScore)
}

func TestDecodeDocument_WrongShape(t *testing.T) {
	_, err := decodeDocument[domain.CopingPlan]([]byte(`steps: "nope"`))
	assert.Error(t, err)
}
