package content

import (
	"testing"

	"github.com/alexanderramin/wisemind/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EveryScreenHasALesson(t *testing.T) {
	for id, screen := range progress.Screens {
		l, err := Load(id)
		require.NoError(t, err, id)
		assert.Equal(t, screen.Title, l.Title, id)
		if screen.Engagement() {
			assert.Len(t, l.Sections, screen.TotalSteps, "%s needs one section per step", id)
		}
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("nope")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	l, err := parse("x", "# Title\n\nintro ignored\n\n## One\n\nfirst\n\n## Two\nsecond\nmore\n")

	require.NoError(t, err)
	assert.Equal(t, "Title", l.Title)
	require.Len(t, l.Sections, 2)
	assert.Equal(t, Section{Title: "One", Body: "first"}, l.Sections[0])
	assert.Equal(t, "second\nmore", l.Sections[1].Body)
	assert.Contains(t, l.Markdown(), "## Two\n\nsecond\nmore")
}

func TestParse_NoSections(t *testing.T) {
	_, err := parse("x", "# Only a title\n")
	assert.Error(t, err)
}
