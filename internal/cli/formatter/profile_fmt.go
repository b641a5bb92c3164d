package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wisemind/internal/service"
)

const stageBarWidth = 18

// FormatProfile renders the profile overview: account, growth stage and
// emergency contacts. Reads that fell back to defaults are noted at the end.
func FormatProfile(o *service.ProfileOverview) string {
	var b strings.Builder

	subscription := Dim("free")
	if o.Subscribed {
		subscription = StyleGreen.Render("● subscribed")
	}
	member := Dim("--")
	if o.MemberSince > 0 {
		member = fmt.Sprintf("%d", o.MemberSince)
	}
	b.WriteString(Bold(o.Name))
	if o.Email != "" {
		b.WriteString("  " + Dim(o.Email))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderFields([][2]string{
		{"Member since", member},
		{"Last active", OrDash(o.LastActive)},
		{"Subscription", subscription},
	}))

	b.WriteString("\n" + Header("Growth") + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StylePurple.Render(o.StageName),
		Dim(fmt.Sprintf("stage %d of %d", o.Stage, o.TotalStages))))
	b.WriteString(RenderProgress(float64(o.Percentage)/100, stageBarWidth) + "\n")
	b.WriteString(RenderFields([][2]string{
		{"Days active", fmt.Sprintf("%d", o.DaysActive)},
		{"Skills practiced", fmt.Sprintf("%d", o.SkillsPracticed)},
	}))

	b.WriteString("\n" + Header("Emergency contacts") + "\n")
	if len(o.Contacts) == 0 {
		b.WriteString(Dim("No emergency contacts yet.") + "\n")
	} else {
		rows := make([][]string, 0, len(o.Contacts))
		for _, c := range o.Contacts {
			rows = append(rows, []string{Bold(c.Name), c.Relationship, OrDash(c.Phone)})
		}
		b.WriteString(RenderTable([]string{"NAME", "RELATIONSHIP", "PHONE"}, rows))
	}

	if len(o.Degraded) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Some details could not be loaded: "+strings.Join(o.Degraded, ", ")) + "\n")
	}
	return b.String()
}
