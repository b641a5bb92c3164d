package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/content"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// DefaultMarkdownStyle is the glamour style for lessons in a terminal.
const DefaultMarkdownStyle = "dark"

// newLessonModel picks the view matching the screen's progress signal.
func newLessonModel(ctx context.Context, screen progress.Screen, lesson content.Lesson, tracker *progress.Tracker, style string) tea.Model {
	if screen.Engagement() {
		return newSectionsView(ctx, screen, lesson, tracker, style)
	}
	return newLessonView(ctx, screen, lesson, tracker, style)
}

func newLearnCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "learn [screen]",
		Short:     "Read a lesson; your place is saved as you go",
		Long:      "Without a screen, lists the lessons and how far you are through each.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: progress.ScreenIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listLessons(cmd, app)
			}
			screen, err := progress.LookupScreen(args[0])
			if err != nil {
				return err
			}
			lesson, err := content.Load(screen.ID)
			if err != nil {
				return err
			}

			if !app.interactive() {
				// Without a terminal the lesson is printed, and no progress
				// is recorded since nothing was scrolled or opened.
				r := newMarkdownRenderer("notty", 80)
				fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(r, lesson.Markdown()))
				return nil
			}

			tracker, err := progress.NewTracker(app.State, screen.Counter, progress.WithLogger(app.logger()))
			if err != nil {
				return err
			}
			style := app.MarkdownStyle
			if style == "" {
				style = DefaultMarkdownStyle
			}
			ctx := cmd.Context()
			model := newLessonModel(ctx, screen, lesson, tracker, style)
			_, err = tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}
}

func listLessons(cmd *cobra.Command, app *App) error {
	summary, err := app.Plan.State(cmd.Context())
	if err != nil {
		return err
	}
	values := map[domain.Counter]int{summary.StepsCompleted.Counter: summary.StepsCompleted.Value}
	for _, c := range summary.Overview {
		values[c.Counter] = c.Value
	}

	rows := make([][]string, 0, len(progress.Screens))
	for _, id := range progress.ScreenIDs() {
		s := progress.Screens[id]
		rows = append(rows, []string{
			id,
			s.Title,
			formatter.RenderSteps(values[s.Counter], s.Counter.Max(), 10),
		})
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"SCREEN", "TITLE", "PROGRESS"}, rows))
	fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Open one with `wisemind learn <screen>`."))
	return nil
}
