package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/wisemind/internal/chart"
	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/spf13/cobra"
)

func newSudsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suds",
		Short: "Subjective Units of Distress check-ins",
	}
	cmd.AddCommand(
		newSudsLogCmd(app),
		newSudsShowCmd(app),
		newSudsListCmd(app),
		newSudsCalendarCmd(app),
		newCopingPlanCmd(app),
		newSudsTrendCmd(app),
	)
	return cmd
}

func newSudsLogCmd(app *App) *cobra.Command {
	var (
		date     dateValue
		score    int
		emotions []string
		trigger  string
		coping   []string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record how distressed you feel (0-10)",
		Example: `  wisemind suds log --score 6 --emotion anxious --trigger "work call"
  wisemind suds log              # asks interactively`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("score") {
				if !app.interactive() {
					return errMissingInput("score")
				}
				var scoreStr string
				if err := sudsForm(&scoreStr, &trigger, &note).Run(); err != nil {
					return err
				}
				score, _ = strconv.Atoi(strings.TrimSpace(scoreStr))
			}
			stop := app.spin(cmd, "Saving check-in")
			result, err := app.Checkins.LogSuds(cmd.Context(), domain.SudsCheckin{
				Date:       date.String(),
				Score:      score,
				Emotions:   emotions,
				Trigger:    strings.TrimSpace(trigger),
				CopingUsed: coping,
				Note:       strings.TrimSpace(note),
			})
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSudsLog(result))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Day of the check-in (YYYY-MM-DD, default today)")
	cmd.Flags().IntVarP(&score, "score", "s", 0, "Distress from 0 to 10")
	cmd.Flags().StringArrayVarP(&emotions, "emotion", "e", nil, "Emotion you notice (repeatable)")
	cmd.Flags().StringVar(&trigger, "trigger", "", "What set it off")
	cmd.Flags().StringArrayVar(&coping, "coping", nil, "Coping skill you used (repeatable)")
	cmd.Flags().StringVar(&note, "note", "", "Anything else")
	return cmd
}

func newSudsShowCmd(app *App) *cobra.Command {
	var date dateValue

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one day's check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Checkins.Suds(cmd.Context(), date.String())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSudsCheckin(c, app.now()))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Day (YYYY-MM-DD, default today)")
	return cmd
}

func newSudsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all check-ins, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Checkins.History(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSudsList(list, app.now()))
			return nil
		},
	}
}

func newSudsCalendarCmd(app *App) *cobra.Command {
	var month monthValue

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Daily averages for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Checkins.Calendar(cmd.Context(), month.String())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSudsCalendar(cal))
			return nil
		},
	}

	cmd.Flags().Var(&month, "month", "Month (YYYY-MM, default this month)")
	return cmd
}

func newCopingPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coping-plan",
		Short: "What to do at each level of distress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCopingPlan(cmd, app)
		},
	}

	var file string
	set := &cobra.Command{
		Use:   "set",
		Short: "Replace the coping plan from a YAML or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errMissingInput("file")
			}
			plan, err := loadDocument[domain.CopingPlan](file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			saved, err := app.Checkins.SaveCopingPlan(cmd.Context(), plan)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCopingPlan(saved))
			return nil
		},
	}
	set.Flags().StringVarP(&file, "file", "f", "", "Coping plan document (- for stdin)")

	cmd.AddCommand(set)
	return cmd
}

func showCopingPlan(cmd *cobra.Command, app *App) error {
	plan, err := app.Checkins.CopingPlan(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCopingPlan(plan))
	return nil
}

func newSudsTrendCmd(app *App) *cobra.Command {
	var (
		out    string
		width  float64
		height float64
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Render your SUDS history as an SVG chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Checkins.History(cmd.Context())
			if err != nil {
				return err
			}
			opts := chart.DefaultOptions()
			opts.Width = width
			opts.Height = height
			svg := chart.RenderSVG(list, opts)

			if out == "" || out == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), svg)
				return nil
			}
			if err := os.WriteFile(out, []byte(svg+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d check-ins)\n", out, len(list))
			return nil
		},
	}

	defaults := chart.DefaultOptions()
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().Float64Var(&width, "width", defaults.Width, "Chart width in pixels")
	cmd.Flags().Float64Var(&height, "height", defaults.Height, "Chart height in pixels")
	return cmd
}
