package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your account, growth stage and emergency contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := app.spin(cmd, "Loading profile")
			overview, err := app.Profile.Overview(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(overview))
			return nil
		},
	}
}

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show your treatment plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plan.TreatmentPlan(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTreatmentPlan(plan))
			return nil
		},
	}
}

func newStateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show how far you are through each lesson",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Plan.State(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatState(summary))
			return nil
		},
	}
}

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Your goals and what a life worth living means to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showGoals(cmd, app)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show your goals",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showGoals(cmd, app)
			},
		},
		newGoalsSetCmd(app),
	)
	return cmd
}

func showGoals(cmd *cobra.Command, app *App) error {
	g, err := app.Plan.Goals(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(g))
	return nil
}

func newGoalsSetCmd(app *App) *cobra.Command {
	var (
		file  string
		life  string
		add   []string
		why   string
		steps []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace your goals from a file or add one",
		Example: `  wisemind goals set --file goals.yaml
  wisemind goals set --add "Sleep better" --why "More energy" --step "No phone in bed"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var goals domain.Goals
			if file != "" {
				doc, err := loadDocument[domain.Goals](file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				goals = doc
			} else {
				if life == "" && len(add) == 0 {
					return errMissingInput("file", "life", "add")
				}
				current, err := app.Plan.Goals(ctx)
				if err != nil {
					return err
				}
				goals = *current
				if life != "" {
					goals.LifeWorthLiving = life
				}
				for i, title := range add {
					g := domain.Goal{Title: title}
					if i == len(add)-1 {
						g.Why = why
						g.Steps = steps
					}
					goals.Goals = append(goals.Goals, g)
				}
			}
			saved, err := app.Plan.SaveGoals(ctx, goals)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGoals(saved))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON goals document (- for stdin)")
	cmd.Flags().StringVar(&life, "life", "", "What a life worth living looks like")
	cmd.Flags().StringArrayVar(&add, "add", nil, "Goal title to append (repeatable)")
	cmd.Flags().StringVar(&why, "why", "", "Why the last added goal matters")
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Step toward the last added goal (repeatable)")
	return cmd
}

func newStrengthsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strengths",
		Short: "Your strengths, resources and support people",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStrengths(cmd, app)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show strengths and resources",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showStrengths(cmd, app)
			},
		},
		newStrengthsSetCmd(app),
	)
	return cmd
}

func showStrengths(cmd *cobra.Command, app *App) error {
	s, err := app.Plan.Strengths(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStrengths(s))
	return nil
}

func newStrengthsSetCmd(app *App) *cobra.Command {
	var (
		file      string
		strengths []string
		resources []string
		support   []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the lists you pass; the others are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var doc domain.StrengthsAndResources
			if file != "" {
				loaded, err := loadDocument[domain.StrengthsAndResources](file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				doc = loaded
			} else {
				flags := cmd.Flags()
				if !flags.Changed("strength") && !flags.Changed("resource") && !flags.Changed("support") {
					return errMissingInput("file", "strength", "resource", "support")
				}
				current, err := app.Plan.Strengths(ctx)
				if err != nil {
					return err
				}
				doc = *current
				if flags.Changed("strength") {
					doc.Strengths = strengths
				}
				if flags.Changed("resource") {
					doc.Resources = resources
				}
				if flags.Changed("support") {
					doc.SupportPeople = support
				}
			}
			saved, err := app.Plan.SaveStrengths(ctx, doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStrengths(saved))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON document (- for stdin)")
	cmd.Flags().StringArrayVar(&strengths, "strength", nil, "A strength (repeatable)")
	cmd.Flags().StringArrayVar(&resources, "resource", nil, "A resource (repeatable)")
	cmd.Flags().StringArrayVar(&support, "support", nil, "A support person (repeatable)")
	return cmd
}

func newLetterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letter",
		Short: "Your letter from your future self",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLetter(cmd, app)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the letter",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showLetter(cmd, app)
			},
		},
		newLetterWriteCmd(app),
	)
	return cmd
}

func showLetter(cmd *cobra.Command, app *App) error {
	l, err := app.Plan.Letter(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLetter(l))
	return nil
}

func newLetterWriteCmd(app *App) *cobra.Command {
	var text, file string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write or replace the letter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case file != "":
				data, err := readInput(file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			case text == "":
				if !app.interactive() {
					return errMissingInput("text", "file")
				}
				if current, err := app.Plan.Letter(ctx); err == nil {
					text = current.Content
				}
				if err := letterForm(&text).Run(); err != nil {
					return err
				}
			}
			saved, err := app.Plan.SaveLetter(ctx, strings.TrimRight(text, "\n"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLetter(saved))
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Letter text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the letter from a file (- for stdin)")
	return cmd
}
