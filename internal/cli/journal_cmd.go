package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/spf13/cobra"
)

func newDiaryCmd(app *App) *cobra.Command {
	var date dateValue
	show := func(cmd *cobra.Command, args []string) error {
		e, err := app.Checkins.Diary(cmd.Context(), date.String())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiary(e, app.now()))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Daily diary card",
		RunE:  show,
	}
	cmd.PersistentFlags().Var(&date, "date", "Day (YYYY-MM-DD, default today)")
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show a diary card", RunE: show},
		newDiaryWriteCmd(app, &date),
	)
	return cmd
}

func newDiaryWriteCmd(app *App, date *dateValue) *cobra.Command {
	var (
		file     string
		emotions map[string]int
		urges    map[string]int
		skills   []string
		notes    string
	)

	cmd := &cobra.Command{
		Use:     "write",
		Short:   "Fill in a diary card",
		Example: `  wisemind diary write --emotion sadness=3 --urge isolate=2 --skill "opposite action"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := domain.DiaryEntry{
				Emotions:   emotions,
				Urges:      urges,
				SkillsUsed: skills,
				Notes:      notes,
			}
			if file != "" {
				doc, err := loadDocument[domain.DiaryEntry](file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				entry = doc
			} else if len(emotions) == 0 && len(urges) == 0 && len(skills) == 0 && notes == "" {
				return errMissingInput("file", "emotion", "urge", "skill", "notes")
			}
			if date.String() != "" {
				entry.Date = date.String()
			}
			if err := checkRatings(entry.Emotions); err != nil {
				return err
			}
			if err := checkRatings(entry.Urges); err != nil {
				return err
			}
			saved, err := app.Checkins.SaveDiary(cmd.Context(), entry)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiary(saved, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Diary card document (- for stdin)")
	cmd.Flags().StringToIntVar(&emotions, "emotion", nil, "Emotion rating name=0..5 (repeatable)")
	cmd.Flags().StringToIntVar(&urges, "urge", nil, "Urge rating name=0..5 (repeatable)")
	cmd.Flags().StringArrayVar(&skills, "skill", nil, "Skill you used (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

// maxRating bounds diary card emotion and urge ratings.
const maxRating = 5

func checkRatings(m map[string]int) error {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if v := m[n]; v < 0 || v > maxRating {
			return fmt.Errorf("rating for %q must be between 0 and %d", n, maxRating)
		}
	}
	return nil
}

func newReviewCmd(app *App) *cobra.Command {
	var week dateValue
	show := func(cmd *cobra.Command, args []string) error {
		r, err := app.Checkins.Review(cmd.Context(), week.String())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReview(r))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Weekly review",
		RunE:  show,
	}
	cmd.PersistentFlags().Var(&week, "week", "First day of the week (YYYY-MM-DD, default today)")
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show a weekly review", RunE: show},
		newReviewWriteCmd(app, &week),
	)
	return cmd
}

func newReviewWriteCmd(app *App, week *dateValue) *cobra.Command {
	var (
		file       string
		wins       []string
		challenges []string
		skills     []string
		focus      string
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a weekly review",
		RunE: func(cmd *cobra.Command, args []string) error {
			review := domain.WeeklyReview{
				Wins:            wins,
				Challenges:      challenges,
				SkillsPracticed: skills,
				FocusNextWeek:   focus,
			}
			if file != "" {
				doc, err := loadDocument[domain.WeeklyReview](file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				review = doc
			} else if len(wins) == 0 && len(challenges) == 0 && len(skills) == 0 && focus == "" {
				return errMissingInput("file", "win", "challenge", "skill", "focus")
			}
			if week.String() != "" {
				review.WeekOf = week.String()
			}
			saved, err := app.Checkins.SaveReview(cmd.Context(), review)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReview(saved))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Weekly review document (- for stdin)")
	cmd.Flags().StringArrayVar(&wins, "win", nil, "Something that went well (repeatable)")
	cmd.Flags().StringArrayVar(&challenges, "challenge", nil, "Something that was hard (repeatable)")
	cmd.Flags().StringArrayVar(&skills, "skill", nil, "Skill you practiced (repeatable)")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus for next week")
	return cmd
}

func newTrackingCmd(app *App) *cobra.Command {
	var date dateValue
	show := func(cmd *cobra.Command, args []string) error {
		p, err := app.Checkins.Tracking(cmd.Context(), date.String())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTracking(p, app.now()))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Count target behaviors",
		RunE:  show,
	}
	cmd.PersistentFlags().Var(&date, "date", "Day (YYYY-MM-DD, default today)")
	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show a day's counts", RunE: show},
		newTrackingWriteCmd(app, &date),
	)
	return cmd
}

func newTrackingWriteCmd(app *App, date *dateValue) *cobra.Command {
	var (
		file      string
		behaviors map[string]int
		notes     string
	)

	cmd := &cobra.Command{
		Use:     "write",
		Short:   "Record behavior counts",
		Example: `  wisemind tracking write --behavior "urge to self-harm"=2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc domain.ProgressTracking
			if file != "" {
				loaded, err := loadDocument[domain.ProgressTracking](file, cmd.InOrStdin())
				if err != nil {
					return err
				}
				doc = loaded
			} else {
				if len(behaviors) == 0 && notes == "" {
					return errMissingInput("file", "behavior", "notes")
				}
				names := make([]string, 0, len(behaviors))
				for n := range behaviors {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					doc.Behaviors = append(doc.Behaviors, domain.BehaviorCount{Name: n, Count: behaviors[n]})
				}
				doc.Notes = notes
			}
			if date.String() != "" {
				doc.Date = date.String()
			}
			saved, err := app.Checkins.SaveTracking(cmd.Context(), doc)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTracking(saved, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Tracking document (- for stdin)")
	cmd.Flags().StringToIntVar(&behaviors, "behavior", nil, "Behavior count name=N (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}
