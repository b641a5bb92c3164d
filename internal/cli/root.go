package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/progress"
	"github.com/alexanderramin/wisemind/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Profile    service.ProfileService
	Onboarding service.OnboardingService
	Checkins   service.CheckinService
	Plan       service.PlanService

	// State backs lesson progress tracking.
	State progress.StateStore
	// Logger receives progress write failures from lessons.
	Logger *slog.Logger
	// Serve runs the development API server until ctx is cancelled.
	Serve func(ctx context.Context) error

	IsInteractive func() bool
	Now           func() time.Time
	// MarkdownStyle is the glamour style used for lessons.
	MarkdownStyle string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// formatUnix renders Unix seconds as a date in the local zone.
func (a *App) formatUnix(ts int64) string {
	return time.Unix(ts, 0).In(a.now().Location()).Format("Jan 2, 2006")
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// spin shows a spinner on stderr while a request runs, in terminals only.
func (a *App) spin(cmd *cobra.Command, message string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

// NewRootCmd creates the top-level "wisemind" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wisemind",
		Short:         "DBT companion: check-ins, diary cards and psychoeducation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newPasswordCmd(app),
		newSubscribeCmd(app),
		newProfileCmd(app),
		newPlanCmd(app),
		newStateCmd(app),
		newGoalsCmd(app),
		newStrengthsCmd(app),
		newLetterCmd(app),
		newSudsCmd(app),
		newDiaryCmd(app),
		newReviewCmd(app),
		newTrackingCmd(app),
		newLearnCmd(app),
		newServeCmd(app),
	)

	return root
}
