package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// errMissingInput is returned when a required value was neither passed as
// a flag nor collectable through a form.
func errMissingInput(flags ...string) error {
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = "--" + f
	}
	return fmt.Errorf("missing required input: %s", strings.Join(names, ", "))
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				if !app.interactive() {
					return errMissingInput("email", "password")
				}
				if err := loginForm(&email, &password).Run(); err != nil {
					return err
				}
			}
			stop := app.spin(cmd, "Signing in")
			user, err := app.Onboarding.Login(cmd.Context(), email, password)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s.\n", formatter.Bold(user.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				if !app.interactive() {
					return errMissingInput("name", "email", "password")
				}
				if err := signupForm(&name, &email, &password).Run(); err != nil {
					return err
				}
			}
			stop := app.spin(cmd, "Creating your account")
			user, err := app.Onboarding.Signup(cmd.Context(), name, email, password)
			stop()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Welcome, %s. Your account is ready.\n", formatter.Bold(user.Name))
			fmt.Fprintln(out, formatter.Dim("Start with `wisemind learn about-dbt`."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Onboarding.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Recover a forgotten password",
	}
	cmd.AddCommand(
		newPasswordForgotCmd(app),
		newPasswordVerifyCmd(app),
		newPasswordResetCmd(app),
	)
	return cmd
}

func newPasswordForgotCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Email a verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				if !app.interactive() {
					return errMissingInput("email")
				}
				if err := emailForm(&email).Run(); err != nil {
					return err
				}
			}
			msg, err := app.Onboarding.ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "If that account exists, a code is on its way."
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Next: wisemind password verify --email "+email+" --code <code>"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	return cmd
}

func newPasswordVerifyCmd(app *App) *cobra.Command {
	var email, code string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Exchange the emailed code for a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || code == "" {
				if !app.interactive() {
					return errMissingInput("email", "code")
				}
				if email == "" {
					if err := emailForm(&email).Run(); err != nil {
						return err
					}
				}
				if code == "" {
					if err := codeForm(&code).Run(); err != nil {
						return err
					}
				}
			}
			token, err := app.Onboarding.VerifyCode(cmd.Context(), email, code)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reset token: %s\n", formatter.Bold(token))
			fmt.Fprintln(out, formatter.Dim("Next: wisemind password reset --email "+email+" --token <token>"))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&code, "code", "", "Verification code from the email")
	return cmd
}

func newPasswordResetCmd(app *App) *cobra.Command {
	var email, token, password string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || token == "" {
				return errMissingInput("email", "token")
			}
			if password == "" {
				if !app.interactive() {
					return errMissingInput("password")
				}
				if err := newPasswordForm(&password).Run(); err != nil {
					return err
				}
			}
			msg, err := app.Onboarding.ResetPassword(cmd.Context(), email, token, password)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "Password updated."
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&token, "token", "", "Reset token from `password verify`")
	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}

func newSubscribeCmd(app *App) *cobra.Command {
	var plan planValue
	var paymentToken string

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Buy a subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			if plan.plan == "" || paymentToken == "" {
				if !app.interactive() {
					return errMissingInput("plan", "payment-token")
				}
				choice := string(plan.plan)
				if err := subscribeForm(&choice, &paymentToken).Run(); err != nil {
					return err
				}
				if err := plan.Set(choice); err != nil {
					return err
				}
			}
			sub, err := app.Onboarding.Subscribe(cmd.Context(), plan.plan, paymentToken)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("Subscribed to the %s plan.", sub.Plan)
			if sub.RenewsAt > 0 {
				line += " " + formatter.Dim("Renews "+app.formatUnix(sub.RenewsAt))
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().Var(&plan, "plan", "monthly or yearly")
	cmd.Flags().StringVar(&paymentToken, "payment-token", "", "Token from the payment provider")
	return cmd
}
