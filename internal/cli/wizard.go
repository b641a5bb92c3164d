package cli

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/alexanderramin/wisemind/internal/cli/formatter"
	"github.com/alexanderramin/wisemind/internal/domain"
	"github.com/alexanderramin/wisemind/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func wisemindHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(wisemindHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < service.MinPasswordLength {
		return fmt.Errorf("use at least %d characters", service.MinPasswordLength)
	}
	return nil
}

// validateScore accepts an integer SUDS score.
func validateScore(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < domain.MinSuds || v > domain.MaxSuds {
		return fmt.Errorf("enter a number from %d to %d", domain.MinSuds, domain.MaxSuds)
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func emailInput(value *string) *huh.Input {
	return huh.NewInput().Title("Email").Placeholder("you@example.com").Value(value).Validate(validateEmail)
}

func passwordInput(title string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(value).Validate(validate)
}

func loginForm(email, password *string) *huh.Form {
	return newForm(huh.NewGroup(
		emailInput(email),
		passwordInput("Password", password, validateRequired("password")),
	))
}

func signupForm(name, email, password *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Your name").Value(name).Validate(validateRequired("name")),
		emailInput(email),
		passwordInput("Password", password, validatePassword),
	))
}

func emailForm(email *string) *huh.Form {
	return newForm(huh.NewGroup(emailInput(email)))
}

func codeForm(code *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Verification code").Description("Sent to your email").Value(code).Validate(validateRequired("code")),
	))
}

func newPasswordForm(password *string) *huh.Form {
	return newForm(huh.NewGroup(passwordInput("New password", password, validatePassword)))
}

func subscribeForm(plan, paymentToken *string) *huh.Form {
	if *plan == "" {
		*plan = string(domain.PlanMonthly)
	}
	return newForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Plan").
			Options(
				huh.NewOption("Monthly", string(domain.PlanMonthly)),
				huh.NewOption("Yearly", string(domain.PlanYearly)),
			).
			Value(plan),
		huh.NewInput().Title("Payment token").Value(paymentToken).Validate(validateRequired("payment token")),
	))
}

func sudsForm(score, trigger, note *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("How distressed are you right now?").
			Description("0 = calm, 10 = the worst you can imagine").
			Value(score).
			Validate(validateScore),
		huh.NewInput().Title("What set it off?").Placeholder("optional").Value(trigger),
		huh.NewInput().Title("Note").Placeholder("optional").Value(note),
	))
}

func letterForm(text *string) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewText().
			Title("Letter from your future self").
			Description("Write as the person you are becoming").
			CharLimit(10000).
			Value(text).
			Validate(validateRequired("letter")),
	))
}

func confirmForm(title string, result *bool) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(result),
	))
}
