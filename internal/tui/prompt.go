package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/kopi/internal/api"
)

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// LoginForm collects sign-in credentials.
func LoginForm() (api.Credentials, error) {
	var creds api.Credentials

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&creds.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password),
	))

	if err := form.Run(); err != nil {
		return creds, fmt.Errorf("prompt failed: %w", err)
	}
	if creds.Email == "" || creds.Password == "" {
		return creds, fmt.Errorf("email and password are required")
	}
	return creds, nil
}

// AdminLoginForm collects back-office credentials.
func AdminLoginForm() (api.Credentials, error) {
	var creds api.Credentials

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Administrator username").
			Value(&creds.Username),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password),
	))

	if err := form.Run(); err != nil {
		return creds, fmt.Errorf("prompt failed: %w", err)
	}
	if creds.Username == "" || creds.Password == "" {
		return creds, fmt.Errorf("username and password are required")
	}
	return creds, nil
}

// RegisterForm collects the fields for a new account.
func RegisterForm() (api.Registration, error) {
	var reg api.Registration
	var confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&reg.Username),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&reg.Email),
			huh.NewInput().
				Title("Phone (optional)").
				Value(&reg.Phone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&reg.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return reg, fmt.Errorf("prompt failed: %w", err)
	}
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return reg, fmt.Errorf("username, email and password are required")
	}
	if reg.Password != confirm {
		return reg, fmt.Errorf("passwords do not match")
	}
	return reg, nil
}

// PasswordChangeForm collects a password rotation.
func PasswordChangeForm() (api.PasswordChange, error) {
	var change api.PasswordChange
	var confirm string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(&change.CurrentPassword),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&change.NewPassword),
		huh.NewInput().
			Title("Confirm new password").
			EchoMode(huh.EchoModePassword).
			Value(&confirm),
	))

	if err := form.Run(); err != nil {
		return change, fmt.Errorf("prompt failed: %w", err)
	}
	if change.NewPassword != confirm {
		return change, fmt.Errorf("passwords do not match")
	}
	return change, nil
}

// Confirm displays a yes/no confirmation prompt.
func Confirm(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return confirmed, nil
}

// SelectOption displays a selection prompt over the given options.
func SelectOption(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(message).
			Options(huhOptions...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return selected, nil
}
