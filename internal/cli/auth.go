// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradelight/internal/errors"
)

// addAuthCommands adds authentication commands.
func addAuthCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newLoginCmd(app))
	rootCmd.AddCommand(newSignupCmd(app))
	rootCmd.AddCommand(newLogoutCmd(app))
	rootCmd.AddCommand(newWhoamiCmd(app))
	rootCmd.AddCommand(newProfileCmd(app))
}

// promptPassword reads a password from the flag or interactively.
func promptPassword(cmd *cobra.Command, output *Output) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	output.Printf("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the journal",
		Long:  "Sign in as the configured journal owner. The session persists locally.",
		Example: `  tradelight login
  tradelight login --email trader@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				email = app.Config.User.Email
			}
			if email == "" {
				return fmt.Errorf("no email given and none configured")
			}

			password, err := promptPassword(cmd, output)
			if err != nil {
				return err
			}

			identity, err := app.Auth.SignIn(ctx, email, password)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
					output.Error("Invalid credentials")
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(identity)
			}
			name := identity.DisplayName
			if name == "" {
				name = identity.Email
			}
			output.Success("Signed in as %s", name)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email (default: configured email)")
	cmd.Flags().String("password", "", "account password (prompted if omitted)")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signup",
		Short:   "Create a journal account",
		Long:    "Create an account with the configured identity provider and sign in.",
		Example: `  tradelight signup --email trader@example.com --name "Day Trader"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			name, _ := cmd.Flags().GetString("name")

			password, err := promptPassword(cmd, output)
			if err != nil {
				return err
			}

			identity, err := app.Auth.SignUp(ctx, email, password, name)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrSignUpUnsupported) {
					output.Error("The configured provider does not support sign up")
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(identity)
			}
			output.Success("Account created for %s", identity.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password (prompted if omitted)")
	cmd.Flags().String("name", "", "display name")
	return cmd
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   "Update the signed-in profile",
		Example: `  tradelight profile --name "Day Trader"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if !cmd.Flags().Changed("name") {
				return fmt.Errorf("nothing to update, pass --name")
			}
			name, _ := cmd.Flags().GetString("name")

			identity, err := app.Auth.UpdateDisplayName(ctx, name)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrNotSignedIn) {
					output.Error("Not signed in")
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(identity)
			}
			output.Success("Display name set to %s", identity.DisplayName)
			return nil
		},
	}
	cmd.Flags().String("name", "", "display name")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Auth.SignOut(ctx); err != nil {
				return err
			}
			output.Success("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			identity, err := app.Auth.Current(ctx)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrNotSignedIn) {
					output.Info("Not signed in")
					return nil
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(identity)
			}
			output.Printf("User ID:      %s\n", identity.UserID)
			output.Printf("Email:        %s\n", identity.Email)
			output.Printf("Display Name: %s\n", identity.DisplayName)
			return nil
		},
	}
}
