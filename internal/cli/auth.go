package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sreddit/sreddit/internal/models"
)

func signupCmd(with runner) *cobra.Command {
	var email, password, username string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			user, token, err := e.identity.SignUp(ctx, email, password, username)
			if err != nil {
				return err
			}
			if err := e.local.SaveSessionToken(token); err != nil {
				return err
			}
			fmt.Printf("Welcome, %s! You are signed in.\n", user.Username)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (6 characters minimum)")
	cmd.Flags().StringVar(&username, "username", "", "Public username")
	return cmd
}

func loginCmd(with runner) *cobra.Command {
	var email, password, googleToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to an account",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			var (
				user  *models.User
				token string
				err   error
			)
			if googleToken != "" {
				user, token, err = e.identity.SignInWithGoogle(ctx, googleToken)
			} else {
				user, token, err = e.identity.SignIn(ctx, email, password)
			}
			if err != nil {
				return err
			}
			if err := e.local.SaveSessionToken(token); err != nil {
				return err
			}
			fmt.Printf("Signed in as %s.\n", user.Username)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&googleToken, "google-token", "", "Google ID token for OAuth sign-in")
	return cmd
}

func resetPasswordCmd(with runner) *cobra.Command {
	var email, token, newPassword string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Request or complete a password reset",
		Long: `With --email, issues a reset token for the account. With --token and
--new-password, consumes the token and sets the new password.`,
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			if token != "" {
				if err := e.identity.CompleteReset(ctx, token, newPassword); err != nil {
					return err
				}
				fmt.Println("Password updated. You can log in now.")
				return nil
			}
			issued, err := e.identity.ResetPassword(ctx, email)
			if err != nil {
				return err
			}
			fmt.Printf("Reset token (valid for one hour): %s\n", issued)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email to reset")
	cmd.Flags().StringVar(&token, "token", "", "Reset token to consume")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password")
	return cmd
}

func logoutCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			e.identity.SignOut()
			if err := e.local.ClearSession(); err != nil {
				return err
			}
			fmt.Println("Signed out. You are browsing anonymously.")
			return nil
		}),
	}
}

func whoamiCmd(with runner) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: with(func(ctx context.Context, e *env, cmd *cobra.Command, args []string) error {
			if user := e.identity.CurrentUser(); user != nil {
				fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Email)
				return nil
			}
			fmt.Printf("Anonymous device identity: %s\n", e.app.UserID())
			return nil
		}),
	}
}
