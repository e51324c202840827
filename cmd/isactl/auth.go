package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utdisa/isa-portal/client"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend()
			if err != nil {
				return err
			}
			session := a.sessionManager(b)
			if err := session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			if err := newTokenStore(a.tokenFile).Save(b.AccessToken()); err != nil {
				return err
			}
			return a.printJSON(session.Current())
		},
	}

	cmd.Flags().StringVar(&email, "email", os.Getenv("ISA_EMAIL"), "Account email")
	cmd.Flags().StringVar(&password, "password", os.Getenv("ISA_PASSWORD"), "Account password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var in client.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with a university email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.ConfirmPassword == "" {
				in.ConfirmPassword = in.Password
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			session := a.sessionManager(b)
			if err := session.Register(cmd.Context(), in); err != nil {
				var domainErr *client.EmailDomainError
				if errors.As(err, &domainErr) {
					return fmt.Errorf("%w (got %s)", err, in.Email)
				}
				return err
			}
			if err := newTokenStore(a.tokenFile).Save(b.AccessToken()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Account created. Check your inbox to confirm your email.")
			return a.printJSON(session.Current())
		},
	}

	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&in.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Email, "email", os.Getenv("ISA_EMAIL"), "University email")
	cmd.Flags().StringVar(&in.Password, "password", os.Getenv("ISA_PASSWORD"), "Password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm-password", "", "Password again; defaults to --password")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend()
			if err != nil {
				return err
			}
			a.sessionManager(b).Logout(cmd.Context())
			return newTokenStore(a.tokenFile).Clear()
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.backend()
			if err != nil {
				return err
			}
			session := a.sessionManager(b)
			session.Refresh(cmd.Context())
			if !session.Current().LoggedIn {
				// the server no longer honours the token
				if err := newTokenStore(a.tokenFile).Clear(); err != nil {
					return err
				}
			}
			return a.printJSON(session.Current())
		},
	}
}

func newResetPasswordCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Email a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email or ISA_EMAIL is required")
			}
			b, err := a.backend()
			if err != nil {
				return err
			}
			if err := a.sessionManager(b).ResetPassword(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "If %s has an account, a reset link is on its way.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", os.Getenv("ISA_EMAIL"), "Account email")
	return cmd
}
