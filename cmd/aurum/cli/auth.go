package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aurumkit/aurum"
)

// LoginCmd authenticates and persists the session in redis, so later
// commands run authenticated until logout or teardown.
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				var apiErr *aurum.APIError
				if errors.As(err, &apiErr) && apiErr.Message != "" {
					return fmt.Errorf("login rejected: %s", apiErr.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Username, sess.Role)
			return nil
		},
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// RegisterCmd creates a new account. It does not sign in.
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			err = client.Register(cmd.Context(), aurum.RegisterInput{
				Username: username,
				Email:    email,
				Password: password,
				Role:     aurum.Role(strings.ToUpper(role)),
			})
			if errors.Is(err, aurum.ErrInvalidRole) {
				return fmt.Errorf("role must be %q or %q", "buyer", "seller")
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run \"aurum login\" to sign in.")
			return nil
		},
	}

	cmd.Flags().String("username", "", "display name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("role", "buyer", "account role: buyer or seller")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// LogoutCmd clears the persisted session.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// MeCmd prints the stored profile.
func MeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			profile, err := client.Profile(cmd.Context())
			if errors.Is(err, aurum.ErrNoSession) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintf(w, "USERNAME\t%s\n", profile.Username)
			fmt.Fprintf(w, "EMAIL\t%s\n", profile.Email)
			fmt.Fprintf(w, "ROLE\t%s\n", profile.Role)
			fmt.Fprintf(w, "MEMBER SINCE\t%s\n", profile.CreatedAt)
			return w.Flush()
		},
	}
}
