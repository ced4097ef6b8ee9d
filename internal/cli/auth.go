package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zamanihq/dashboard/internal/dashboard/forms"
	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/pkg/jwtx"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

func newLoginCommand(e *env) *cobra.Command {
	var (
		username      string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				p, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			form := forms.NewLoginForm(e.hooks, e.notifier(cmd))
			res, err := form.Submit(cmd.Context(), zamanisdk.LoginRequest{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.MustChangePassword {
				fmt.Fprintf(out, "A new password is required. Run: zamanictl set-password --username %s\n", username)
				return nil
			}
			fmt.Fprintf(out, "Logged in as %s (%s)\n", res.User.DisplayName(), res.User.ProfileType)
			fmt.Fprintf(out, "Next: %s\n", res.Next)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := e.hooks.Auth().Logout().Mutate(ctx, resource.Nothing{}); err != nil {
				// The local session is already gone; the server call is best effort.
				slogx.FromContext(ctx).Warn("logout request failed", "err", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newSetPasswordCommand(e *env) *cobra.Command {
	var req zamanisdk.SetPasswordRequest

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set a new password after a forced change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := forms.NewLoginForm(e.hooks, e.notifier(cmd))
			next, err := form.SetPassword(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated. Next: %s\n", next)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "current (temporary) password")
	cmd.Flags().StringVar(&req.Password, "new", "", "new password")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "new password again")
	return cmd
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			me, err := e.hooks.Auth().Me().Fetch(ctx)
			if err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "USERNAME", "NAME", "PROFILE", "COMMUNITY", "SESSION EXPIRES")
			t.row(me.Username, me.DisplayName(), me.ProfileType, dash(me.CommunityID), e.sessionExpiry(ctx))
			return t.flush()
		},
	}
}

// sessionExpiry reads exp from the stored token without verifying it.
func (e *env) sessionExpiry(ctx context.Context) string {
	tok, err := e.session.Token(ctx)
	if err != nil {
		return "-"
	}
	claims, err := jwtx.ParseUnverified(tok)
	if err != nil {
		return "-"
	}
	exp := claims.Expiry()
	return formatTime(&exp)
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
