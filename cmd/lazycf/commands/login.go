package commands

import (
	"errors"
	"fmt"
	"io"

	"lazycf/internal/scrapers/codeforces"

	"github.com/spf13/cobra"
)

var (
	loginHandle        *string
	loginPasswordStdin *bool
	loginCookies       *bool
)

func init() {
	loginHandle = loginCmd.Flags().String("handle", "", "The handle to log in as, defaults to the stored handle.")
	loginPasswordStdin = loginCmd.Flags().Bool("password-stdin", false, "Read the password from the first line of stdin.")
	loginCookies = loginCmd.Flags().Bool("cookies", false, "Log in with cookies copied from a browser instead of a password.")
	rootCmd.AddCommand(loginCmd)
}

func loginWithCookies(cmd *cobra.Command, app *App, handle string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Log in at %s in your browser, then copy the value of the Cookie request header.\n", app.Client.Url("/enter"))
	raw, err := promptSecret(out, "Cookies: ")
	if err != nil {
		return err
	}
	return app.Auth.LoginWithCookieString(cmd.Context(), handle, raw)
}

var loginCmd = &cobra.Command{
	Use:         "login [--handle <handle>] [--password-stdin] [--cookies]",
	Short:       "Logs in, reusing the stored session when it is still valid.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRestore: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app := appFrom(ctx)
		out := cmd.OutOrStdout()

		handle := *loginHandle
		if handle == "" {
			stored, err := app.Auth.StoredHandle(ctx)
			if err != nil {
				return err
			}
			handle = stored
		}
		if handle == "" {
			prompted, err := prompt(out, "Handle: ")
			if err != nil {
				return err
			}
			handle = prompted
		}

		var err error
		switch {
		case *loginCookies:
			err = loginWithCookies(cmd, app, handle)
		case *loginPasswordStdin:
			password, readErr := readLine(stdin)
			if readErr != nil && readErr != io.EOF {
				return fmt.Errorf("read password: %w", readErr)
			}
			err = app.Auth.Login(ctx, handle, password)
		default:
			err = app.Auth.Login(ctx, handle, "")
			if errors.Is(err, codeforces.ErrPasswordRequired) {
				password, promptErr := promptSecret(out, "Password (leave empty to use browser cookies): ")
				if promptErr != nil {
					return promptErr
				}
				if password == "" {
					err = loginWithCookies(cmd, app, handle)
				} else {
					err = app.Auth.LoginWithCredentials(ctx, handle, password)
				}
			}
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ Logged in to Codeforces as %s\n", app.Auth.Session().Handle())
		return nil
	},
}
