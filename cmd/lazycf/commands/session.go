package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Forgets the session, the stored handle and password.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoRestore: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		err := app.Auth.Logout(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Checks with the server whether you are logged in.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		out := cmd.OutOrStdout()
		if app.Auth.IsAuthenticated(cmd.Context()) {
			fmt.Fprintf(out, "✅ Logged in to Codeforces as %s\n", app.Auth.Session().Handle())
			return nil
		}
		fmt.Fprintln(out, "Not logged in")
		return nil
	},
}
