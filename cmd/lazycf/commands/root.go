package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// commands with this annotation manage the session themselves
const annotationNoRestore = "lazycf.no-restore"

var (
	configPath *string
	verbose    *bool
	dumpDir    *string
)

// the app of the running command, closed once it finishes
var current *App

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "", "Path to a lazycf.json5 config file.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug information to stderr.")
	dumpDir = rootCmd.PersistentFlags().String("dump-http", "", "Write every http request and response to this directory, credentials are redacted.")
}

var rootCmd = &cobra.Command{
	Use:           "lazycf",
	Short:         "lazycf fetches problems from and submits solutions to Codeforces.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context(), appOptions{
			configPath: *configPath,
			verbose:    *verbose,
			dumpDir:    *dumpDir,
		})
		if err != nil {
			return err
		}
		current = app
		if _, skip := cmd.Annotations[annotationNoRestore]; !skip {
			app.restore(cmd.Context())
		}
		cmd.SetContext(withApp(cmd.Context(), app))
		return nil
	},
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		closeErr := current.Close(closeCtx)
		cancel()
		if closeErr != nil {
			fmt.Fprintln(os.Stderr, closeErr)
		}
	}
	return err
}
