package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"lazycf/internal/render"
	"lazycf/internal/scrapers/codeforces"
	"lazycf/lib/textutil"

	"github.com/spf13/cobra"
)

var (
	submitLang          *string
	submitWait          *time.Duration
	submissionsMarkdown *bool
)

func init() {
	submitLang = submitCmd.Flags().String("lang", "", "The language label to submit as, guessed from the file extension by default.")
	submitWait = submitCmd.Flags().Duration("wait", 0, "Look the verdict up after this long, 0 does not wait. Defaults to verdict_delay_seconds when notifications are on.")
	submissionsMarkdown = submissionsCmd.Flags().Bool("markdown", false, "Print a markdown table instead.")
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(verdictCmd)
}

// submitLanguage picks the flag, then the file extension, then the
// configured default.
func submitLanguage(flag, filename, fallback string) string {
	if flag != "" {
		return resolveLanguage(flag)
	}
	if guessed := codeforces.LanguageFromExtension(filename); guessed != "" {
		return guessed
	}
	return fallback
}

// resolveLanguage expands a shorthand like "g++17" to the first known label
// containing it, anything else is passed through as is.
func resolveLanguage(flag string) string {
	if _, known := codeforces.LanguageId(flag); known {
		return flag
	}
	for _, label := range codeforces.Languages() {
		if textutil.MatchName(label, []string{flag}) {
			return label
		}
	}
	return flag
}

func printSubmission(out io.Writer, s codeforces.Submission) {
	fmt.Fprintf(out, "%s %s\n", render.VerdictEmoji(s.Verdict), s.Verdict)
	if s.ProblemName != "" {
		fmt.Fprintf(out, "Problem: %s\n", s.ProblemName)
	}
	fmt.Fprintf(out, "Time: %s, memory: %s\n", s.TimeConsumed, s.MemoryConsumed)
}

var submitCmd = &cobra.Command{
	Use:   "submit <contest id> <index> <file> [--lang <label>] [--wait <duration>]",
	Short: "Submits a solution.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app := appFrom(ctx)
		out := cmd.OutOrStdout()

		if err := app.requireLogin(); err != nil {
			return err
		}
		contestId, err := parseContestId(args[0])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		source, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read solution: %w", err)
		}
		language := submitLanguage(*submitLang, args[2], app.Config.DefaultLanguage)

		fmt.Fprintf(out, "Submitting %s for %d%s as %s...\n", args[2], contestId, index, language)
		id, err := app.Submitter.Submit(ctx, contestId, index, string(source), language)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Submitted, submission id %s\n", id)
		if id != codeforces.UnknownSubmissionId {
			fmt.Fprintln(out, app.Submitter.SubmissionUrl(contestId, id))
		}

		wait := *submitWait
		if !cmd.Flags().Changed("wait") && app.Config.notifications() {
			wait = app.Config.verdictDelay()
		}
		if wait <= 0 || id == codeforces.UnknownSubmissionId {
			return nil
		}

		fmt.Fprintf(out, "Checking the verdict in %s...\n", wait)
		var result codeforces.Submission
		var resultErr error
		check := app.Submitter.ScheduleVerdictCheck(ctx, id, wait, func(s codeforces.Submission, err error) {
			result, resultErr = s, err
		})
		<-check.Done()
		if ctx.Err() != nil {
			return nil
		}
		if resultErr != nil {
			return resultErr
		}
		fmt.Fprint(out, "📊 Submission status: ")
		printSubmission(out, result)
		return nil
	},
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions [--markdown]",
	Short: "Lists your recent submissions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		out := cmd.OutOrStdout()

		if err := app.requireLogin(); err != nil {
			return err
		}
		submissions, err := app.Submitter.RecentSubmissions(cmd.Context())
		if err != nil {
			return err
		}
		if len(submissions) == 0 {
			fmt.Fprintln(out, "No recent submissions found")
			return nil
		}
		if *submissionsMarkdown {
			fmt.Fprint(out, render.SubmissionsMarkdown(submissions, time.Now()))
			return nil
		}
		render.SubmissionsTable(out, submissions)
		return nil
	},
}

var verdictCmd = &cobra.Command{
	Use:   "verdict <submission id>",
	Short: "Looks up the verdict of a submission.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		if err := app.requireLogin(); err != nil {
			return err
		}
		submission, err := app.Submitter.Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Submission %s: ", submission.Id)
		printSubmission(cmd.OutOrStdout(), submission)
		return nil
	},
}
