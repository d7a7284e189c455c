package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lazycf/internal/render"
	"lazycf/internal/scrapers/codeforces"

	"github.com/spf13/cobra"
)

var (
	problemOut       *string
	problemTemplate  *bool
	contestTemplates *bool
)

func init() {
	problemOut = problemCmd.Flags().StringP("out", "o", "", "Write the statement to this markdown file instead of stdout.")
	problemTemplate = problemCmd.Flags().Bool("template", false, "Also create a solution template in the working directory.")
	contestTemplates = contestCmd.Flags().Bool("templates", false, "Create a solution template for every problem in the working directory.")
	rootCmd.AddCommand(problemCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(contestCmd)
}

func parseContestId(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contest id %q", raw)
	}
	return id, nil
}

func parseIndex(raw string) (string, error) {
	index := strings.ToUpper(strings.TrimSpace(raw))
	if index == "" {
		return "", fmt.Errorf("problem index is required")
	}
	return index, nil
}

// writeTemplate creates the solution template of a problem, an existing
// file is left alone.
func writeTemplate(out io.Writer, app *App, problem codeforces.Problem) error {
	source, ext, err := render.SolutionTemplate(problem, render.ParseTemplateKind(app.Config.DefaultLanguage))
	if err != nil {
		return err
	}
	filename := render.SuggestedFilename(problem, ext)

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		fmt.Fprintf(out, "%s already exists, skipping\n", filename)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	defer file.Close()

	_, err = file.WriteString(source)
	if err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", filename)
	return nil
}

var problemCmd = &cobra.Command{
	Use:   "problem <contest id> <index> [--out <file>] [--template]",
	Short: "Fetches a problem statement as markdown.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		out := cmd.OutOrStdout()

		contestId, err := parseContestId(args[0])
		if err != nil {
			return err
		}
		index, err := parseIndex(args[1])
		if err != nil {
			return err
		}

		problem, err := app.Client.FetchProblem(cmd.Context(), contestId, index)
		if err != nil {
			return err
		}
		doc := render.ProblemMarkdown(problem, app.Client.BaseUrl.String())

		if *problemOut == "" {
			fmt.Fprint(out, doc)
		} else {
			err = os.WriteFile(*problemOut, []byte(doc), 0644)
			if err != nil {
				return fmt.Errorf("write statement: %w", err)
			}
			fmt.Fprintf(out, "✅ Problem %d%s written to %s\n", contestId, index, *problemOut)
		}

		if *problemTemplate {
			return writeTemplate(out, app, problem)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches the problemset by name and tag.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		out := cmd.OutOrStdout()

		results, err := app.Client.SearchProblems(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No problems found")
			return nil
		}
		render.ProblemsTable(out, results)
		return nil
	},
}

var contestCmd = &cobra.Command{
	Use:   "contest <contest id> [--templates]",
	Short: "Lists the problems of a contest.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appFrom(cmd.Context())
		out := cmd.OutOrStdout()

		contestId, err := parseContestId(args[0])
		if err != nil {
			return err
		}
		problems, err := app.Client.FetchContestProblems(cmd.Context(), contestId)
		if err != nil {
			return err
		}
		if len(problems) == 0 {
			fmt.Fprintf(out, "No problems found for contest %d\n", contestId)
			return nil
		}
		fmt.Fprint(out, render.ContestMarkdown(contestId, problems, app.Client.BaseUrl.String()))

		if !*contestTemplates {
			return nil
		}
		for _, problem := range problems {
			err := writeTemplate(out, app, problem)
			if err != nil {
				return err
			}
		}
		return nil
	},
}
