// Package render turns problems and submissions into the documents and
// tables the cli prints or writes to disk.
package render

import (
	"fmt"
	"strings"
	"time"

	"lazycf/internal/scrapers/codeforces"
)

type verdictEmoji struct {
	verdict string
	emoji   string
}

// checked in order, the first verdict contained in the text wins
var verdictEmojis = []verdictEmoji{
	{"Accepted", "✅"},
	{"Wrong answer", "❌"},
	{"Time limit exceeded", "⏰"},
	{"Memory limit exceeded", "💾"},
	{"Runtime error", "💥"},
	{"Compilation error", "🔨"},
	{"Pending", "⏳"},
	{"Running", "🏃"},
	{"Partial", "⚠️"},
}

const unknownVerdictEmoji = "❓"

// VerdictEmoji returns the emoji for a verdict as the website words it,
// "Wrong answer on test 3" included.
func VerdictEmoji(verdict string) string {
	lower := strings.ToLower(verdict)
	for _, v := range verdictEmojis {
		if strings.Contains(lower, strings.ToLower(v.verdict)) {
			return v.emoji
		}
	}
	return unknownVerdictEmoji
}

func problemId(p codeforces.Problem) string {
	return fmt.Sprintf("%d%s", p.ContestId, p.Index)
}

func problemUrl(baseUrl string, p codeforces.Problem) string {
	return fmt.Sprintf("%s/contest/%d/problem/%s", strings.TrimSuffix(baseUrl, "/"), p.ContestId, p.Index)
}

func contestUrl(baseUrl string, contestId int) string {
	return fmt.Sprintf("%s/contest/%d", strings.TrimSuffix(baseUrl, "/"), contestId)
}

func codeBlock(out *strings.Builder, text string) {
	out.WriteString("```\n")
	out.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		out.WriteString("\n")
	}
	out.WriteString("```\n\n")
}

// ProblemMarkdown renders a problem statement, baseUrl is the site the
// problem was fetched from.
func ProblemMarkdown(p codeforces.Problem, baseUrl string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "# %s: %s\n\n", problemId(p), p.Name)

	if p.Rating != nil {
		fmt.Fprintf(&out, "**Rating:** %d\n\n", *p.Rating)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&out, "**Tags:** %s\n\n", strings.Join(p.Tags, ", "))
	}
	if p.TimeLimit != "" {
		fmt.Fprintf(&out, "**Time limit:** %s\n\n", p.TimeLimit)
	}
	if p.MemoryLimit != "" {
		fmt.Fprintf(&out, "**Memory limit:** %s\n\n", p.MemoryLimit)
	}

	fmt.Fprintf(&out, "## Problem Statement\n\n%s\n\n", p.Statement)
	if p.InputFormat != "" {
		fmt.Fprintf(&out, "## Input Format\n\n%s\n\n", p.InputFormat)
	}
	if p.OutputFormat != "" {
		fmt.Fprintf(&out, "## Output Format\n\n%s\n\n", p.OutputFormat)
	}

	if len(p.Examples) > 0 {
		out.WriteString("## Examples\n\n")
		for i, example := range p.Examples {
			fmt.Fprintf(&out, "### Example %d\n\n", i+1)
			out.WriteString("**Input:**\n")
			codeBlock(&out, example.Input)
			out.WriteString("**Output:**\n")
			codeBlock(&out, example.Output)
		}
	}

	if p.Note != "" {
		fmt.Fprintf(&out, "## Note\n\n%s\n\n", p.Note)
	}

	out.WriteString("---\n\n")
	fmt.Fprintf(&out, "**Contest Link:** [%s](%s)\n", problemId(p), problemUrl(baseUrl, p))
	return out.String()
}

// ContestMarkdown renders the problem list of a contest.
func ContestMarkdown(contestId int, problems []codeforces.Problem, baseUrl string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "# Contest %d Problems\n\n", contestId)
	fmt.Fprintf(&out, "**Total Problems:** %d\n\n", len(problems))

	out.WriteString("## Problem List\n\n")
	for _, p := range problems {
		fmt.Fprintf(&out, "### %s: %s\n", p.Index, p.Name)
		if p.Rating != nil {
			fmt.Fprintf(&out, "**Rating:** %d\n", *p.Rating)
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(&out, "**Tags:** %s\n", strings.Join(p.Tags, ", "))
		}
		fmt.Fprintf(&out, "**Link:** [Problem %s](%s)\n\n", p.Index, problemUrl(baseUrl, p))
	}

	out.WriteString("---\n\n")
	fmt.Fprintf(&out, "**Contest Link:** [Contest %d](%s)\n", contestId, contestUrl(baseUrl, contestId))
	return out.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// SubmissionsMarkdown renders a submissions table stamped with the time it
// was generated.
func SubmissionsMarkdown(submissions []codeforces.Submission, generated time.Time) string {
	var out strings.Builder
	out.WriteString("# Recent Submissions\n\n")
	out.WriteString("| ID | Problem | Verdict | Time | Memory |\n")
	out.WriteString("|---|---|---|---|---|\n")
	for _, s := range submissions {
		fmt.Fprintf(
			&out, "| %s | %s | %s %s | %s | %s |\n",
			s.Id, escapeCell(s.ProblemName),
			VerdictEmoji(s.Verdict), escapeCell(s.Verdict),
			s.TimeConsumed, s.MemoryConsumed,
		)
	}
	out.WriteString("\n---\n\n")
	fmt.Fprintf(&out, "*Last updated: %s*\n", generated.Format(time.DateTime))
	return out.String()
}
