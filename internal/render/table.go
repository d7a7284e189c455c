package render

import (
	"fmt"
	"io"
	"strings"

	"lazycf/internal/scrapers/codeforces"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func ratingCell(rating *int) string {
	if rating == nil {
		return "N/A"
	}
	return fmt.Sprint(*rating)
}

// ProblemsTable prints a listing of problems, as returned by a search or a
// contest.
func ProblemsTable(out io.Writer, problems []codeforces.Problem) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Problem", "Name", "Rating", "Tags"})
	for _, p := range problems {
		t.AppendRow(table.Row{problemId(p), p.Name, ratingCell(p.Rating), strings.Join(p.Tags, ", ")})
	}
	t.Render()
}

// SubmissionsTable prints a listing of submissions.
func SubmissionsTable(out io.Writer, submissions []codeforces.Submission) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Id", "Problem", "Verdict", "Time", "Memory"})
	for _, s := range submissions {
		t.AppendRow(table.Row{
			s.Id,
			s.ProblemName,
			fmt.Sprintf("%s %s", VerdictEmoji(s.Verdict), s.Verdict),
			s.TimeConsumed,
			s.MemoryConsumed,
		})
	}
	t.Render()
}
