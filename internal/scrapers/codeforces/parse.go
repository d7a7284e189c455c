package codeforces

import (
	"bytes"
	"fmt"
	"strings"

	"lazycf/lib/htmlutil"
	"lazycf/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

func parseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// ExtractCsrfToken returns the anti-forgery token of the first form on the
// page or an empty string.
func ExtractCsrfToken(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find(selCsrfToken).First().AttrOr("value", ""))
}

// IsAuthenticatedProfile reports whether a page was rendered for a logged in
// viewer. Anonymous viewers get the same status code, so only the markup can
// tell them apart.
func IsAuthenticatedProfile(doc *goquery.Document) bool {
	return doc.Find(selAuthMarker).Length() > 0
}

// ParseFormError returns the first error message rendered next to a form
// field, or an empty string.
func ParseFormError(doc *goquery.Document) string {
	message := ""
	doc.Find(selFormError).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		message = htmlutil.CleanText(s.Text())
		return message == ""
	})
	return message
}

// ExtractSubmissionId finds the id of the newest submission linked from a
// page, it returns an empty string if there is none.
func ExtractSubmissionId(body string) string {
	for _, r := range submissionIdRegexes {
		groups := r.FindStringSubmatch(body)
		if len(groups) >= 2 {
			return groups[1]
		}
	}
	return ""
}

// sectionText returns the text of a statement section without its title,
// paragraphs are separated by a blank line.
func sectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	clone := sel.First().Clone()
	clone.Find(selSectionTitle).Remove()

	paragraphs := clone.Find("p")
	if paragraphs.Length() == 0 {
		return htmlutil.CleanText(clone.Text())
	}
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		text := htmlutil.CleanText(p.Text())
		if text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

func parseExamples(statement *goquery.Selection) []Example {
	examples := []Example{}
	filled := []bool{}

	statement.Find(selExampleBlocks).Each(func(_ int, block *goquery.Selection) {
		pre := block.Find(selExamplePre).First()
		text := ""
		if pre.Length() > 0 {
			text = htmlutil.GetLines(pre.Get(0))
		}

		if block.HasClass("input") {
			examples = append(examples, Example{Input: text})
			filled = append(filled, false)
			return
		}

		// an output belongs to the most recently opened example that does not
		// have one yet, outputs with nowhere to go are dropped
		for i := len(examples) - 1; i >= 0; i-- {
			if !filled[i] {
				examples[i].Output = text
				filled[i] = true
				return
			}
		}
	})

	return examples
}

// ParseProblem parses a problem statement page.
func ParseProblem(doc *goquery.Document, contestId int, index string) (Problem, error) {
	statement := doc.Find(selProblemStatement).First()
	if statement.Length() == 0 {
		return Problem{}, fmt.Errorf("%w: no problem statement on page", ErrPageUnavailable)
	}

	title := htmlutil.CleanText(statement.Find(selProblemTitle).First().Text())
	title = titlePrefixRegex.ReplaceAllString(title, "")

	return Problem{
		ContestId:    contestId,
		Index:        index,
		Name:         title,
		Type:         ProblemTypeProgramming,
		Tags:         []string{},
		Statement:    sectionText(statement.Find(selStatementBody)),
		InputFormat:  sectionText(statement.Find(selInputSpec)),
		OutputFormat: sectionText(statement.Find(selOutputSpec)),
		Examples:     parseExamples(statement),
		TimeLimit:    sectionText(statement.Find(selTimeLimit)),
		MemoryLimit:  sectionText(statement.Find(selMemoryLimit)),
		Note:         sectionText(statement.Find(selNote)),
	}, nil
}

func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	return htmlutil.CleanText(cells.Eq(i).Text())
}

func cellAnchorText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	anchor := cells.Eq(i).Find(selAnchor).First()
	if anchor.Length() == 0 {
		return cellText(cells, i)
	}
	return htmlutil.CleanText(anchor.Text())
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// ParseSubmissions parses the rows of a submissions status table, newest
// first as they appear on the page. Rows without an id or a problem are
// skipped.
func ParseSubmissions(doc *goquery.Document) []Submission {
	submissions := []Submission{}
	doc.Find(selSubmissionRows).Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find(selCell)
		if cells.Length() < minSubmissionCells {
			return
		}
		id := cellText(cells, colSubmissionId)
		problem := cellAnchorText(cells, colSubmissionProblem)
		if id == "" || problem == "" {
			return
		}
		submissions = append(submissions, Submission{
			Id:             id,
			ProblemName:    problem,
			Verdict:        orDefault(cellText(cells, colSubmissionVerdict), UnknownVerdict),
			TimeConsumed:   orDefault(cellText(cells, colSubmissionTime), "N/A"),
			MemoryConsumed: orDefault(cellText(cells, colSubmissionMemory), "N/A"),
		})
	})
	return submissions
}

// ParseContestProblems parses the problem table of a contest page.
func ParseContestProblems(doc *goquery.Document, contestId int) []Problem {
	problems := []Problem{}
	doc.Find(selContestRows).Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find(selCell)
		if cells.Length() < minContestCells {
			return
		}
		index := cellText(cells, colContestIndex)
		name := cellAnchorText(cells, colContestName)
		if index == "" || name == "" {
			return
		}
		problems = append(problems, Problem{
			ContestId: contestId,
			Index:     index,
			Name:      name,
			Type:      ProblemTypeProgramming,
			Tags:      []string{},
		})
	})
	return problems
}

// FilterProblems returns at most limit problems whose name or any tag
// contains query, ignoring case.
func FilterProblems(catalog []Problem, query string, limit int) []Problem {
	out := []Problem{}
	for _, p := range catalog {
		if len(out) >= limit {
			break
		}
		if textutil.ContainsFold(p.Name, query) {
			out = append(out, p)
			continue
		}
		for _, tag := range p.Tags {
			if textutil.ContainsFold(tag, query) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// MergeEnrichment copies the tags and rating of the entry with the same index
// into problem, it reports whether one was found.
func MergeEnrichment(problem *Problem, enrichment []Problem) bool {
	for _, e := range enrichment {
		if e.Index != problem.Index {
			continue
		}
		if e.Tags != nil {
			problem.Tags = append([]string{}, e.Tags...)
		}
		problem.Rating = e.Rating
		if problem.Points == nil {
			problem.Points = e.Points
		}
		return true
	}
	return false
}
