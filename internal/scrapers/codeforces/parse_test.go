package codeforces

import (
	_ "embed"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/problem.html
var problemHtml string

//go:embed testdata/submissions.html
var submissionsHtml string

//go:embed testdata/contest.html
var contestHtml string

//go:embed testdata/contest_empty.html
var contestEmptyHtml string

//go:embed testdata/profile_authenticated.html
var profileAuthenticatedHtml string

//go:embed testdata/profile_anonymous.html
var profileAnonymousHtml string

//go:embed testdata/enter.html
var enterHtml string

//go:embed testdata/submit.html
var submitHtml string

//go:embed testdata/my.html
var myHtml string

func mustParse(t testing.TB, markup string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestParseProblem(t *testing.T) {
	problem, err := ParseProblem(mustParse(t, problemHtml), 4, "A")
	require.NoError(t, err)

	expected := Problem{
		ContestId: 4,
		Index:     "A",
		Name:      "Watermelon",
		Type:      ProblemTypeProgramming,
		Tags:      []string{},
		Statement: "One hot summer day Pete and his friend Billy decided to buy a watermelon. " +
			"They chose the biggest and the ripest one, in their opinion.\n\n" +
			"Pete and Billy are great fans of even numbers, that's why they want to divide " +
			"the watermelon in such a way that each of the two parts weighs even number of kilos.",
		InputFormat: "The first (and the only) input line contains integer number w (1 ≤ w ≤ 100) — " +
			"the weight of the watermelon bought by the boys.",
		OutputFormat: "Print YES, if the boys can divide the watermelon into two parts, each of them " +
			"weighing even number of kilos; and NO in the opposite case.",
		Examples: []Example{
			{Input: "8", Output: "YES"},
			{Input: "2\n3", Output: "NO\nNO"},
		},
		TimeLimit:   "1 second",
		MemoryLimit: "64 megabytes",
		Note:        "For example, the boys can divide the watermelon into two parts of 2 and 6 kilos respectively.",
	}

	if diff := cmp.Diff(expected, problem); diff != "" {
		t.Fatalf("problem mismatch (-want +got):\n%s", diff)
	}
}

func TestParseProblemMissingStatement(t *testing.T) {
	_, err := ParseProblem(mustParse(t, contestEmptyHtml), 4, "A")
	require.ErrorIs(t, err, ErrPageUnavailable)
}

func TestParseProblemTitlePrefix(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{title: "A. Watermelon", expected: "Watermelon"},
		{title: "B1. Easy Version", expected: "Easy Version"},
		{title: "F2.   Hard Version", expected: "Hard Version"},
		{title: "Watermelon", expected: "Watermelon"},
		{title: "a. lowercase stays", expected: "a. lowercase stays"},
	}
	for _, test := range cases {
		t.Run(test.title, func(t *testing.T) {
			markup := fmt.Sprintf(`<div class="problem-statement"><div class="header"><div class="title">%s</div></div></div>`, test.title)
			problem, err := ParseProblem(mustParse(t, markup), 1, "A")
			require.NoError(t, err)
			require.Equal(t, test.expected, problem.Name)
		})
	}
}

func exampleMarkup(blocks ...string) string {
	var out strings.Builder
	out.WriteString(`<div class="problem-statement"><div class="header"><div class="title">A. Test</div></div><div class="sample-test">`)
	for _, b := range blocks {
		kind := "input"
		if strings.HasPrefix(b, "O") {
			kind = "output"
		}
		out.WriteString(fmt.Sprintf(`<div class="%s"><div class="title">%s</div><pre>%s</pre></div>`, kind, kind, b))
	}
	out.WriteString(`</div></div>`)
	return out.String()
}

func TestExamplePairing(t *testing.T) {
	cases := []struct {
		name     string
		blocks   []string
		expected []Example
	}{
		{
			name:   "interleaved",
			blocks: []string{"I1", "O1", "I2", "O2"},
			expected: []Example{
				{Input: "I1", Output: "O1"},
				{Input: "I2", Output: "O2"},
			},
		},
		{
			name:   "leading orphan output is dropped",
			blocks: []string{"O0", "I1", "O1", "I2", "O2"},
			expected: []Example{
				{Input: "I1", Output: "O1"},
				{Input: "I2", Output: "O2"},
			},
		},
		{
			name:   "inputs before outputs",
			blocks: []string{"I1", "I2", "O2", "O1"},
			expected: []Example{
				{Input: "I1", Output: "O1"},
				{Input: "I2", Output: "O2"},
			},
		},
		{
			name:   "extra output is dropped",
			blocks: []string{"I1", "O1", "O9"},
			expected: []Example{
				{Input: "I1", Output: "O1"},
			},
		},
		{
			name:   "input without output",
			blocks: []string{"I1"},
			expected: []Example{
				{Input: "I1"},
			},
		},
		{
			name:     "no examples",
			blocks:   nil,
			expected: []Example{},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			problem, err := ParseProblem(mustParse(t, exampleMarkup(test.blocks...)), 1, "A")
			require.NoError(t, err)
			require.Equal(t, test.expected, problem.Examples)
		})
	}
}

func TestParseSubmissions(t *testing.T) {
	// 249999990 has no problem cell and is skipped
	submissions := ParseSubmissions(mustParse(t, submissionsHtml))
	require.Equal(t, []Submission{
		{
			Id:             "250000001",
			ProblemName:    "4A - Watermelon",
			Verdict:        "Accepted",
			TimeConsumed:   "30 ms",
			MemoryConsumed: "0 KB",
		},
		{
			Id:             "249999999",
			ProblemName:    "1B - Spreadsheets",
			Verdict:        "Wrong answer on test 2",
			TimeConsumed:   "46 ms",
			MemoryConsumed: "100 KB",
		},
		{
			Id:             "249999998",
			ProblemName:    "1A - Theatre Square",
			Verdict:        UnknownVerdict,
			TimeConsumed:   "N/A",
			MemoryConsumed: "N/A",
		},
	}, submissions)
}

func TestParseContestProblems(t *testing.T) {
	problems := ParseContestProblems(mustParse(t, contestHtml), 4)
	require.Equal(t, []Problem{
		{ContestId: 4, Index: "A", Name: "Watermelon", Type: ProblemTypeProgramming, Tags: []string{}},
		{ContestId: 4, Index: "B", Name: "Before an Exam", Type: ProblemTypeProgramming, Tags: []string{}},
	}, problems)

	require.Empty(t, ParseContestProblems(mustParse(t, contestEmptyHtml), 4))
}

func TestIsAuthenticatedProfile(t *testing.T) {
	require.True(t, IsAuthenticatedProfile(mustParse(t, profileAuthenticatedHtml)))
	require.False(t, IsAuthenticatedProfile(mustParse(t, profileAnonymousHtml)))
	// the anonymous language chooser only links to the login page
	require.False(t, IsAuthenticatedProfile(mustParse(t, problemHtml)))
	require.True(t, IsAuthenticatedProfile(mustParse(t,
		`<div class="lang-chooser"><a href="/6d21a/logout">Logout</a></div>`,
	)))
}

func TestExtractCsrfToken(t *testing.T) {
	doc := mustParse(t, strings.ReplaceAll(enterHtml, "{{CSRF}}", "0123abcd"))
	require.Equal(t, "0123abcd", ExtractCsrfToken(doc))
	require.Empty(t, ExtractCsrfToken(mustParse(t, profileAnonymousHtml)))
}

func TestParseFormError(t *testing.T) {
	withError := strings.ReplaceAll(enterHtml, "{{ERROR}}", "Invalid handle/email or password")
	require.Equal(t, "Invalid handle/email or password", ParseFormError(mustParse(t, withError)))

	withoutError := strings.ReplaceAll(enterHtml, "{{ERROR}}", "")
	require.Empty(t, ParseFormError(mustParse(t, withoutError)))
}

func TestExtractSubmissionId(t *testing.T) {
	page := strings.NewReplacer("{{ID}}", "250000123", "{{CONTEST}}", "1234").Replace(myHtml)
	require.Equal(t, "250000123", ExtractSubmissionId(page))
	require.Equal(t, "42", ExtractSubmissionId(`<tr data-submission-id="42"></tr>`))
	require.Empty(t, ExtractSubmissionId(profileAnonymousHtml))
}

func intPtr(v int) *int {
	return &v
}

func TestFilterProblems(t *testing.T) {
	catalog := []Problem{
		{ContestId: 1, Index: "A", Name: "Binary Search Tree", Tags: []string{"trees", "dp"}},
		{ContestId: 2, Index: "B", Name: "Shortest Paths", Tags: []string{"graphs"}},
		{ContestId: 3, Index: "C", Name: "Watermelon", Tags: []string{"math", "brute force"}},
	}

	names := func(problems []Problem) []string {
		out := []string{}
		for _, p := range problems {
			out = append(out, p.Name)
		}
		return out
	}

	require.Contains(t, names(FilterProblems(catalog, "dp", SearchLimit)), "Binary Search Tree")
	require.Contains(t, names(FilterProblems(catalog, "DP", SearchLimit)), "Binary Search Tree")
	require.Contains(t, names(FilterProblems(catalog, "binary", SearchLimit)), "Binary Search Tree")
	require.Contains(t, names(FilterProblems(catalog, "BINARY", SearchLimit)), "Binary Search Tree")
	require.NotContains(t, names(FilterProblems(catalog, "graph", SearchLimit)), "Binary Search Tree")
	require.Equal(t, []string{"Shortest Paths"}, names(FilterProblems(catalog, "graph", SearchLimit)))
	require.Equal(t, []string{"Watermelon"}, names(FilterProblems(catalog, "brute", SearchLimit)))

	large := []Problem{}
	for i := 0; i < 120; i++ {
		large = append(large, Problem{ContestId: i + 1, Index: "A", Name: fmt.Sprintf("Tree %d", i)})
	}
	results := FilterProblems(large, "tree", SearchLimit)
	require.Len(t, results, SearchLimit)
	require.Equal(t, "Tree 0", results[0].Name)
}

func TestMergeEnrichment(t *testing.T) {
	problem := Problem{ContestId: 4, Index: "B", Name: "Before an Exam", Tags: []string{}}
	found := MergeEnrichment(&problem, []Problem{
		{ContestId: 4, Index: "A", Rating: intPtr(800), Tags: []string{"math"}},
		{ContestId: 4, Index: "B", Rating: intPtr(1200), Tags: []string{"constructive algorithms", "greedy"}},
	})
	require.True(t, found)
	require.Equal(t, intPtr(1200), problem.Rating)
	require.Equal(t, []string{"constructive algorithms", "greedy"}, problem.Tags)

	missing := Problem{Index: "Z", Tags: []string{}}
	require.False(t, MergeEnrichment(&missing, []Problem{{Index: "A", Rating: intPtr(800)}}))
	require.Nil(t, missing.Rating)
	require.Empty(t, missing.Tags)
}
