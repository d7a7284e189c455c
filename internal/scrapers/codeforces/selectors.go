package codeforces

import "regexp"

// Every selector the scrapers depend on. A markup change on the site should
// only need an edit here.
const (
	selCsrfToken = "input[name=csrf_token]"
	// rendered next to a form field after a rejected post
	selFormError = "span.error"

	// present only when the viewer is logged in, the language chooser of an
	// anonymous viewer links to the login page instead of a logout
	selAuthMarker = "a[href='/settings/general'], .lang-chooser a[href$='/logout']"

	selProblemStatement = ".problem-statement"
	selProblemTitle     = ".header .title"
	selTimeLimit        = ".header .time-limit"
	selMemoryLimit      = ".header .memory-limit"
	selStatementBody    = ".header + div"
	selInputSpec        = ".input-specification"
	selOutputSpec       = ".output-specification"
	selNote             = ".note"
	selSectionTitle     = ".section-title, .property-title"
	selExampleBlocks    = ".sample-test .input, .sample-test .output"
	selExamplePre       = "pre"

	selSubmissionRows = "table.status-frame-datatable tr"
	selContestRows    = ".problems tr"
	selCell           = "td"
	selAnchor         = "a"
)

// submissions table columns
const (
	colSubmissionId      = 0
	colSubmissionProblem = 3
	colSubmissionVerdict = 5
	colSubmissionTime    = 6
	colSubmissionMemory  = 7

	minSubmissionCells = 6
)

// contest problems table columns
const (
	colContestIndex = 0
	colContestName  = 1

	minContestCells = 2
)

var (
	// "A. Watermelon", "B1. Easy Version"
	titlePrefixRegex = regexp.MustCompile(`^[A-Z][0-9A-Z]?\.\s*`)

	submissionIdRegexes = []*regexp.Regexp{
		regexp.MustCompile(`submission/(\d+)`),
		regexp.MustCompile(`data-submission-id="(\d+)"`),
	}
)
