package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	report_api_query      = "api.query"
	report_api_validation = "api.validation"
)

const apiStatusOk = "OK"

type apiEnvelope[T any] struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  T      `json:"result"`
}

type apiProblem struct {
	ContestId      int      `json:"contestId"`
	ProblemsetName string   `json:"problemsetName"`
	Index          string   `json:"index"`
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Points         *float64 `json:"points"`
	Rating         *int     `json:"rating"`
	Tags           []string `json:"tags"`
}

type apiProblemset struct {
	Problems []apiProblem `json:"problems"`
}

type apiContest struct {
	Id    int    `json:"id"`
	Name  string `json:"name"`
	Phase string `json:"phase"`
}

type apiStandings struct {
	Contest  apiContest   `json:"contest"`
	Problems []apiProblem `json:"problems"`
}

type apiSubmission struct {
	Id                  int64      `json:"id"`
	ContestId           int        `json:"contestId"`
	CreationTimeSeconds int64      `json:"creationTimeSeconds"`
	Problem             apiProblem `json:"problem"`
	ProgrammingLanguage string     `json:"programmingLanguage"`
	// absent while the submission is waiting to be judged
	Verdict             *string `json:"verdict"`
	PassedTestCount     int     `json:"passedTestCount"`
	TimeConsumedMillis  int64   `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64   `json:"memoryConsumedBytes"`
}

// apiQuery calls a method of the json api and decodes its result. A
// transport failure, a non OK status or an undecodable payload all result
// in an error wrapping ErrApiUnavailable.
func apiQuery[T any](ctx context.Context, c *Client, endpoint string, params map[string]string) (T, error) {
	var zero T
	c.tel.ReportDebug(report_api_query, endpoint, params)

	res, err := c.Get(ctx, endpoint, params)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrApiUnavailable, err)
	}

	var envelope apiEnvelope[T]
	err = json.Unmarshal(res.Body(), &envelope)
	if err != nil {
		return zero, fmt.Errorf(
			"%w: %s returned %s: unmarshal json: %w",
			ErrApiUnavailable, endpoint, res.Status(), err,
		)
	}
	if envelope.Status != apiStatusOk {
		comment := envelope.Comment
		if comment == "" {
			comment = res.Status()
		}
		return zero, fmt.Errorf("%w: %s: %s", ErrApiUnavailable, endpoint, comment)
	}
	return envelope.Result, nil
}

func (p apiProblem) validate() error {
	if p.ContestId <= 0 {
		return fmt.Errorf("problem %q has invalid contest id %d", p.Name, p.ContestId)
	}
	if p.Index == "" {
		return fmt.Errorf("problem %q of contest %d has no index", p.Name, p.ContestId)
	}
	if p.Name == "" {
		return fmt.Errorf("problem %d%s has no name", p.ContestId, p.Index)
	}
	return nil
}

func (p apiProblem) toProblem() Problem {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	kind := p.Type
	if kind == "" {
		kind = ProblemTypeProgramming
	}
	return Problem{
		ContestId: p.ContestId,
		Index:     p.Index,
		Name:      p.Name,
		Type:      kind,
		Points:    p.Points,
		Rating:    p.Rating,
		Tags:      tags,
	}
}

// toProblems validates every record, invalid records are reported and
// dropped.
func (c *Client) toProblems(records []apiProblem) []Problem {
	out := make([]Problem, 0, len(records))
	for _, r := range records {
		err := r.validate()
		if err != nil {
			c.tel.ReportWarning(report_api_validation, err)
			continue
		}
		out = append(out, r.toProblem())
	}
	return out
}

var verdictNames = map[string]string{
	"OK":                        "Accepted",
	"FAILED":                    "Failed",
	"PARTIAL":                   "Partial",
	"COMPILATION_ERROR":         "Compilation error",
	"RUNTIME_ERROR":             "Runtime error",
	"WRONG_ANSWER":              "Wrong answer",
	"PRESENTATION_ERROR":        "Presentation error",
	"TIME_LIMIT_EXCEEDED":       "Time limit exceeded",
	"MEMORY_LIMIT_EXCEEDED":     "Memory limit exceeded",
	"IDLENESS_LIMIT_EXCEEDED":   "Idleness limit exceeded",
	"SECURITY_VIOLATED":         "Security violated",
	"CRASHED":                   "Crashed",
	"INPUT_PREPARATION_CRASHED": "Input preparation crashed",
	"CHALLENGED":                "Hacked",
	"SKIPPED":                   "Skipped",
	"TESTING":                   "Running",
	"REJECTED":                  "Rejected",
}

// humanVerdict turns an api verdict into the wording used on the website.
func humanVerdict(verdict *string, passedTests int) string {
	if verdict == nil || *verdict == "" {
		return "Pending"
	}
	name, ok := verdictNames[*verdict]
	if !ok {
		name = strings.ToLower(strings.ReplaceAll(*verdict, "_", " "))
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	switch *verdict {
	case "WRONG_ANSWER", "TIME_LIMIT_EXCEEDED", "MEMORY_LIMIT_EXCEEDED",
		"RUNTIME_ERROR", "IDLENESS_LIMIT_EXCEEDED":
		name = fmt.Sprintf("%s on test %d", name, passedTests+1)
	}
	return name
}

func (s apiSubmission) toSubmission() Submission {
	name := s.Problem.Name
	if s.Problem.Index != "" {
		name = fmt.Sprintf("%s - %s", s.Problem.Index, s.Problem.Name)
	}
	return Submission{
		Id:             strconv.FormatInt(s.Id, 10),
		ProblemName:    name,
		Verdict:        humanVerdict(s.Verdict, s.PassedTestCount),
		TimeConsumed:   fmt.Sprintf("%d ms", s.TimeConsumedMillis),
		MemoryConsumed: fmt.Sprintf("%d KB", s.MemoryConsumedBytes/1024),
	}
}
