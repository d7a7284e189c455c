package codeforces

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"lazycf/internal/components/assert"
	"lazycf/internal/components/chrono"
	"lazycf/internal/components/telemetry"
	"lazycf/lib/textutil"

	"github.com/go-resty/resty/v2"
)

const (
	report_submitter_submit   = "submitter.submit"
	report_submitter_status   = "submitter.status"
	report_submitter_recent   = "submitter.recent-submissions"
	report_submitter_language = "submitter.language"
	report_submitter_verdict  = "submitter.verdict-check"
)

// RecentSubmissionsLimit is the maximum amount of rows the listing view shows.
const RecentSubmissionsLimit = 20

// UserStatusCount is how many of the newest submissions of the user the
// status lookup searches through the api.
const UserStatusCount = 50

// Submitter submits solutions and looks up their verdicts.
type Submitter struct {
	client *Client
	auth   *Authenticator
	timer  chrono.TimerAPI
	tel    telemetry.API
}

func NewSubmitter(client *Client, auth *Authenticator, timer chrono.TimerAPI, tel telemetry.API) *Submitter {
	assert.NotNil(client, "client")
	assert.NotNil(auth, "authenticator")
	assert.NotNil(timer, "timer")
	assert.NotNil(tel, "telemetry")

	return &Submitter{
		client: client,
		auth:   auth,
		timer:  timer,
		tel:    telemetry.NewScopedAPI("codeforces", tel),
	}
}

// landedOnLogin reports whether a request was redirected to the login page,
// which is what the site does for pages that need a session.
func landedOnLogin(res *resty.Response) bool {
	if res.RawResponse == nil || res.RawResponse.Request == nil {
		return false
	}
	return res.RawResponse.Request.URL.Path == pathEnter
}

// Submit posts a solution and returns the id the site assigned to it. If the
// form was accepted but no id could be found in the response,
// UnknownSubmissionId is returned since the submission most likely went
// through anyway.
func (s *Submitter) Submit(ctx context.Context, contestId int, index, code, language string) (string, error) {
	submitError := func(err error) error {
		return fmt.Errorf("submit %d%s: %w", contestId, index, err)
	}

	if !s.auth.Session().Authenticated() {
		return "", submitError(ErrNotLoggedIn)
	}

	endpoint := fmt.Sprintf(pathSubmit, contestId)
	doc, res, err := s.client.GetDocument(ctx, endpoint)
	if err != nil {
		s.tel.ReportBroken(report_submitter_submit, fmt.Errorf("submit page: %w", err))
		return "", submitError(err)
	}
	if landedOnLogin(res) {
		return "", submitError(fmt.Errorf("%w: redirected to the login page", ErrNotLoggedIn))
	}
	if res.StatusCode() != http.StatusOK {
		return "", submitError(fmt.Errorf("%w: %s returned %s", ErrPageUnavailable, endpoint, res.Status()))
	}

	csrf := ExtractCsrfToken(doc)
	if csrf == "" {
		s.tel.ReportBroken(report_submitter_submit, ErrSubmitMissingToken)
		return "", submitError(ErrSubmitMissingToken)
	}

	programTypeId, known := LanguageId(language)
	if !known {
		closest, _ := textutil.Closest(language, Languages())
		s.tel.ReportWarning(
			report_submitter_language,
			fmt.Sprintf("unknown language %q, submitting as %s (did you mean %q?)", language, LanguageCpp17, closest),
		)
	}

	res, err = s.client.PostForm(
		ctx,
		endpoint,
		map[string]string{
			"csrf_token":            csrf,
			"action":                "submitSolutionFormSubmitted",
			"submittedProblemIndex": index,
			"programTypeId":         programTypeId,
			"source":                code,
			"tabSize":               "4",
			"sourceFile":            "",
		},
		map[string]string{"Referer": s.client.Url(endpoint)},
		true,
	)
	if err != nil {
		s.tel.ReportBroken(report_submitter_submit, fmt.Errorf("submit request: %w", err))
		return "", submitError(err)
	}
	if landedOnLogin(res) {
		return "", submitError(fmt.Errorf("%w: session expired before the solution was posted", ErrNotLoggedIn))
	}
	if !isSuccessOrRedirect(res) {
		return "", submitError(fmt.Errorf("%w: %s", ErrSubmissionRejected, res.Status()))
	}

	body := res.String()
	resDoc, err := parseDocument(res.Body())
	if err == nil {
		formError := ParseFormError(resDoc)
		if formError != "" {
			return "", submitError(fmt.Errorf("%w: %s", ErrSubmissionRejected, formError))
		}
	}

	id := ExtractSubmissionId(body)
	if id == "" {
		s.tel.ReportWarning(report_submitter_submit, "no submission id in response")
		return UnknownSubmissionId, nil
	}
	return id, nil
}

func (s *Submitter) fetchSubmissionsPage(ctx context.Context) ([]Submission, error) {
	doc, res, err := s.client.GetDocument(ctx, pathSubmissions)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrPageUnavailable, pathSubmissions, res.Status())
	}
	return ParseSubmissions(doc), nil
}

// RecentSubmissions lists the newest submissions of the logged in user.
func (s *Submitter) RecentSubmissions(ctx context.Context) ([]Submission, error) {
	if !s.auth.Session().Authenticated() {
		return nil, fmt.Errorf("recent submissions: %w", ErrNotLoggedIn)
	}
	submissions, err := s.fetchSubmissionsPage(ctx)
	if err != nil {
		s.tel.ReportBroken(report_submitter_recent, err)
		return nil, fmt.Errorf("recent submissions: %w", err)
	}
	if len(submissions) > RecentSubmissionsLimit {
		submissions = submissions[:RecentSubmissionsLimit]
	}
	return submissions, nil
}

func (s *Submitter) handle(ctx context.Context) string {
	handle := s.auth.Session().Handle()
	if handle != "" {
		return handle
	}
	stored, err := s.auth.StoredHandle(ctx)
	if err != nil {
		s.tel.ReportWarning(report_submitter_status, err)
		return ""
	}
	return stored
}

// Status looks a submission up in the submissions page of the user first,
// which shows very recent submissions sooner, and then through the api.
// A submission found in neither has the verdict UnknownVerdict, this is not
// an error since the site may simply not have processed it yet.
func (s *Submitter) Status(ctx context.Context, id string) (Submission, error) {
	if !s.auth.Session().Authenticated() {
		return Submission{}, fmt.Errorf("submission status %s: %w", id, ErrNotLoggedIn)
	}

	submissions, err := s.fetchSubmissionsPage(ctx)
	if err != nil {
		s.tel.ReportWarning(report_submitter_status, err)
	}
	for _, submission := range submissions {
		if submission.Id == id {
			return submission, nil
		}
	}

	if ctx.Err() != nil {
		return Submission{}, fmt.Errorf("submission status %s: %w", id, ctx.Err())
	}

	handle := s.handle(ctx)
	if handle != "" {
		entries, err := apiQuery[[]apiSubmission](ctx, s.client, pathApiUserStatus, map[string]string{
			"handle": handle,
			"from":   "1",
			"count":  strconv.Itoa(UserStatusCount),
		})
		if err != nil {
			s.tel.ReportWarning(report_submitter_status, err)
		}
		for _, entry := range entries {
			if strconv.FormatInt(entry.Id, 10) == id {
				return entry.toSubmission(), nil
			}
		}
	}

	return Submission{
		Id:             id,
		Verdict:        UnknownVerdict,
		TimeConsumed:   "N/A",
		MemoryConsumed: "N/A",
	}, nil
}

// SubmissionUrl is the page of a submission on the site.
func (s *Submitter) SubmissionUrl(contestId int, id string) string {
	return s.client.Url(fmt.Sprintf("/contest/%d/submission/%s", contestId, url.PathEscape(id)))
}
