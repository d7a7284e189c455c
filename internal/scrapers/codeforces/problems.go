package codeforces

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	report_problems_fetch   = "problems.fetch"
	report_problems_enrich  = "problems.enrich"
	report_problems_search  = "problems.search"
	report_problems_contest = "problems.contest"
)

// SearchLimit is the maximum amount of results SearchProblems returns.
const SearchLimit = 50

func (c *Client) contestStandings(ctx context.Context, contestId int) ([]Problem, error) {
	standings, err := apiQuery[apiStandings](ctx, c, pathApiStandings, map[string]string{
		"contestId": strconv.Itoa(contestId),
		"from":      "1",
		"count":     "1",
	})
	if err != nil {
		return nil, err
	}
	return c.toProblems(standings.Problems), nil
}

// FetchProblem scrapes a problem statement and enriches it with the tags and
// rating from the api. The enrichment is best effort, when it fails the
// problem is returned without tags or rating.
func (c *Client) FetchProblem(ctx context.Context, contestId int, index string) (Problem, error) {
	fetchError := func(err error) error {
		return fmt.Errorf("fetch problem %d%s: %w", contestId, index, err)
	}

	endpoint := fmt.Sprintf(pathProblem, contestId, url.PathEscape(index))
	doc, res, err := c.GetDocument(ctx, endpoint)
	if err != nil {
		c.tel.ReportBroken(report_problems_fetch, err)
		return Problem{}, fetchError(err)
	}
	if res.StatusCode() != http.StatusOK {
		return Problem{}, fetchError(fmt.Errorf("%w: %s returned %s", ErrPageUnavailable, endpoint, res.Status()))
	}

	problem, err := ParseProblem(doc, contestId, index)
	if err != nil {
		c.tel.ReportBroken(report_problems_fetch, err)
		return Problem{}, fetchError(err)
	}

	enrichment, err := c.contestStandings(ctx, contestId)
	if err != nil {
		c.tel.ReportWarning(report_problems_enrich, err)
		return problem, nil
	}
	if !MergeEnrichment(&problem, enrichment) {
		c.tel.ReportDebug("no enrichment for problem", contestId, index)
	}
	return problem, nil
}

// SearchProblems loads the whole problem catalog once and returns up to
// SearchLimit problems whose name or a tag contains query.
func (c *Client) SearchProblems(ctx context.Context, query string) ([]Problem, error) {
	problemset, err := apiQuery[apiProblemset](ctx, c, pathApiProblemset, nil)
	if err != nil {
		c.tel.ReportBroken(report_problems_search, err)
		return nil, fmt.Errorf("search problems: %w", err)
	}
	catalog := c.toProblems(problemset.Problems)
	results := FilterProblems(catalog, query, SearchLimit)
	c.tel.ReportCount(report_problems_search, int64(len(results)))
	return results, nil
}

// FetchContestProblems lists the problems of a contest from its page. When
// the page lists no problems, because the markup changed or the contest is
// not visible, the list comes from the contest standings api instead.
func (c *Client) FetchContestProblems(ctx context.Context, contestId int) ([]Problem, error) {
	fetchError := func(err error) error {
		return fmt.Errorf("fetch contest %d: %w", contestId, err)
	}

	endpoint := fmt.Sprintf(pathContest, contestId)
	var pageErr error
	problems := []Problem{}

	doc, res, err := c.GetDocument(ctx, endpoint)
	switch {
	case err != nil:
		pageErr = err
	case res.StatusCode() != http.StatusOK:
		pageErr = fmt.Errorf("%w: %s returned %s", ErrPageUnavailable, endpoint, res.Status())
	default:
		problems = ParseContestProblems(doc, contestId)
	}

	if len(problems) > 0 {
		enrichment, err := c.contestStandings(ctx, contestId)
		if err != nil {
			c.tel.ReportWarning(report_problems_enrich, err)
			return problems, nil
		}
		for i := range problems {
			MergeEnrichment(&problems[i], enrichment)
		}
		return problems, nil
	}

	if pageErr != nil {
		c.tel.ReportWarning(report_problems_contest, pageErr)
	}
	fallback, err := c.contestStandings(ctx, contestId)
	if err != nil {
		if pageErr != nil {
			c.tel.ReportBroken(report_problems_contest, err)
			return nil, fetchError(errors.Join(pageErr, err))
		}
		c.tel.ReportWarning(report_problems_contest, err)
		return []Problem{}, nil
	}
	return fallback, nil
}
