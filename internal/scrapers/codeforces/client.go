package codeforces

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"lazycf/internal/components/assert"
	"lazycf/internal/components/telemetry"
	"lazycf/internal/cookiestore"
	"lazycf/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl   = "https://codeforces.com"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

const (
	pathEnter       = "/enter"
	pathProfile     = "/profile/%s"
	pathProblem     = "/contest/%d/problem/%s"
	pathContest     = "/contest/%d"
	pathSubmit      = "/contest/%d/submit"
	pathSubmissions = "/submissions"

	pathApiProblemset = "/api/problemset.problems"
	pathApiStandings  = "/api/contest.standings"
	pathApiUserStatus = "/api/user.status"
)

type ClientOptions struct {
	// BaseUrl defaults to DefaultBaseUrl.
	BaseUrl string
	Jar     *cookiestore.Store
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// RateLimit is the maximum amount of requests per second, 0 disables
	// rate limiting.
	RateLimit float64
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string
	// Dump receives every request and response with credentials redacted,
	// it is optional.
	Dump restyutil.InstrumentOutput
}

// Client issues every request to the judge. Cookies are injected from and
// captured into the jar for the exact url of each hop, redirects included.
//
// Non 2xx statuses are returned as responses for the caller to inspect, only
// transport failures are errors.
type Client struct {
	BaseUrl *url.URL
	Jar     *cookiestore.Store

	http       *resty.Client
	noRedirect *resty.Client
	tel        telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(opts.Jar, "jar")
	assert.NotNil(tel, "telemetry")

	tel = telemetry.NewScopedAPI("codeforces", tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		// a burst of at least 1 means requests wait instead of being dropped
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	follow := newHttpClient(baseUrl, opts, limiter, tel)
	follow.SetRedirectPolicy(
		resty.FlexibleRedirectPolicy(10),
		resty.DomainCheckRedirectPolicy(baseUrl.Hostname()),
	)
	restyutil.DumpMessages(follow, "follow", opts.Dump)

	noRedirect := newHttpClient(baseUrl, opts, limiter, tel)
	noRedirect.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	restyutil.DumpMessages(noRedirect, "noredirect", opts.Dump)

	return &Client{
		BaseUrl:    baseUrl,
		Jar:        opts.Jar,
		http:       follow,
		noRedirect: noRedirect,
		tel:        tel,
	}, nil
}

func newHttpClient(baseUrl *url.URL, opts ClientOptions, limiter *rate.Limiter, tel telemetry.API) *resty.Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseUrl.String())
	httpClient.SetCookieJar(opts.Jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)

	if limiter != nil {
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, tel)
	return httpClient
}

// Url resolves a path against the base url.
func (c *Client) Url(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.BaseUrl.String() + path
	}
	return c.BaseUrl.ResolveReference(ref).String()
}

func transportError(method, endpoint string, err error) error {
	kind := ErrNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return fmt.Errorf("%s %s: %w: %w", method, endpoint, kind, err)
}

type request struct {
	query    map[string]string
	form     map[string]string
	headers  map[string]string
	redirect bool
}

func (c *Client) do(ctx context.Context, method, endpoint string, r request) (*resty.Response, error) {
	httpClient := c.http
	if !r.redirect {
		httpClient = c.noRedirect
	}
	req := httpClient.R().SetContext(ctx)
	if r.query != nil {
		req.SetQueryParams(r.query)
	}
	if r.form != nil {
		req.SetFormData(r.form)
	}
	if r.headers != nil {
		req.SetHeaders(r.headers)
	}

	res, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, transportError(method, endpoint, err)
	}
	return res, nil
}

// Get fetches endpoint, following redirects on the same domain.
func (c *Client) Get(ctx context.Context, endpoint string, query map[string]string) (*resty.Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, request{query: query, redirect: true})
}

// PostForm posts a url encoded form, when follow is false a redirect is
// returned as the response itself.
func (c *Client) PostForm(ctx context.Context, endpoint string, form, headers map[string]string, follow bool) (*resty.Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, request{form: form, headers: headers, redirect: follow})
}

// GetDocument fetches and parses an html page.
func (c *Client) GetDocument(ctx context.Context, endpoint string) (*goquery.Document, *resty.Response, error) {
	res, err := c.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	doc, err := parseDocument(res.Body())
	if err != nil {
		return nil, res, fmt.Errorf("parse %s: %w", endpoint, err)
	}
	return doc, res, nil
}

func isSuccess(res *resty.Response) bool {
	return res.StatusCode() >= 200 && res.StatusCode() < 300
}

func isSuccessOrRedirect(res *resty.Response) bool {
	return res.StatusCode() >= 200 && res.StatusCode() < 400
}
