// Package cookiestore keeps the session cookies of the judge across requests
// and across process restarts.
//
// Cookies are always scoped by the full URL they were set for and looked up
// with, following the usual domain and path matching rules, since the site
// sets path scoped session cookies.
package cookiestore

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"lazycf/internal/components/assert"
	"lazycf/internal/components/chrono"
	"lazycf/internal/components/telemetry"

	"golang.org/x/net/publicsuffix"
)

const (
	report_store_set    = "store.set"
	report_store_import = "store.import"
)

var ErrInvalidCookie = errors.New("invalid cookie")

type cookieKey struct {
	domain   string
	hostOnly bool
	path     string
	name     string
}

type trackedCookie struct {
	cookie *http.Cookie
	origin *url.URL
}

// Store is an http.CookieJar that also remembers every cookie it was given so
// that cookies can be exported, and expired per domain.
type Store struct {
	mu      sync.Mutex
	jar     *cookiejar.Jar
	tracked map[cookieKey]trackedCookie
	time    chrono.TimeAPI
	tel     telemetry.API
}

func New(time chrono.TimeAPI, tel telemetry.API) (*Store, error) {
	assert.NotNil(time, "time")
	assert.NotNil(tel, "telemetry")

	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, err
	}
	return &Store{
		jar:     jar,
		tracked: make(map[cookieKey]trackedCookie),
		time:    time,
		tel:     telemetry.NewScopedAPI("cookiestore", tel),
	}, nil
}

// parseTarget turns a full url or a bare domain into a url, a bare domain
// means the root of its https origin.
func parseTarget(urlOrDomain string) (*url.URL, error) {
	if !strings.Contains(urlOrDomain, "://") {
		urlOrDomain = fmt.Sprintf("https://%s/", strings.TrimSuffix(urlOrDomain, "/"))
	}
	u, err := url.Parse(urlOrDomain)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("missing host in %q", urlOrDomain)
	}
	return u, nil
}

func defaultPath(u *url.URL) string {
	p := u.Path
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func normalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimPrefix(domain, "."))
}

func domainMatches(host, domain string) bool {
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func (s *Store) expired(c *http.Cookie) bool {
	if c.MaxAge < 0 {
		return true
	}
	return !c.Expires.IsZero() && !c.Expires.After(s.time.Now())
}

// SetCookies implements http.CookieJar.
func (s *Store) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := make([]*http.Cookie, 0, len(cookies))
	for _, original := range cookies {
		c := *original
		if c.MaxAge > 0 {
			// stored as an absolute expiry so that a re-imported cookie does
			// not receive a fresh lifetime
			c.Expires = s.time.Now().Add(time.Duration(c.MaxAge) * time.Second)
			c.MaxAge = 0
		}
		if c.Path == "" || c.Path[0] != '/' {
			c.Path = defaultPath(u)
		}

		domain := u.Hostname()
		hostOnly := c.Domain == ""
		if !hostOnly {
			domain = normalizeDomain(c.Domain)
			if !domainMatches(u.Hostname(), domain) {
				s.tel.ReportWarning(report_store_set, fmt.Sprintf("cookie %s rejected for %s", c.Name, u.Hostname()))
				continue
			}
		}
		key := cookieKey{
			domain:   strings.ToLower(domain),
			hostOnly: hostOnly,
			path:     c.Path,
			name:     c.Name,
		}

		if s.expired(&c) {
			delete(s.tracked, key)
		} else {
			origin := *u
			s.tracked[key] = trackedCookie{cookie: &c, origin: &origin}
		}
		normalized = append(normalized, &c)
	}
	s.jar.SetCookies(u, normalized)
}

// Cookies implements http.CookieJar.
func (s *Store) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// Get returns the value of the Cookie header that would be sent to
// urlOrDomain, or an empty string if no cookie matches.
func (s *Store) Get(urlOrDomain string) string {
	u, err := parseTarget(urlOrDomain)
	if err != nil {
		return ""
	}
	cookies := s.jar.Cookies(u)
	pairs := make([]string, len(cookies))
	for i, c := range cookies {
		pairs[i] = fmt.Sprintf("%s=%s", c.Name, c.Value)
	}
	return strings.Join(pairs, "; ")
}

// Set parses a single Set-Cookie header value and stores it for target.
func (s *Store) Set(rawSetCookie, target string) error {
	u, err := parseTarget(target)
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Add("Set-Cookie", strings.TrimSpace(rawSetCookie))
	cookies := (&http.Response{Header: header}).Cookies()
	if len(cookies) == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidCookie, rawSetCookie)
	}
	s.SetCookies(u, cookies)
	return nil
}

// Clear expires every stored cookie belonging to domain or its subdomains by
// overwriting it with an already expired copy.
func (s *Store) Clear(domain string) {
	if strings.Contains(domain, "://") {
		u, err := url.Parse(domain)
		if err != nil {
			return
		}
		domain = u.Hostname()
	}
	domain = normalizeDomain(strings.TrimSuffix(domain, "/"))

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.tracked {
		if !domainMatches(key.domain, domain) {
			continue
		}
		expired := &http.Cookie{
			Name:    key.name,
			Value:   "",
			Path:    key.path,
			Domain:  entry.cookie.Domain,
			Expires: time.Unix(0, 0),
			MaxAge:  -1,
		}
		s.jar.SetCookies(entry.origin, []*http.Cookie{expired})
		delete(s.tracked, key)
	}
}

// Export serializes every unexpired cookie that belongs to the host of
// target as Set-Cookie strings.
func (s *Store) Export(target string) []string {
	u, err := parseTarget(target)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]cookieKey, 0, len(s.tracked))
	for key := range s.tracked {
		if domainMatches(u.Hostname(), key.domain) || domainMatches(key.domain, u.Hostname()) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].domain != keys[j].domain {
			return keys[i].domain < keys[j].domain
		}
		if keys[i].path != keys[j].path {
			return keys[i].path < keys[j].path
		}
		return keys[i].name < keys[j].name
	})

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		c := s.tracked[key].cookie
		if s.expired(c) {
			continue
		}
		out = append(out, c.String())
	}
	return out
}

// Import replays previously exported cookies for target. Malformed entries
// are skipped and returned as a joined error after the rest were imported.
func (s *Store) Import(raw []string, target string) error {
	var errs []error
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		err := s.Set(r, target)
		if err != nil {
			s.tel.ReportWarning(report_store_import, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the amount of tracked cookies.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tracked)
}
