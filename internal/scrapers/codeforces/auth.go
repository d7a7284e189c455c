package codeforces

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"lazycf/internal/components/assert"
	"lazycf/internal/components/telemetry"
	"lazycf/internal/secrets"
)

const (
	report_auth_restore     = "authenticator.restore-session"
	report_auth_credentials = "authenticator.login-with-credentials"
	report_auth_cookies     = "authenticator.login-with-cookie-string"
	report_auth_verify      = "authenticator.verify"
	report_auth_logout      = "authenticator.logout"
	report_auth_persist     = "authenticator.persist"
)

// Authenticator establishes, checks and tears down the session. Its
// operations that change the session are serialized, so a logout can never
// interleave with a login persisting its credentials.
type Authenticator struct {
	mu      sync.Mutex
	client  *Client
	session *Session
	secrets SecretStore
	state   StateStore
	tel     telemetry.API
}

func NewAuthenticator(
	client *Client,
	session *Session,
	secretStore SecretStore,
	stateStore StateStore,
	tel telemetry.API,
) *Authenticator {
	assert.NotNil(client, "client")
	assert.NotNil(session, "session")
	assert.NotNil(secretStore, "secret store")
	assert.NotNil(stateStore, "state store")
	assert.NotNil(tel, "telemetry")

	return &Authenticator{
		client:  client,
		session: session,
		secrets: secretStore,
		state:   stateStore,
		tel:     telemetry.NewScopedAPI("codeforces", tel),
	}
}

func (a *Authenticator) Session() *Session {
	return a.session
}

// StoredHandle returns the handle kept in the secret store, or an empty
// string if there is none.
func (a *Authenticator) StoredHandle(ctx context.Context) (string, error) {
	handle, err := a.secrets.Get(ctx, SecretHandle)
	if errors.Is(err, secrets.ErrNotFound) {
		return "", nil
	}
	return handle, err
}

func (a *Authenticator) origin() string {
	return a.client.BaseUrl.String()
}

func (a *Authenticator) persistCookies(ctx context.Context) {
	err := a.state.Update(ctx, StateCookies, a.client.Jar.Export(a.origin()))
	if err != nil {
		a.tel.ReportWarning(report_auth_persist, fmt.Errorf("export cookies: %w", err))
	}
}

func (a *Authenticator) persistSecret(ctx context.Context, key, value string) {
	err := a.secrets.Put(ctx, key, value)
	if err != nil {
		// the value itself is never reported
		a.tel.ReportWarning(report_auth_persist, fmt.Errorf("store %s: %w", key, err))
	}
}

// RestoreSession replays the cookies persisted by the last successful login
// and verifies that they still belong to a logged in session. An empty
// handle means the stored handle.
func (a *Authenticator) RestoreSession(ctx context.Context, handle string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	restoreError := func(err error) error {
		return fmt.Errorf("restore session: %w", err)
	}

	if handle == "" {
		stored, err := a.StoredHandle(ctx)
		if err != nil {
			return restoreError(err)
		}
		if stored == "" {
			return restoreError(fmt.Errorf("%w: no stored handle", ErrNotLoggedIn))
		}
		handle = stored
	}

	raw, found, err := a.state.Get(ctx, StateCookies)
	if err != nil {
		return restoreError(err)
	}
	if !found || len(raw) == 0 {
		return restoreError(fmt.Errorf("%w: no stored cookies", ErrNotLoggedIn))
	}

	a.session.set(SessionVerifying, handle)
	err = a.client.Jar.Import(raw, a.origin())
	if err != nil {
		a.tel.ReportWarning(report_auth_restore, err)
	}

	ok, err := a.verify(ctx, handle)
	if err != nil {
		a.session.set(SessionAnonymous, "")
		return restoreError(fmt.Errorf("%w: %w", ErrVerificationFailed, err))
	}
	if !ok {
		a.session.set(SessionAnonymous, "")
		return restoreError(fmt.Errorf("%w: stored cookies have expired", ErrVerificationFailed))
	}

	a.session.set(SessionAuthenticated, handle)
	a.tel.ReportDebug("session restored", handle)
	return nil
}

// LoginWithCredentials logs in through the login form.
func (a *Authenticator) LoginWithCredentials(ctx context.Context, handle, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	loginError := func(err error) error {
		return fmt.Errorf("login: %w", err)
	}

	if handle == "" {
		return loginError(fmt.Errorf("%w: handle is required", ErrVerificationFailed))
	}
	if password == "" {
		return loginError(ErrPasswordRequired)
	}

	a.session.set(SessionVerifying, handle)
	fail := func(err error) error {
		a.session.set(SessionAnonymous, "")
		return loginError(err)
	}

	doc, _, err := a.client.GetDocument(ctx, pathEnter)
	if err != nil {
		a.tel.ReportBroken(report_auth_credentials, fmt.Errorf("login page: %w", err))
		return fail(err)
	}
	csrf := ExtractCsrfToken(doc)
	if csrf == "" {
		a.tel.ReportBroken(report_auth_credentials, ErrAuthMissingToken)
		return fail(ErrAuthMissingToken)
	}

	res, err := a.client.PostForm(
		ctx,
		pathEnter,
		map[string]string{
			"csrf_token":    csrf,
			"action":        "enter",
			"ftaa":          "",
			"bfaa":          "",
			"handleOrEmail": handle,
			"password":      password,
			"remember":      "on",
		},
		map[string]string{"Referer": a.client.Url(pathEnter)},
		false,
	)
	if err != nil {
		a.tel.ReportBroken(report_auth_credentials, fmt.Errorf("login request: %w", err))
		return fail(err)
	}

	// a rejected login renders the form again with an error next to a field
	formError := ""
	if res.StatusCode() == http.StatusOK {
		resDoc, err := parseDocument(res.Body())
		if err == nil {
			formError = ParseFormError(resDoc)
		}
	}

	ok, err := a.verify(ctx, handle)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrVerificationFailed, err))
	}
	if !ok {
		if formError != "" {
			return fail(fmt.Errorf("%w: %s", ErrVerificationFailed, formError))
		}
		return fail(ErrVerificationFailed)
	}

	a.persistSecret(ctx, SecretHandle, handle)
	a.persistSecret(ctx, SecretPassword, password)
	a.persistCookies(ctx)
	a.session.set(SessionAuthenticated, handle)
	return nil
}

// parseCookieString splits "a=1; b=2" into its pairs.
func parseCookieString(raw string) ([]string, error) {
	pairs := []string{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, _, found := strings.Cut(part, "=")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q is not a name=value pair", ErrInvalidCookies, part)
		}
		pairs = append(pairs, part)
	}
	return pairs, nil
}

// LoginWithCookieString logs in with cookies copied from a browser, for
// accounts that log in through a third party and have no password. An empty
// string verifies whatever the jar already holds.
func (a *Authenticator) LoginWithCookieString(ctx context.Context, handle, raw string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	loginError := func(err error) error {
		return fmt.Errorf("login with cookies: %w", err)
	}

	if handle == "" {
		return loginError(fmt.Errorf("%w: handle is required", ErrInvalidCookies))
	}
	pairs, err := parseCookieString(raw)
	if err != nil {
		return loginError(err)
	}

	a.session.set(SessionVerifying, handle)
	for _, pair := range pairs {
		err := a.client.Jar.Set(pair, a.origin())
		if err != nil {
			a.session.set(SessionAnonymous, "")
			return loginError(fmt.Errorf("%w: %w", ErrInvalidCookies, err))
		}
	}

	ok, err := a.verify(ctx, handle)
	if err != nil {
		a.session.set(SessionAnonymous, "")
		return loginError(fmt.Errorf("%w: %w", ErrInvalidCookies, err))
	}
	if !ok {
		a.session.set(SessionAnonymous, "")
		a.tel.ReportWarning(report_auth_cookies, "cookies rejected", handle)
		return loginError(ErrInvalidCookies)
	}

	a.persistSecret(ctx, SecretHandle, handle)
	a.persistCookies(ctx)
	a.session.set(SessionAuthenticated, handle)
	return nil
}

// Login tries to restore the previous session first and only then falls
// back to the login form. Without a password (given or stored) it fails with
// ErrPasswordRequired, the caller should then ask for a cookie string.
func (a *Authenticator) Login(ctx context.Context, handle, password string) error {
	restoreErr := a.RestoreSession(ctx, handle)
	if restoreErr == nil {
		return nil
	}
	a.tel.ReportDebug("restore failed, falling back to credentials", restoreErr)

	if handle == "" {
		stored, err := a.StoredHandle(ctx)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		handle = stored
	}
	if handle == "" {
		return fmt.Errorf("login: %w: no handle given", ErrNotLoggedIn)
	}

	if password == "" {
		stored, err := a.secrets.Get(ctx, SecretPassword)
		if err != nil && !errors.Is(err, secrets.ErrNotFound) {
			return fmt.Errorf("login: %w", err)
		}
		password = stored
	}
	if password == "" {
		return fmt.Errorf("login: %w", ErrPasswordRequired)
	}

	return a.LoginWithCredentials(ctx, handle, password)
}

// Verify reports whether the jar belongs to a logged in session by loading
// a profile page. It never changes the session.
func (a *Authenticator) Verify(ctx context.Context, handle string) (bool, error) {
	return a.verify(ctx, handle)
}

func (a *Authenticator) verify(ctx context.Context, handle string) (bool, error) {
	endpoint := fmt.Sprintf(pathProfile, url.PathEscape(handle))
	doc, res, err := a.client.GetDocument(ctx, endpoint)
	if err != nil {
		a.tel.ReportWarning(report_auth_verify, err)
		return false, err
	}
	if res.StatusCode() != http.StatusOK {
		a.tel.ReportDebug("verify: unexpected status", res.Status())
		return false, nil
	}
	return IsAuthenticatedProfile(doc), nil
}

// Logout forgets the session and its credentials, every cookie of the site
// is expired.
func (a *Authenticator) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.session.set(SessionAnonymous, "")

	var errs []error
	for _, key := range []string{SecretHandle, SecretPassword} {
		err := a.secrets.Delete(ctx, key)
		if err != nil && !errors.Is(err, secrets.ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	err := a.state.Update(ctx, StateCookies, nil)
	if err != nil {
		errs = append(errs, fmt.Errorf("clear stored cookies: %w", err))
	}
	a.client.Jar.Clear(a.client.BaseUrl.Hostname())

	if len(errs) > 0 {
		err := errors.Join(errs...)
		a.tel.ReportBroken(report_auth_logout, err)
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// IsAuthenticated re-verifies an authenticated session against the server,
// since sessions expire server side without any local signal. A session the
// server no longer recognizes becomes anonymous.
func (a *Authenticator) IsAuthenticated(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session.State() != SessionAuthenticated {
		return false
	}
	handle := a.session.Handle()
	if handle == "" {
		stored, err := a.StoredHandle(ctx)
		if err != nil || stored == "" {
			return false
		}
		handle = stored
	}

	ok, err := a.verify(ctx, handle)
	if err != nil {
		// the server could not be reached, which says nothing about the session
		return false
	}
	if !ok {
		a.tel.ReportWarning(report_auth_verify, "session expired", handle)
		a.session.set(SessionAnonymous, "")
		return false
	}
	return true
}
