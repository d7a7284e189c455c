package codeforces

import "errors"

// Error kinds returned by this package. Operations wrap them together with
// the underlying cause, so both errors.Is(err, kind) and the original message
// survive.
var (
	ErrAuthMissingToken   = errors.New("login page has no csrf token")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrVerificationFailed = errors.New("session verification failed")
	ErrInvalidCookies     = errors.New("cookies do not belong to a logged in session")
	ErrPasswordRequired   = errors.New("no password stored, log in with a cookie string instead")

	ErrPageUnavailable = errors.New("page unavailable")
	ErrApiUnavailable  = errors.New("api unavailable")

	ErrSubmitMissingToken = errors.New("submit page has no csrf token")
	ErrSubmissionRejected = errors.New("submission rejected")

	ErrTimeout = errors.New("request timed out")
	ErrNetwork = errors.New("network error")
)
