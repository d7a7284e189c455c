package codeforces

import "context"

// UnknownSubmissionId is returned by Submit when the submission was accepted
// by the form but no id could be found in the response.
const UnknownSubmissionId = "unknown"

// UnknownVerdict is the verdict of a submission that could not be found.
const UnknownVerdict = "Unknown"

const ProblemTypeProgramming = "PROGRAMMING"

type Example struct {
	Input  string
	Output string
}

type Problem struct {
	ContestId    int
	Index        string
	Name         string
	Type         string
	Points       *float64
	Rating       *int
	Tags         []string
	Statement    string
	InputFormat  string
	OutputFormat string
	Examples     []Example

	TimeLimit   string
	MemoryLimit string
	Note        string
}

type Submission struct {
	Id             string
	ProblemName    string
	Verdict        string
	TimeConsumed   string
	MemoryConsumed string
}

// SecretStore stores credentials, Get returns secrets.ErrNotFound (or any
// error satisfying errors.Is with it) for a missing key.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StateStore is durable key value state, updating a key with nil deletes it.
type StateStore interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Update(ctx context.Context, key string, value []string) error
}

// Keys of the secrets and state the authenticator persists.
const (
	SecretHandle   = "cf_handle"
	SecretPassword = "cf_password"
	StateCookies   = "cf_cookies"
)
