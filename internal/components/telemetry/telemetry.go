package telemetry

import (
	"fmt"
)

// API is the reporting surface every component logs and counts through, it
// exists so tests can assert on what a component reported.
type API interface {
	// ReportBroken reports a component that failed in a way a user or
	// maintainer should look at.
	//
	// The id names the component that broke, not the line that broke. For
	// example a failed fetch inside Problems.Fetch is reported as
	// `problems.fetch`, with the wrapped error passed as a param to say that it
	// was the HTTP request that failed.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	//
	// Ids are usually declared as `report_...` constants next to the code that
	// uses them and are combined with a ScopedAPI namespace, so
	// `<struct>.<method>` is specific enough.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that the caller recovered from,
	// like a malformed record that was skipped.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information that is only shown in verbose mode.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of a specific event, counts are
	// points of data over time and should not be summed.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id it reports with a namespace, like a sub logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
