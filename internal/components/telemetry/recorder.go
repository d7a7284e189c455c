package telemetry

import (
	"strings"
	"sync"
)

type RecordKind int

const (
	KindBroken RecordKind = iota
	KindWarning
	KindDebug
	KindCount
)

type Record struct {
	Kind   RecordKind
	Id     string
	Params []any
	Count  int64
}

// Recorder implements API by keeping every report in memory, it is used by
// tests to check that a component reported what it should have.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(Record{Kind: KindBroken, Id: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(Record{Kind: KindWarning, Id: id, Params: params})
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(Record{Kind: KindDebug, Id: msg, Params: params})
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(Record{Kind: KindCount, Id: id, Count: count})
}

// Records returns the reports of a given kind whose id ends with suffix,
// an empty suffix matches everything.
func (r *Recorder) Records(kind RecordKind, suffix string) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.records {
		if rec.Kind == kind && strings.HasSuffix(rec.Id, suffix) {
			out = append(out, rec)
		}
	}
	return out
}
