package codeforces

import (
	"context"
	"sync"
	"time"

	"lazycf/internal/components/chrono"
)

// VerdictCheckTimeout bounds the lookup a VerdictCheck performs once it fires.
const VerdictCheckTimeout = 30 * time.Second

// VerdictCheck is a single delayed status lookup of a submission.
type VerdictCheck struct {
	timer  chrono.Timer
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (v *VerdictCheck) finish() {
	v.once.Do(func() {
		v.cancel()
		close(v.done)
	})
}

// Cancel stops a check that has not fired yet and aborts one that is running,
// notify is not called after Cancel returns unless it was already running.
func (v *VerdictCheck) Cancel() {
	v.cancel()
	if v.timer.Stop() {
		v.finish()
	}
}

// Done is closed once the check ran or was cancelled.
func (v *VerdictCheck) Done() <-chan struct{} {
	return v.done
}

// ScheduleVerdictCheck looks up the status of a submission once after delay
// and passes the result to notify. Cancelling ctx cancels the check.
func (s *Submitter) ScheduleVerdictCheck(
	ctx context.Context,
	id string,
	delay time.Duration,
	notify func(Submission, error),
) *VerdictCheck {
	ctx, cancel := context.WithCancel(ctx)
	check := &VerdictCheck{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	check.timer = s.timer.AfterFunc(delay, func() {
		defer check.finish()
		if ctx.Err() != nil {
			return
		}

		lookupCtx, cancelLookup := context.WithTimeout(ctx, VerdictCheckTimeout)
		defer cancelLookup()

		submission, err := s.Status(lookupCtx, id)
		if err != nil {
			s.tel.ReportWarning(report_submitter_verdict, err)
		}
		if ctx.Err() != nil {
			return
		}
		notify(submission, err)
	})
	context.AfterFunc(ctx, check.Cancel)

	return check
}
