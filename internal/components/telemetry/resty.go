package telemetry

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_resty_request  = "resty.request"
	report_resty_response = "resty.response"
	report_resty_metrics  = "resty.metrics"
)

const instrumentationName = "lazycf/http"

type instrumentResty struct {
	tel       API
	idcounter *uint64
	tracer    trace.Tracer
	requests  metric.Int64Counter
}

// InstrumentResty reports every request a client makes through tel and
// records it as a span and a counter on the global otel providers.
//
// Only the method, url and status are reported, never headers or bodies.
func InstrumentResty(client *resty.Client, tel API) {
	var idcounter uint64
	i := instrumentResty{
		tel:       tel,
		idcounter: &idcounter,
		tracer:    otel.Tracer(instrumentationName),
	}
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"http.client.requests",
		metric.WithDescription("requests sent to the judge"),
	)
	if err != nil {
		tel.ReportWarning(report_resty_metrics, err)
	} else {
		i.requests = counter
	}

	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type reqCtxKeyType int

var reqCtxKey reqCtxKeyType

type reqCtx struct {
	id uint64
	// startTime does not need to rely on chrono, only durations are derived from it.
	startTime time.Time
	span      trace.Span
}

func (i instrumentResty) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	start := time.Now()
	id := atomic.AddUint64(i.idcounter, 1)

	ctx, span := i.tracer.Start(
		req.Context(),
		req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL),
		),
	)
	ctx = context.WithValue(ctx, reqCtxKey, reqCtx{
		id:        id,
		startTime: start,
		span:      span,
	})
	i.tel.ReportDebug(report_resty_request, id, req.Method, req.URL)

	req.SetContext(ctx)
	return nil
}

func (i instrumentResty) count(ctx context.Context, method string, status int) {
	if i.requests == nil {
		return
	}
	i.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.Int("http.status_code", status),
	))
}

func (i instrumentResty) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	i.count(ctx, res.Request.Method, res.StatusCode())

	rc, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		i.tel.ReportDebug(report_resty_response, res.Request.Method, res.Request.URL, res.Status())
		return nil
	}

	rc.span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
	if res.StatusCode() >= 500 {
		rc.span.SetStatus(codes.Error, res.Status())
	}
	rc.span.End()

	i.tel.ReportDebug(
		report_resty_response,
		rc.id,
		time.Since(rc.startTime).String(),
		res.Status(),
	)
	return nil
}

func (i instrumentResty) onError(req *resty.Request, err error) {
	ctx := req.Context()
	i.count(ctx, req.Method, 0)

	rc, ok := ctx.Value(reqCtxKey).(reqCtx)
	if !ok {
		i.tel.ReportDebug(report_resty_response, req.Method, req.URL, err)
		return
	}

	rc.span.RecordError(err)
	rc.span.SetStatus(codes.Error, err.Error())
	rc.span.End()

	// failures are returned to the caller which decides whether they are
	// broken, here they are only traced
	i.tel.ReportDebug(
		report_resty_response,
		rc.id,
		req.Method,
		req.URL,
		time.Since(rc.startTime).String(),
		err,
	)
}
