package tracing

import (
	"context"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Session owns the tracing span for a single request.
//
// A session moves to its terminal state exactly once: whichever of
// Succeed, Reject or Fail runs first tags the span and ends it. Later
// terminal calls are no-ops, so every completion path can call its own
// terminal method without coordinating with the others — the span can
// never be finished twice or tagged after finishing. Tagging always
// happens before the span ends, inside the same once-guarded transition.
//
// Sessions are request-scoped. The context returned by StartRequest
// carries the span for the synchronous portion of handling; it is never
// shared across requests because every request gets its own context and
// its own span instance.
type Session struct {
	span trace.Span
	once sync.Once
}

// StartRequest opens the span for an inbound request, tagging it with the
// request method and full request URI before any handling begins. The
// returned context carries the span so downstream calls join the trace.
func (t *Tracer) StartRequest(ctx context.Context, r *http.Request) (context.Context, *Session) {
	ctx, span := t.tracer.Start(ctx, "collector.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.url", requestURI(r)),
		),
	)
	return ctx, &Session{span: span}
}

// Succeed records the final status code and ends the span. First terminal
// call wins.
func (s *Session) Succeed(status int) {
	s.once.Do(func() {
		s.span.SetAttributes(attribute.Int("http.status", status))
		s.span.End()
	})
}

// Reject records a local short-circuit (no route matched) and ends the
// span. The span is marked as errored and carries an error event with
// the rejection description.
func (s *Session) Reject(reason string) {
	s.once.Do(func() {
		s.span.SetAttributes(attribute.Bool("error", true))
		s.span.AddEvent("error", trace.WithAttributes(
			attribute.String("error.object", reason),
		))
		s.span.SetStatus(codes.Error, reason)
		s.span.End()
	})
}

// Fail records an unexpected failure from downstream handling and ends
// the span. The error is recorded both as an exception event and as the
// error.object attribute of an error event.
func (s *Session) Fail(err error) {
	s.once.Do(func() {
		s.span.SetAttributes(attribute.Bool("error", true))
		s.span.RecordError(err)
		s.span.AddEvent("error", trace.WithAttributes(
			attribute.String("error.object", err.Error()),
		))
		s.span.SetStatus(codes.Error, err.Error())
		s.span.End()
	})
}

// requestURI returns the raw request URI when the transport provides it,
// falling back to the reassembled URL for synthetic requests.
func requestURI(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.String()
}
