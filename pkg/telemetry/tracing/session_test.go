package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewWithTracerProvider(provider), recorder
}

func attrValue(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func hasEvent(span sdktrace.ReadOnlySpan, name string) bool {
	for _, ev := range span.Events() {
		if ev.Name == name {
			return true
		}
	}
	return false
}

func TestStartRequest_TagsMethodAndURL(t *testing.T) {
	tracer, recorder := recordingTracer()

	r := httptest.NewRequest(http.MethodGet, "/i?e=pv", nil)
	_, session := tracer.StartRequest(context.Background(), r)
	session.Succeed(200)

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	span := ended[0]

	if v, ok := attrValue(span, "http.method"); !ok || v.AsString() != "GET" {
		t.Errorf("http.method = %v, want GET", v.AsString())
	}
	if v, ok := attrValue(span, "http.url"); !ok || v.AsString() != "/i?e=pv" {
		t.Errorf("http.url = %v, want /i?e=pv", v.AsString())
	}
	if v, ok := attrValue(span, "http.status"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status = %v, want 200", v.AsInt64())
	}
}

func TestSession_FinishExactlyOnce(t *testing.T) {
	tests := []struct {
		name     string
		finish   func(*Session)
		again    func(*Session)
		wantErrs bool
	}{
		{
			name:   "double succeed",
			finish: func(s *Session) { s.Succeed(200) },
			again:  func(s *Session) { s.Succeed(500) },
		},
		{
			name:     "succeed then fail",
			finish:   func(s *Session) { s.Succeed(302) },
			again:    func(s *Session) { s.Fail(errors.New("late failure")) },
			wantErrs: false,
		},
		{
			name:     "reject then succeed",
			finish:   func(s *Session) { s.Reject("no route") },
			again:    func(s *Session) { s.Succeed(200) },
			wantErrs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer, recorder := recordingTracer()
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			_, session := tracer.StartRequest(context.Background(), r)

			tt.finish(session)
			tt.again(session)

			ended := recorder.Ended()
			if len(ended) != 1 {
				t.Fatalf("ended spans = %d, want exactly 1", len(ended))
			}

			span := ended[0]
			_, hasErr := attrValue(span, "error")
			if hasErr != tt.wantErrs {
				t.Errorf("error attribute present = %v, want %v", hasErr, tt.wantErrs)
			}

			// The first transition's tags won; the late call changed nothing.
			if tt.name == "double succeed" {
				if v, _ := attrValue(span, "http.status"); v.AsInt64() != 200 {
					t.Errorf("http.status = %d, want the first call's 200", v.AsInt64())
				}
			}
		})
	}
}

func TestSession_Reject(t *testing.T) {
	tracer, recorder := recordingTracer()
	r := httptest.NewRequest(http.MethodDelete, "/nope", nil)
	_, session := tracer.StartRequest(context.Background(), r)

	session.Reject("no route for DELETE /nope")

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	span := ended[0]

	if v, ok := attrValue(span, "error"); !ok || !v.AsBool() {
		t.Error("error attribute not set to true")
	}
	if !hasEvent(span, "error") {
		t.Error("error event missing")
	}
	if span.Status().Code != codes.Error {
		t.Errorf("status code = %v, want Error", span.Status().Code)
	}
	if _, ok := attrValue(span, "http.status"); ok {
		t.Error("rejected span must not carry http.status")
	}
}

func TestSession_Fail(t *testing.T) {
	tracer, recorder := recordingTracer()
	r := httptest.NewRequest(http.MethodPost, "/com.acme/v1", nil)
	_, session := tracer.StartRequest(context.Background(), r)

	session.Fail(errors.New("sink unavailable"))

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	span := ended[0]

	if v, ok := attrValue(span, "error"); !ok || !v.AsBool() {
		t.Error("error attribute not set to true")
	}
	if !hasEvent(span, "error") {
		t.Error("error event missing")
	}
	// RecordError produces the semconv exception event alongside.
	if !hasEvent(span, "exception") {
		t.Error("exception event missing")
	}
}

// Concurrent terminal calls from racing completion paths still finish the
// span exactly once.
func TestSession_ConcurrentTermination(t *testing.T) {
	tracer, recorder := recordingTracer()
	r := httptest.NewRequest(http.MethodGet, "/i", nil)
	_, session := tracer.StartRequest(context.Background(), r)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				session.Succeed(200)
			} else {
				session.Fail(errors.New("racing failure"))
			}
		}(i)
	}
	wg.Wait()

	if got := len(recorder.Ended()); got != 1 {
		t.Fatalf("ended spans = %d, want exactly 1", got)
	}
}

// Each request gets its own span; concurrent sessions never touch each
// other's state.
func TestSession_PerRequestIsolation(t *testing.T) {
	tracer, recorder := recordingTracer()

	var wg sync.WaitGroup
	const requests = 32
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := httptest.NewRequest(http.MethodGet, "/health", nil)
			_, session := tracer.StartRequest(context.Background(), r)
			session.Succeed(200)
		}()
	}
	wg.Wait()

	ended := recorder.Ended()
	if len(ended) != requests {
		t.Fatalf("ended spans = %d, want %d", len(ended), requests)
	}
	for _, span := range ended {
		if v, ok := attrValue(span, "http.status"); !ok || v.AsInt64() != 200 {
			t.Error("span missing its own http.status tag")
		}
	}
}
