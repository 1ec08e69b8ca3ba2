// Package router wires routing classification, privacy evaluation,
// tracing and outcome metrics around the collector service.
//
// The router owns the per-request observability contract: every request
// gets exactly one tracing session finished exactly once, and every
// terminal response is counted as exactly one success or failure. The
// service never touches spans or counters.
package router

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"beaconhq/beacon/pkg/collector"
	"beaconhq/beacon/pkg/privacy"
	"beaconhq/beacon/pkg/routing"
	"beaconhq/beacon/pkg/telemetry/metrics"
	"beaconhq/beacon/pkg/telemetry/tracing"
)

// rawRequestURIHeader lets fronting proxies forward the original request
// line when they rewrite the URI in transit.
const rawRequestURIHeader = "Raw-Request-URI"

// maxBatchBody caps how much of a posted event batch is read.
const maxBatchBody = 10 << 20

// Router is the collector's request entry point.
type Router struct {
	service collector.Service
	tracer  *tracing.Tracer
	metrics *metrics.HitMetrics
	logger  *slog.Logger
}

// New builds a Router around a service and its observability stack.
func New(service collector.Service, tracer *tracing.Tracer, m *metrics.HitMetrics, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		service: service,
		tracer:  tracer,
		metrics: m,
		logger:  logger.With("component", "router"),
	}
}

// ServeHTTP classifies the request, opens its tracing session and
// dispatches to the matched handler. No request escapes without a
// terminal response: anything unmatched falls through to 404.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	pctx := privacy.Evaluate(r, rt.service.CookieName(), rt.service.DoNotTrackMatcher())
	ctx, session := rt.tracer.StartRequest(r.Context(), r)
	r = r.WithContext(ctx)

	decision := routing.Classify(r.Method, routing.Segments(r.URL.Path), rt.service.RedirectsEnabled())

	// counted flips once the request has been recorded as exactly one
	// outcome. The recover below finishes the session and counts the
	// failure for a handler panic, then hands the panic to the outer
	// recovery middleware for the transport response.
	counted := false
	defer func() {
		if rec := recover(); rec != nil {
			session.Fail(fmt.Errorf("panic: %v", rec))
			if !counted {
				rt.metrics.Record(decision.Kind.String(), http.StatusInternalServerError, time.Since(start))
			}
			panic(rec)
		}
	}()

	record := func(status int) {
		counted = true
		rt.metrics.Record(decision.Kind.String(), status, time.Since(start))
	}

	switch decision.Kind {
	case routing.KindVendorAdapter:
		path := rt.service.DeterminePath(decision.Vendor, decision.Version)
		rt.dispatchHit(w, r, session, pctx, path, record)

	case routing.KindLegacyPixel:
		rt.dispatchHit(w, r, session, pctx, "/"+decision.Alias, record)

	case routing.KindHealth:
		session.Succeed(http.StatusOK)
		record(http.StatusOK)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "OK")

	case routing.KindCrossDomain:
		rt.writeResponse(w, session, record, rt.service.CrossDomainPolicy())

	case routing.KindCorsPreflight:
		rt.writeResponse(w, session, record, rt.service.PreflightResponse(r))

	case routing.KindRoot:
		rt.writeResponse(w, session, record, rt.service.RootResponse())

	default:
		rt.notFound(w, r, session, decision, record)
	}
}

// dispatchHit builds the hit from the request and runs it through the
// service. The service call blocks on the request goroutine; the session
// finishes from whichever outcome arrives first.
func (rt *Router) dispatchHit(w http.ResponseWriter, r *http.Request, session *tracing.Session, pctx privacy.Context, path string, record func(int)) {
	hit, err := rt.buildHit(r, pctx, path)
	if err != nil {
		rt.logger.Warn("reading hit body failed", "path", path, "error", err)
		session.Fail(err)
		record(http.StatusInternalServerError)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := rt.service.HandleHit(r.Context(), hit)
	if err != nil {
		rt.logger.Error("hit handling failed", "path", path, "error", err)
		session.Fail(err)
		record(http.StatusInternalServerError)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	rt.writeResponse(w, session, record, resp)
}

// buildHit extracts the hit fields from the raw request.
func (rt *Router) buildHit(r *http.Request, pctx privacy.Context, path string) (*collector.Hit, error) {
	hit := &collector.Hit{
		Path:          path,
		Cookie:        pctx.Cookie,
		DoNotTrack:    pctx.DoNotTrack,
		UserAgent:     r.UserAgent(),
		Referer:       r.Referer(),
		Host:          r.Host,
		ClientIP:      clientIP(r),
		Request:       r,
		PixelExpected: r.Method == http.MethodGet || r.Method == http.MethodHead,
	}

	if qs, ok := routing.QueryString(rawRequestURI(r)); ok {
		hit.QueryString = qs
	}

	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBody))
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		hit.Body = body
		hit.ContentType = r.Header.Get("Content-Type")
	}

	return hit, nil
}

func (rt *Router) notFound(w http.ResponseWriter, r *http.Request, session *tracing.Session, decision routing.Decision, record func(int)) {
	session.Reject(decision.NotFoundBody)
	record(http.StatusNotFound)
	rt.logger.Debug("no route matched", "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, decision.NotFoundBody)
}

// writeResponse sends a service response to the wire verbatim and closes
// out the request's session and counters.
func (rt *Router) writeResponse(w http.ResponseWriter, session *tracing.Session, record func(int), resp *collector.Response) {
	session.Succeed(resp.Status)
	record(resp.Status)

	for name, values := range resp.Headers {
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
}

// rawRequestURI is the request line as the client sent it, preferring the
// transport's own value over the proxy-forwarded header.
func rawRequestURI(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.Header.Get(rawRequestURIHeader)
}

// clientIP is the originating client address: the first X-Forwarded-For
// hop when present, the connection's remote host otherwise.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
