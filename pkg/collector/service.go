// Package collector defines the boundary to the collector business logic
// and provides the default pixel-serving implementation.
//
// The router treats Service as opaque: the service decides how hits are
// answered and where events go, while the router owns routing
// classification, privacy evaluation, tracing and outcome counting.
package collector

import (
	"context"
	"net/http"

	"beaconhq/beacon/pkg/privacy"
)

// Response is the service's answer for one request. The router writes it
// to the wire verbatim.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value; empty means none.
	ContentType string

	// Headers carries additional response headers, may be nil.
	Headers http.Header

	// Body is the response body, may be nil.
	Body []byte
}

// Hit carries everything the service needs to process one analytics hit.
// All fields are read-only once constructed.
type Hit struct {
	// QueryString is the raw query extracted from the request URI, empty
	// when the request carried none.
	QueryString string

	// Body is the posted event batch, nil for GET/HEAD requests.
	Body []byte

	// Path is the resolved adapter path for the hit.
	Path string

	// Cookie is the selected tracking cookie, nil when none.
	Cookie *http.Cookie

	UserAgent string
	Referer   string
	Host      string
	ClientIP  string

	// Request is the raw inbound request, for implementations that need
	// headers beyond the extracted ones.
	Request *http.Request

	// PixelExpected is true for GET/HEAD hits, where the client expects
	// a tracking-pixel-shaped response rather than a data payload.
	PixelExpected bool

	// DoNotTrack is the evaluated privacy signal; honouring it is the
	// service's responsibility.
	DoNotTrack bool

	// ContentType is the request content type, set for POST only.
	ContentType string
}

// Service is the collector business logic consumed by the router.
// Implementations must be safe for concurrent use; every in-flight
// request may call any method at any time.
type Service interface {
	// HandleHit processes one analytics hit and returns the response to
	// send. It may block while awaiting downstream work; the router runs
	// it on the request's own goroutine and honours the context. A
	// non-nil error is a downstream failure: the router finishes the
	// span, counts a failure and surfaces the transport's generic error.
	HandleHit(ctx context.Context, hit *Hit) (*Response, error)

	// DeterminePath maps a vendor/version endpoint pair to the resolved
	// adapter path. Pure; no observable side effects.
	DeterminePath(vendor, version string) string

	// PreflightResponse answers a CORS preflight OPTIONS request.
	PreflightResponse(r *http.Request) *Response

	// RootResponse answers a GET on the site root.
	RootResponse() *Response

	// CrossDomainPolicy returns the static Flash cross-domain policy
	// document.
	CrossDomainPolicy() *Response

	// CookieName is the configured tracking cookie name, empty when no
	// cookie is read.
	CookieName() string

	// DoNotTrackMatcher is the configured DNT rule, nil when the signal
	// is never honoured.
	DoNotTrackMatcher() *privacy.DNTMatcher

	// RedirectsEnabled reports whether the /r/... endpoint family is
	// enabled.
	RedirectsEnabled() bool
}
