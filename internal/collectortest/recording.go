// Package collectortest provides test doubles for exercising the full
// collector stack.
package collectortest

import (
	"context"
	"net/http"
	"sync"

	"beaconhq/beacon/pkg/collector"
	"beaconhq/beacon/pkg/privacy"
)

// Recording wraps a collector.Service and records every hit it sees, so
// integration tests can assert on what reached the business logic after
// the request passed through the middleware chain and the router.
type Recording struct {
	Inner collector.Service

	mu   sync.Mutex
	hits []*collector.Hit
}

// NewRecording wraps inner with hit recording.
func NewRecording(inner collector.Service) *Recording {
	return &Recording{Inner: inner}
}

// Hits returns a snapshot of the recorded hits.
func (r *Recording) Hits() []*collector.Hit {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*collector.Hit, len(r.hits))
	copy(out, r.hits)
	return out
}

func (r *Recording) HandleHit(ctx context.Context, hit *collector.Hit) (*collector.Response, error) {
	r.mu.Lock()
	r.hits = append(r.hits, hit)
	r.mu.Unlock()
	return r.Inner.HandleHit(ctx, hit)
}

func (r *Recording) DeterminePath(vendor, version string) string {
	return r.Inner.DeterminePath(vendor, version)
}

func (r *Recording) PreflightResponse(req *http.Request) *collector.Response {
	return r.Inner.PreflightResponse(req)
}

func (r *Recording) RootResponse() *collector.Response {
	return r.Inner.RootResponse()
}

func (r *Recording) CrossDomainPolicy() *collector.Response {
	return r.Inner.CrossDomainPolicy()
}

func (r *Recording) CookieName() string {
	return r.Inner.CookieName()
}

func (r *Recording) DoNotTrackMatcher() *privacy.DNTMatcher {
	return r.Inner.DoNotTrackMatcher()
}

func (r *Recording) RedirectsEnabled() bool {
	return r.Inner.RedirectsEnabled()
}
