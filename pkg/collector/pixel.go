package collector

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"beaconhq/beacon/pkg/config"
	"beaconhq/beacon/pkg/privacy"
)

// pixelGIF is a transparent 1x1 GIF, the classic tracking pixel.
var pixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// Settings is the hot-reloadable policy portion of the service
// configuration. A Settings value is immutable once installed; reloads
// install a fresh one atomically.
type Settings struct {
	CookieName            string
	DNTMatcher            *privacy.DNTMatcher
	EnableDefaultRedirect bool

	// Paths maps "vendor/version" to the resolved adapter path.
	Paths map[string]string

	CrossDomainEnabled bool
	CrossDomainDomains []string
	CrossDomainSecure  bool

	CORSMaxAge         time.Duration
	CORSAllowedHeaders []string
}

// SettingsFromConfig builds service settings from the collector
// configuration, compiling the do-not-track rule.
func SettingsFromConfig(cfg *config.CollectorConfig) (*Settings, error) {
	s := &Settings{
		CookieName:            cfg.CookieName,
		EnableDefaultRedirect: cfg.EnableDefaultRedirect,
		Paths:                 cfg.Paths,
		CrossDomainEnabled:    cfg.CrossDomain.Enabled,
		CrossDomainDomains:    cfg.CrossDomain.Domains,
		CrossDomainSecure:     cfg.CrossDomain.Secure,
		CORSMaxAge:            cfg.CORS.AccessControlMaxAge,
		CORSAllowedHeaders:    cfg.CORS.AllowedHeaders,
	}

	if cfg.DoNotTrack.Enabled {
		matcher, err := privacy.NewDNTMatcher(cfg.DoNotTrack.CookieName, cfg.DoNotTrack.ValuePattern)
		if err != nil {
			return nil, fmt.Errorf("building do-not-track matcher: %w", err)
		}
		s.DNTMatcher = matcher
	}

	return s, nil
}

// PixelService is the default Service implementation: it answers
// pixel-expected hits with a transparent GIF, batch posts with a plain
// acknowledgement, and serves the static cross-domain, preflight and
// root responses from its settings.
//
// Event forwarding to a downstream sink is intentionally out of scope
// here; implementations with a real sink embed or replace this type.
type PixelService struct {
	settings atomic.Pointer[Settings]
	logger   *slog.Logger
}

// NewPixelService creates a service with the given settings.
func NewPixelService(settings *Settings, logger *slog.Logger) *PixelService {
	if logger == nil {
		logger = slog.Default()
	}
	p := &PixelService{logger: logger.With("component", "collector")}
	p.settings.Store(settings)
	return p
}

// UpdateSettings atomically installs new settings. In-flight requests
// keep the settings they started with.
func (p *PixelService) UpdateSettings(settings *Settings) {
	p.settings.Store(settings)
	p.logger.Info("collector settings updated",
		"cookie_name", settings.CookieName,
		"redirects_enabled", settings.EnableDefaultRedirect,
		"dnt_enabled", settings.DNTMatcher != nil,
	)
}

// HandleHit answers one analytics hit. A do-not-track hit still gets its
// normal response; the signal suppresses the event, not the reply.
func (p *PixelService) HandleHit(ctx context.Context, hit *Hit) (*Response, error) {
	p.logger.LogAttrs(ctx, slog.LevelDebug, "hit received",
		slog.String("path", hit.Path),
		slog.Bool("pixel_expected", hit.PixelExpected),
		slog.Bool("do_not_track", hit.DoNotTrack),
		slog.Int("body_bytes", len(hit.Body)),
	)

	if hit.PixelExpected {
		return &Response{
			Status:      http.StatusOK,
			ContentType: "image/gif",
			Body:        pixelGIF,
		}, nil
	}

	return &Response{
		Status:      http.StatusOK,
		ContentType: "text/plain",
		Body:        []byte("ok"),
	}, nil
}

// DeterminePath resolves a vendor/version pair through the configured
// mapping table, falling back to the pair unchanged.
func (p *PixelService) DeterminePath(vendor, version string) string {
	key := vendor + "/" + version
	if mapped, ok := p.settings.Load().Paths[key]; ok {
		return mapped
	}
	return "/" + key
}

// PreflightResponse answers a CORS preflight request. The origin is
// echoed back so credentialed requests work; requests without an Origin
// get a wildcard.
func (p *PixelService) PreflightResponse(r *http.Request) *Response {
	s := p.settings.Load()

	headers := http.Header{}
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	headers.Set("Access-Control-Allow-Origin", origin)
	headers.Set("Access-Control-Allow-Credentials", "true")
	headers.Set("Access-Control-Allow-Methods", "GET, HEAD, POST, OPTIONS")
	if len(s.CORSAllowedHeaders) > 0 {
		headers.Set("Access-Control-Allow-Headers", strings.Join(s.CORSAllowedHeaders, ", "))
	}
	if s.CORSMaxAge > 0 {
		headers.Set("Access-Control-Max-Age", strconv.Itoa(int(s.CORSMaxAge.Seconds())))
	}

	return &Response{Status: http.StatusOK, Headers: headers}
}

// RootResponse answers a GET on the site root.
func (p *PixelService) RootResponse() *Response {
	return &Response{
		Status:      http.StatusOK,
		ContentType: "text/plain",
		Body:        []byte("ok"),
	}
}

// CrossDomainPolicy returns the Flash cross-domain policy document built
// from the configured domains.
func (p *PixelService) CrossDomainPolicy() *Response {
	s := p.settings.Load()

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n")
	b.WriteString("<cross-domain-policy>\n")
	if s.CrossDomainEnabled {
		for _, domain := range s.CrossDomainDomains {
			fmt.Fprintf(&b, "  <allow-access-from domain=%q secure=%q />\n",
				domain, strconv.FormatBool(s.CrossDomainSecure))
		}
	}
	b.WriteString("</cross-domain-policy>")

	return &Response{
		Status:      http.StatusOK,
		ContentType: "text/xml",
		Body:        []byte(b.String()),
	}
}

// CookieName implements Service.
func (p *PixelService) CookieName() string {
	return p.settings.Load().CookieName
}

// DoNotTrackMatcher implements Service.
func (p *PixelService) DoNotTrackMatcher() *privacy.DNTMatcher {
	return p.settings.Load().DNTMatcher
}

// RedirectsEnabled implements Service.
func (p *PixelService) RedirectsEnabled() bool {
	return p.settings.Load().EnableDefaultRedirect
}
