package routing

// Kind identifies which routing rule matched a request.
type Kind int

const (
	// KindVendorAdapter is a hit addressed to a vendor/version adapter
	// endpoint, e.g. GET /com.acme/v1 or POST /com.acme/tp2.
	KindVendorAdapter Kind = iota

	// KindLegacyPixel is a hit to one of the legacy single-segment pixel
	// aliases (/ice.png, /i).
	KindLegacyPixel

	// KindHealth is the liveness probe endpoint.
	KindHealth

	// KindCrossDomain is the Flash cross-domain policy document request.
	KindCrossDomain

	// KindCorsPreflight is an OPTIONS request on any path.
	KindCorsPreflight

	// KindRoot is a GET on the site root.
	KindRoot

	// KindNotFound is the fallback when no rule matched, or the redirect
	// mask when the redirect endpoint family is disabled.
	KindNotFound
)

// String returns the decision kind as a metrics-friendly label.
func (k Kind) String() string {
	switch k {
	case KindVendorAdapter:
		return "vendor_adapter"
	case KindLegacyPixel:
		return "legacy_pixel"
	case KindHealth:
		return "health"
	case KindCrossDomain:
		return "cross_domain"
	case KindCorsPreflight:
		return "cors_preflight"
	case KindRoot:
		return "root"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Response bodies for the two NotFound variants.
const (
	// NotFoundBody is the body for the generic miss path.
	NotFoundBody = "404 not found"

	// RedirectsDisabledBody is the body when a request hits the redirect
	// endpoint family while it is disabled.
	RedirectsDisabledBody = "redirects disabled"
)

// Decision is the resolved routing outcome for one request. Exactly one
// variant applies; only the fields for the matched Kind are set.
type Decision struct {
	Kind Kind

	// Vendor and Version are set for KindVendorAdapter.
	Vendor  string
	Version string

	// Alias is set for KindLegacyPixel ("ice.png" or "i").
	Alias string

	// NotFoundBody is set for KindNotFound and distinguishes the generic
	// miss from the redirects-disabled mask.
	NotFoundBody string
}
