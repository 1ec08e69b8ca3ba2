package routing

import (
	"net/http"
	"strings"
)

// Segments splits a URL path into its non-empty segments.
// "/" and "" both yield nil; "/a/b" yields ["a", "b"].
func Segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// Classify maps a request's method and path segments to exactly one
// Decision. Rules are evaluated in order and the first match wins:
//
//  1. /r/{anything} while redirects are disabled -> NotFound with the
//     redirects-disabled body. This must run before the vendor/version
//     rule it shadows.
//  2. two segments, GET/HEAD/POST -> VendorAdapter(vendor, version)
//  3. /ice.png or /i, GET/HEAD -> LegacyPixelAlias
//  4. GET /crossdomain.xml -> CrossDomainPolicy
//  5. GET /health -> Health
//  6. OPTIONS on any path -> CorsPreflight
//  7. GET on the root -> Root
//  8. anything else -> NotFound
//
// A POST to a legacy pixel alias carries no batch semantics and falls
// through to NotFound.
func Classify(method string, segments []string, redirectsEnabled bool) Decision {
	switch {
	case !redirectsEnabled && len(segments) == 2 && segments[0] == "r":
		return Decision{Kind: KindNotFound, NotFoundBody: RedirectsDisabledBody}

	case len(segments) == 2 && isHitMethod(method):
		return Decision{Kind: KindVendorAdapter, Vendor: segments[0], Version: segments[1]}

	case len(segments) == 1 && isPixelAlias(segments[0]) && isPixelMethod(method):
		return Decision{Kind: KindLegacyPixel, Alias: segments[0]}

	case len(segments) == 1 && segments[0] == "crossdomain.xml" && method == http.MethodGet:
		return Decision{Kind: KindCrossDomain}

	case len(segments) == 1 && segments[0] == "health" && method == http.MethodGet:
		return Decision{Kind: KindHealth}

	case method == http.MethodOptions:
		return Decision{Kind: KindCorsPreflight}

	case len(segments) == 0 && method == http.MethodGet:
		return Decision{Kind: KindRoot}

	default:
		return Decision{Kind: KindNotFound, NotFoundBody: NotFoundBody}
	}
}

// isHitMethod reports whether the method can carry a vendor/version hit:
// GET/HEAD for pixel-style requests, POST for event batches.
func isHitMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodPost
}

// isPixelMethod reports whether the method expects a pixel response.
func isPixelMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func isPixelAlias(segment string) bool {
	return segment == "ice.png" || segment == "i"
}
