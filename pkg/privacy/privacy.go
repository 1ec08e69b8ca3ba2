// Package privacy evaluates per-request privacy policy: do-not-track and
// tracking cookie selection. Evaluation runs before any business logic
// sees the request and its result is read-only afterwards.
package privacy

import (
	"fmt"
	"net/http"
	"regexp"
)

// Context is the privacy evaluation result for one request.
type Context struct {
	// DoNotTrack is true when the configured DNT cookie is present and
	// its value satisfies the configured rule.
	DoNotTrack bool

	// Cookie is the selected tracking cookie, nil when no cookie name is
	// configured or the client did not send one.
	Cookie *http.Cookie
}

// DNTMatcher names the do-not-track cookie and the rule its value must
// satisfy for the signal to be honoured. The rule is an opaque predicate
// supplied by configuration.
type DNTMatcher struct {
	CookieName string
	Match      func(value string) bool
}

// NewDNTMatcher builds a matcher whose rule is a regular expression over
// the cookie value. The pattern is anchored so "1" matches exactly "1".
func NewDNTMatcher(cookieName, valuePattern string) (*DNTMatcher, error) {
	re, err := regexp.Compile("^(?:" + valuePattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid do-not-track value pattern %q: %w", valuePattern, err)
	}
	return &DNTMatcher{CookieName: cookieName, Match: re.MatchString}, nil
}

// Evaluate computes the privacy context for a request. It is a pure
// function of the request and configuration and never fails.
//
// Cookie selection: an empty cookieName means no cookie is read at all,
// whatever the client sent. Otherwise the named cookie is selected when
// present.
//
// Do-not-track: a nil matcher means the signal is always false. Otherwise
// the matcher's own cookie is read, independently of the selected
// tracking cookie (the two names may differ), and the signal is true only
// when that cookie is present and its value satisfies the rule.
func Evaluate(r *http.Request, cookieName string, dnt *DNTMatcher) Context {
	var pc Context

	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			pc.Cookie = c
		}
	}

	if dnt != nil && dnt.Match != nil {
		if c, err := r.Cookie(dnt.CookieName); err == nil {
			pc.DoNotTrack = dnt.Match(c.Value)
		}
	}

	return pc
}
