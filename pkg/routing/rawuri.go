package routing

import "strings"

// QueryString extracts the raw query from a full request URI: everything
// between the first '?' and an optional trailing '#fragment'. The second
// return value is false when the URI is empty or carries no query. The
// function is total and idempotent; a malformed URI never produces an
// error, just an absent query.
func QueryString(rawURI string) (string, bool) {
	i := strings.Index(rawURI, "?")
	if i < 0 {
		return "", false
	}
	query := rawURI[i+1:]
	if j := strings.Index(query, "#"); j >= 0 {
		query = query[:j]
	}
	return query, true
}
