// Package routing resolves inbound requests to a single routing decision.
//
// The collector's endpoint surface is small but the patterns overlap at the
// syntax level ("/r/tp2" is both a redirect endpoint and a valid
// vendor/version pair), so the rules are kept as an explicit ordered list
// evaluated top to bottom rather than a mux registration. First match wins
// and the ordering is part of the contract, not an optimization.
//
// The package has no side effects and no dependencies beyond net/http
// method constants; the router consumes the returned Decision immediately.
package routing
