package metrics

import "net/http"

// Outcome is the success/failure classification of a completed request.
type Outcome int

const (
	// OutcomeSuccess means the final status code was 200 or 302.
	OutcomeSuccess Outcome = iota

	// OutcomeFailure is every other final status, including the
	// synthetic 404 fallback and downstream errors.
	OutcomeFailure
)

// String returns the outcome as a log/metrics label.
func (o Outcome) String() string {
	if o == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// Classify buckets a final HTTP status code into an Outcome. The success
// set is exactly {200, 302}.
func Classify(status int) Outcome {
	if status == http.StatusOK || status == http.StatusFound {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
