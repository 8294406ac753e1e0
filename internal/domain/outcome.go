package domain

import "errors"

// Status is the terminal state of a single trigger invocation.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// FailureKind classifies a failed collaborator call.
type FailureKind string

const (
	KindNone        FailureKind = ""
	KindNotFound    FailureKind = "not_found"
	KindRejected    FailureKind = "rejected"
	KindForbidden   FailureKind = "forbidden"
	KindUnavailable FailureKind = "unavailable"
	KindUnknown     FailureKind = "unknown"
)

// Outcome is what a handler decided and did for one event. Handlers never
// return errors to the platform; they return an Outcome for the adapter to log.
type Outcome struct {
	Status Status
	Kind   FailureKind
	// Target is the topic or user id the side effect was aimed at.
	Target string
	// Reason explains a skip.
	Reason string
	// Detail carries a provider receipt such as a message id.
	Detail string
	Err    error

	// Expected marks a failure the handler treats as a normal race.
	Expected bool
}

func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

func Succeeded(target, detail string) Outcome {
	return Outcome{Status: StatusSucceeded, Target: target, Detail: detail}
}

// Failed builds a failed outcome, deriving the kind from the sentinel err wraps.
func Failed(target string, err error) Outcome {
	return Outcome{Status: StatusFailed, Kind: KindOf(err), Target: target, Err: err}
}

// KindOf maps an error onto a FailureKind.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// Benign reports whether the outcome needs no operator attention.
func (o Outcome) Benign() bool {
	return o.Status != StatusFailed || o.Expected
}
