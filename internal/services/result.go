package services

// Outcome says how a soft-fail operation ended.
type Outcome int

const (
	// OutcomeApplied means the change was committed.
	OutcomeApplied Outcome = iota
	// OutcomeNotFound means the target does not exist.
	OutcomeNotFound
	// OutcomeInvalidState means the target exists but is no longer pending.
	OutcomeInvalidState
	// OutcomeInvalidInput means the arguments were rejected before any read.
	OutcomeInvalidInput
	// OutcomeFailed means the store failed and the transaction was rolled back.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidState:
		return "invalid_state"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a soft-fail operation. Err is only set for
// OutcomeFailed.
type Result struct {
	Outcome Outcome
	Err     error
}

// Applied reports whether the operation changed anything.
func (r Result) Applied() bool {
	return r.Outcome == OutcomeApplied
}
