package application

// Status defines the review states of a loan application
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// transitions is the single source of truth for legal status changes.
// pending -> pending is the "additional documents requested" edge when the
// review has not started yet; approved and rejected are terminal.
var transitions = map[Status][]Status{
	StatusPending:     {StatusUnderReview, StatusPending},
	StatusUnderReview: {StatusApproved, StatusRejected, StatusPending},
	StatusApproved:    {},
	StatusRejected:    {},
}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether no further lifecycle transition can leave s
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the s -> target edge exists in the
// transition table
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw string into a Status, reporting whether it is known
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsValid()
}
