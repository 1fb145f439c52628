package timesheet

// Status is the approval state of a time entry. Transitions are monotonic:
//
//	Draft -> Submitted -> {Approved, Rejected}
//	Approved -> Closed -> Billed
//	Rejected -> {Draft, Submitted, Approved, Rejected}
//
// Rejected allows a self-transition so a reviewer can replace the stored
// rejection reason. Closed and Billed entries never move backwards.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusClosed    Status = "closed"
	StatusBilled    Status = "billed"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted, StatusApproved, StatusRejected},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusClosed, StatusRejected},
	StatusRejected:  {StatusDraft, StatusSubmitted, StatusApproved, StatusRejected},
	StatusClosed:    {StatusBilled},
	StatusBilled:    {},
}

// CanTransitionTo reports whether moving from s to target is a legal edge.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Locks reports whether an entry in this status freezes its whole day: once
// one entry on a day is submitted or further, the day's composition is
// frozen for that person.
func (s Status) Locks() bool {
	return s != StatusDraft && s != StatusRejected
}
