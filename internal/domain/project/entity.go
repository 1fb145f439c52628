package project

import "time"

// Project is the activity target entries are logged against. Opaque to the
// engine except for the manager lead used to scope approvals.
type Project struct {
	ID        string
	Name      string
	ManagerID string
	Active    bool
	CreatedAt time.Time
}

// Allocation grants a person the right to log time against a project for a
// date range. An open-ended allocation has a nil EndDate.
type Allocation struct {
	ID        string
	PersonID  string
	ProjectID string
	StartDate time.Time
	EndDate   *time.Time

	// DTO
	ProjectName string
}

// Covers reports whether the allocation is active on the given date.
func (a Allocation) Covers(date time.Time) bool {
	if date.Before(a.StartDate) {
		return false
	}
	return a.EndDate == nil || !date.After(*a.EndDate)
}
