package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotAllocated    = errors.New("person is not allocated to this project on this date")
	ErrNotProjectLead  = errors.New("actor does not lead this project")
)
