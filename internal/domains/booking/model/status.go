package model

import "slices"

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled is reserved for booker withdrawal. No endpoint sets it yet.
	StatusCanceled Status = "CANCELED"
)

// InitialStatus is the status every new booking is persisted with.
const InitialStatus = StatusWaiting

// transitions is the only place allowed status changes are defined.
// A status without an entry is terminal.
var transitions = map[Status][]Status{
	StatusWaiting: {StatusApproved, StatusRejected, StatusCanceled},
}

func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	default:
		return false
	}
}

// Decision maps an owner's verdict to the status it requests.
func Decision(approved bool) Status {
	if approved {
		return StatusApproved
	}

	return StatusRejected
}
