package models

import (
	dErrors "appguard/pkg/domain-errors"
)

// Status is a report's triage state.
//
// The transition graph is intentionally permissive: any member of the closed
// set may follow any other. Only membership is enforced; the usual flow is
// pending -> investigating -> resolved but investigators may move a report
// back at will.
type Status string

const (
	StatusPending       Status = "pending"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
)

// Statuses lists the closed set, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInvestigating, StatusResolved}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusResolved:
		return true
	default:
		return false
	}
}

// ParseStatus validates a caller-supplied status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "status must be one of pending, investigating, resolved")
	}
	return s, nil
}
