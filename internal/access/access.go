// Package access is the authorization boundary between transport and the
// report service. A single permission table maps (role, operation) to
// allow/deny; the gate runs before any service call, so a denied call has no
// side effects. The table is transport-independent: handlers declare the
// operation they front and never re-check roles themselves.
package access

import (
	dErrors "appguard/pkg/domain-errors"
)

// Role is a caller's resolved role. Anything outside the two known roles is
// denied everything.
type Role string

const (
	RoleCitizen      Role = "CITIZEN"
	RoleInvestigator Role = "INVESTIGATOR"
)

// ParseRole maps a raw role string onto a known Role.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleCitizen:
		return RoleCitizen, true
	case RoleInvestigator:
		return RoleInvestigator, true
	default:
		return "", false
	}
}

// Operation names one externally invokable operation of the report surface.
type Operation string

const (
	OpSubmitReport      Operation = "report:submit"
	OpListOwnReports    Operation = "report:list-own"
	OpUploadEvidence    Operation = "evidence:upload"
	OpListAllReports    Operation = "report:list-all"
	OpGetReport         Operation = "report:get"
	OpUpdateStatus      Operation = "report:update-status"
	OpStats             Operation = "report:stats"
	OpListByStatus      Operation = "report:list-by-status"
	OpListByThreatLevel Operation = "report:list-by-threat"
)

// permissions is the full rule table. Absence means deny; there is no
// wildcard and no inheritance between roles.
var permissions = map[Role]map[Operation]bool{
	RoleCitizen: {
		OpSubmitReport:   true,
		OpListOwnReports: true,
		OpUploadEvidence: true,
	},
	RoleInvestigator: {
		OpListAllReports:    true,
		OpGetReport:         true,
		OpUpdateStatus:      true,
		OpStats:             true,
		OpListByStatus:      true,
		OpListByThreatLevel: true,
	},
}

// Authorize checks the permission table. It returns nil when the role may
// invoke the operation, and an unauthorized domain error otherwise. Callers
// with no resolved identity must pass an empty role, which denies everything.
func Authorize(role Role, op Operation) error {
	ops, ok := permissions[role]
	if !ok {
		return dErrors.New(dErrors.CodeUnauthorized, "no resolved role")
	}
	if !ops[op] {
		return dErrors.Newf(dErrors.CodeUnauthorized, "role %s may not invoke %s", role, op)
	}
	return nil
}
