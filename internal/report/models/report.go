package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/email"
)

// Report is the aggregate root for a citizen-submitted incident.
//
// Invariants:
//   - All free-text fields are non-empty and ContactInfo is a valid email
//   - Status is always a member of the closed set; new reports are pending
//   - SubmitterIdentity and SubmittedAt are set at creation and never change
//   - ID is assigned by the store on insert and is immutable thereafter
//
// Reports are never deleted; triage only moves Status.
type Report struct {
	ID                uuid.UUID `json:"id"`
	SuspiciousAppName string    `json:"suspiciousAppName"`
	VictimName        string    `json:"victimName"`
	ContactInfo       string    `json:"contactInfo"`
	DownloadSource    string    `json:"downloadSource"`
	ThreatLevel       string    `json:"threatLevel"`
	Description       string    `json:"description"`
	EvidenceFileName  string    `json:"evidenceFileName,omitempty"`
	Status            Status    `json:"status"`
	SubmittedAt       time.Time `json:"submittedAt"`
	SubmitterIdentity string    `json:"submitterIdentity"`
}

// NewReport validates creation input and builds a pending report. The ID is
// left zero for the store to assign. Validation reports the first invalid
// field, in declaration order.
func NewReport(
	suspiciousAppName string,
	victimName string,
	contactInfo string,
	downloadSource string,
	threatLevel string,
	description string,
	evidenceFileName string,
	submitterIdentity string,
	now time.Time,
) (*Report, error) {
	if suspiciousAppName == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "suspiciousAppName is required")
	}
	if victimName == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "victimName is required")
	}
	if !email.Validate(contactInfo) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contactInfo must be a valid email address")
	}
	if downloadSource == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "downloadSource is required")
	}
	if threatLevel == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "threatLevel is required")
	}
	if description == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "description is required")
	}
	if submitterIdentity == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "submitter identity is required")
	}
	return &Report{
		SuspiciousAppName: suspiciousAppName,
		VictimName:        victimName,
		ContactInfo:       contactInfo,
		DownloadSource:    downloadSource,
		ThreatLevel:       threatLevel,
		Description:       description,
		EvidenceFileName:  evidenceFileName,
		Status:            StatusPending,
		SubmittedAt:       now,
		SubmitterIdentity: submitterIdentity,
	}, nil
}
