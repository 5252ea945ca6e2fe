package handler

import (
	"strings"

	dErrors "appguard/pkg/domain-errors"
	"appguard/internal/report/service"
)

// Size limits guard the boundary against oversized payloads before anything
// reaches the service. Field-level semantics (non-empty, email syntax) are
// enforced by the report model.
const (
	maxShortField  = 255
	maxDescription = 65535
)

// SubmitReportRequest is the typed submission payload. Field names mirror
// the public API contract.
type SubmitReportRequest struct {
	SuspiciousAppName string `json:"suspiciousAppName"`
	VictimName        string `json:"victimName"`
	ContactInfo       string `json:"contactInfo"`
	DownloadSource    string `json:"downloadSource"`
	ThreatLevel       string `json:"threatLevel"`
	Description       string `json:"description"`
	EvidenceFileName  string `json:"evidenceFileName"`
}

// Normalize trims surrounding whitespace on every field.
func (r *SubmitReportRequest) Normalize() {
	r.SuspiciousAppName = strings.TrimSpace(r.SuspiciousAppName)
	r.VictimName = strings.TrimSpace(r.VictimName)
	r.ContactInfo = strings.TrimSpace(r.ContactInfo)
	r.DownloadSource = strings.TrimSpace(r.DownloadSource)
	r.ThreatLevel = strings.TrimSpace(r.ThreatLevel)
	r.Description = strings.TrimSpace(r.Description)
	r.EvidenceFileName = strings.TrimSpace(r.EvidenceFileName)
}

// Validate enforces size limits only.
func (r *SubmitReportRequest) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"suspiciousAppName", r.SuspiciousAppName, maxShortField},
		{"victimName", r.VictimName, maxShortField},
		{"contactInfo", r.ContactInfo, maxShortField},
		{"downloadSource", r.DownloadSource, maxShortField},
		{"threatLevel", r.ThreatLevel, maxShortField},
		{"evidenceFileName", r.EvidenceFileName, maxShortField},
		{"description", r.Description, maxDescription},
	} {
		if len(f.value) > f.max {
			return dErrors.Newf(dErrors.CodeInvalidInput, "%s is too long", f.name)
		}
	}
	return nil
}

// Input converts the request into the service-layer input.
func (r *SubmitReportRequest) Input() service.CreateReportInput {
	return service.CreateReportInput{
		SuspiciousAppName: r.SuspiciousAppName,
		VictimName:        r.VictimName,
		ContactInfo:       r.ContactInfo,
		DownloadSource:    r.DownloadSource,
		ThreatLevel:       r.ThreatLevel,
		Description:       r.Description,
		EvidenceFileName:  r.EvidenceFileName,
	}
}

// UpdateStatusRequest carries the target triage state.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
}
