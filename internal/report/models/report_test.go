package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "appguard/pkg/domain-errors"
)

func validArgs() (string, string, string, string, string, string, string, string) {
	return "FakeBank Pro", "Jane Roe", "jane@example.com", "http://apk.example.com/fakebank.apk",
		"high", "Asks for card PIN on launch", "", "alice"
}

func TestNewReportDefaults(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	app, victim, contact, source, threat, desc, evidence, submitter := validArgs()

	r, err := NewReport(app, victim, contact, source, threat, desc, evidence, submitter, now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, now, r.SubmittedAt)
	assert.Equal(t, "alice", r.SubmitterIdentity)
	assert.Zero(t, r.ID, "ID assignment belongs to the store")
}

func TestNewReportNamesFirstInvalidField(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name  string
		mod   func(args *[8]string)
		field string
	}{
		{"empty app name", func(a *[8]string) { a[0] = "" }, "suspiciousAppName"},
		{"empty victim name", func(a *[8]string) { a[1] = "" }, "victimName"},
		{"empty contact", func(a *[8]string) { a[2] = "" }, "contactInfo"},
		{"malformed contact", func(a *[8]string) { a[2] = "not-an-email" }, "contactInfo"},
		{"empty download source", func(a *[8]string) { a[3] = "" }, "downloadSource"},
		{"empty threat level", func(a *[8]string) { a[4] = "" }, "threatLevel"},
		{"empty description", func(a *[8]string) { a[5] = "" }, "description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var args [8]string
			args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7] = validArgs()
			tc.mod(&args)

			_, err := NewReport(args[0], args[1], args[2], args[3], args[4], args[5], args[6], args[7], now)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, raw := range []string{"", "closed", "PENDING", "done"} {
		_, err := ParseStatus(raw)
		require.Error(t, err, "status %q", raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	}
}
