package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncStatusCaptureEligible(t *testing.T) {
	assert.True(t, SyncStatusPending.CaptureEligible())
	assert.True(t, SyncStatusSynced.CaptureEligible())
	assert.True(t, SyncStatusError.CaptureEligible())
	assert.False(t, SyncStatusLocalOnly.CaptureEligible())
}

func TestChangeEventIsSynced(t *testing.T) {
	event := ChangeEvent{}
	assert.False(t, event.IsSynced())

	now := time.Now()
	event.SyncedAt = &now
	assert.True(t, event.IsSynced())
}

func TestSyncValuesCoverAllowlistShapes(t *testing.T) {
	company := &Company{Name: "Acme", Website: "https://acme.test"}
	values := company.SyncValues()
	assert.Equal(t, "Acme", values["name"])
	assert.Equal(t, "https://acme.test", values["website"])
	assert.Contains(t, values, "notes")

	att := &Attachment{FileName: "resume.pdf", Path: "/tmp/resume.pdf"}
	values = att.SyncValues()
	assert.Equal(t, "resume.pdf", values["file_name"])
	// Path is a candidate value; the allow-list decides whether it syncs.
	assert.Equal(t, "/tmp/resume.pdf", values["path"])
}
