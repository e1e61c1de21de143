package models

import "time"

// StoreStats holds aggregate statistics about the store.
type StoreStats struct {
	TotalCompanies    int64 `json:"total_companies"`
	TotalContacts     int64 `json:"total_contacts"`
	TotalApplications int64 `json:"total_applications"`
	TotalReminders    int64 `json:"total_reminders"`

	// PendingEvents is the outbox backlog; FailedEvents counts pending
	// events with at least one failed push attempt.
	PendingEvents int64 `json:"pending_events"`
	FailedEvents  int64 `json:"failed_events"`

	DBSizeBytes int64     `json:"db_size_bytes"`
	LastUpdated time.Time `json:"last_updated"`
}
