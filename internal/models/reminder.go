package models

import "time"

// Reminder is a follow-up the user scheduled against an application.
type Reminder struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	ApplicationID *string      `gorm:"size:36;index" json:"application_id,omitempty"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"-"`

	Title     string    `gorm:"size:255" json:"title"`
	Notes     string    `gorm:"type:text" json:"notes"`
	DueAt     time.Time `gorm:"index" json:"due_at"`
	Completed bool      `gorm:"default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncMeta
}

// TableName specifies the table name for GORM.
func (Reminder) TableName() string {
	return "reminders"
}

// GetID returns the reminder's primary key.
func (r *Reminder) GetID() string {
	return r.ID
}

// Meta exposes the embedded sync bookkeeping.
func (r *Reminder) Meta() *SyncMeta {
	return &r.SyncMeta
}

// IsOverdue reports whether the reminder is incomplete and past due.
func (r *Reminder) IsOverdue(now time.Time) bool {
	return !r.Completed && r.DueAt.Before(now)
}

// SyncValues returns the candidate payload values by column name.
func (r *Reminder) SyncValues() map[string]any {
	return map[string]any{
		"application_id": r.ApplicationID,
		"title":          r.Title,
		"notes":          r.Notes,
		"due_at":         r.DueAt,
		"completed":      r.Completed,
	}
}
