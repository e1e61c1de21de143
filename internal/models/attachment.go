package models

import "time"

// Attachment is metadata for a file tied to an application (resume, cover
// letter, offer PDF). The blob itself lives on disk under Path; only the
// metadata syncs.
type Attachment struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	ApplicationID *string      `gorm:"size:36;index" json:"application_id,omitempty"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"-"`

	FileName  string `gorm:"size:255" json:"file_name"`
	MimeType  string `gorm:"size:100" json:"mime_type"`
	SizeBytes int64  `gorm:"default:0" json:"size_bytes"`
	// Path is the local blob location. It is machine-specific and never
	// part of the remote contract.
	Path string `gorm:"size:500" json:"path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncMeta
}

// TableName specifies the table name for GORM.
func (Attachment) TableName() string {
	return "attachments"
}

// GetID returns the attachment's primary key.
func (a *Attachment) GetID() string {
	return a.ID
}

// Meta exposes the embedded sync bookkeeping.
func (a *Attachment) Meta() *SyncMeta {
	return &a.SyncMeta
}

// SyncValues returns the candidate payload values by column name. Path is a
// candidate here but absent from the allow-list, so it never syncs.
func (a *Attachment) SyncValues() map[string]any {
	return map[string]any{
		"application_id": a.ApplicationID,
		"file_name":      a.FileName,
		"mime_type":      a.MimeType,
		"size_bytes":     a.SizeBytes,
		"path":           a.Path,
	}
}
