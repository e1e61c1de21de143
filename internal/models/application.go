package models

import "time"

// Application stages. An application moves forward through the pipeline;
// rejected and accepted are terminal.
const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageRejected  = "rejected"
	StageAccepted  = "accepted"
)

// ValidStages returns every recognized stage value.
func ValidStages() []string {
	return []string{StageApplied, StageScreening, StageInterview, StageOffer, StageRejected, StageAccepted}
}

// IsTerminalStage reports whether a stage ends the pipeline.
func IsTerminalStage(stage string) bool {
	return stage == StageRejected || stage == StageAccepted
}

// Application is one job application at a company.
type Application struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	CompanyID *string  `gorm:"size:36;index" json:"company_id,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`

	Position    string     `gorm:"size:255;index" json:"position"`
	Stage       string     `gorm:"size:20;default:applied;index" json:"stage"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	SalaryRange string     `gorm:"size:100" json:"salary_range"`
	Location    string     `gorm:"size:255" json:"location"`
	URL         string     `gorm:"size:500" json:"url"`
	Notes       string     `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncMeta

	Reminders   []Reminder   `gorm:"foreignKey:ApplicationID" json:"reminders,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:ApplicationID" json:"attachments,omitempty"`
}

// TableName specifies the table name for GORM.
func (Application) TableName() string {
	return "applications"
}

// GetID returns the application's primary key.
func (a *Application) GetID() string {
	return a.ID
}

// Meta exposes the embedded sync bookkeeping.
func (a *Application) Meta() *SyncMeta {
	return &a.SyncMeta
}

// SyncValues returns the candidate payload values by column name.
func (a *Application) SyncValues() map[string]any {
	return map[string]any{
		"company_id":   a.CompanyID,
		"position":     a.Position,
		"stage":        a.Stage,
		"applied_at":   a.AppliedAt,
		"salary_range": a.SalaryRange,
		"location":     a.Location,
		"url":          a.URL,
		"notes":        a.Notes,
	}
}
