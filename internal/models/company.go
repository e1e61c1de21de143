package models

import "time"

// Company is an employer the user is tracking.
type Company struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Name     string `gorm:"size:255;index" json:"name"`
	Website  string `gorm:"size:500" json:"website"`
	Industry string `gorm:"size:100" json:"industry"`
	Location string `gorm:"size:255" json:"location"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncMeta

	Contacts     []Contact     `gorm:"foreignKey:CompanyID" json:"contacts,omitempty"`
	Applications []Application `gorm:"foreignKey:CompanyID" json:"applications,omitempty"`
}

// TableName specifies the table name for GORM.
func (Company) TableName() string {
	return "companies"
}

// GetID returns the company's primary key.
func (c *Company) GetID() string {
	return c.ID
}

// Meta exposes the embedded sync bookkeeping.
func (c *Company) Meta() *SyncMeta {
	return &c.SyncMeta
}

// SyncValues returns the candidate payload values by column name.
func (c *Company) SyncValues() map[string]any {
	return map[string]any{
		"name":     c.Name,
		"website":  c.Website,
		"industry": c.Industry,
		"location": c.Location,
		"notes":    c.Notes,
	}
}
