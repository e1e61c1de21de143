package models

import "time"

// Contact is a person at a company (recruiter, hiring manager, referral).
type Contact struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	CompanyID *string  `gorm:"size:36;index" json:"company_id,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID" json:"-"`

	Name  string `gorm:"size:255;index" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:50" json:"phone"`
	Role  string `gorm:"size:100" json:"role"`
	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	SyncMeta
}

// TableName specifies the table name for GORM.
func (Contact) TableName() string {
	return "contacts"
}

// GetID returns the contact's primary key.
func (c *Contact) GetID() string {
	return c.ID
}

// Meta exposes the embedded sync bookkeeping.
func (c *Contact) Meta() *SyncMeta {
	return &c.SyncMeta
}

// SyncValues returns the candidate payload values by column name.
func (c *Contact) SyncValues() map[string]any {
	return map[string]any{
		"company_id": c.CompanyID,
		"name":       c.Name,
		"email":      c.Email,
		"phone":      c.Phone,
		"role":       c.Role,
		"notes":      c.Notes,
	}
}
