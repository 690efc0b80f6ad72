package domain

import "time"

type ConductorType string

const (
	ConductorIndividual ConductorType = "individual"
	ConductorInstitute  ConductorType = "institute"
	ConductorCompany    ConductorType = "company"
)

// Conductor is the survey-author profile attached to a user account.
type Conductor struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Name          string        `json:"name"`
	ConductorType ConductorType `json:"conductor_type" gorm:"size:20"`
	Description   string        `json:"description,omitempty"`
	ContactEmail  string        `json:"contact_email"`
	ContactPhone  string        `json:"contact_phone,omitempty"`
	Address       string        `json:"address,omitempty"`
	IsVerified    bool          `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
