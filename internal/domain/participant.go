package domain

import "time"

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Participant is the survey-taker profile attached to a user account.
type Participant struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	ExperienceLevel ExperienceLevel `json:"experience_level" gorm:"size:20"`
	Rating          float64         `json:"rating"`
	IsActive        bool            `json:"is_active"`

	Skills []ParticipantSkill `json:"skills,omitempty" gorm:"foreignKey:ParticipantID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParticipantSkill is a self-reported skill on a 1-5 proficiency scale.
type ParticipantSkill struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	ParticipantID int64  `json:"participant_id" gorm:"index;not null"`
	SkillName     string `json:"skill_name" gorm:"size:100;not null"`
	Proficiency   int    `json:"proficiency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
