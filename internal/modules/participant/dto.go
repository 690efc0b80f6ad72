package participant

import "surveyhub/internal/domain"

type RegisterRequest struct {
	ExperienceLevel domain.ExperienceLevel `json:"experienceLevel" binding:"required,oneof=beginner intermediate advanced"`
	Rating          float64                `json:"rating"`
	IsActive        bool                   `json:"isActive"`
}

type UpdateRequest struct {
	ExperienceLevel domain.ExperienceLevel `json:"experienceLevel" binding:"required,oneof=beginner intermediate advanced"`
	Rating          float64                `json:"rating"`
	IsActive        bool                   `json:"isActive"`
}

type AddSkillRequest struct {
	SkillName   string `json:"skillName" binding:"required,min=1,max=100"`
	Proficiency int    `json:"proficiency" binding:"required,min=1,max=5"`
}
