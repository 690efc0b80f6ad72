package conductor

import "surveyhub/internal/domain"

type RegisterRequest struct {
	Name          string               `json:"name" binding:"required,min=2"`
	ConductorType domain.ConductorType `json:"conductorType" binding:"required,oneof=individual institute company"`
	Description   string               `json:"description,omitempty"`
	ContactEmail  string               `json:"contactEmail" binding:"required,email"`
	ContactPhone  string               `json:"contactPhone,omitempty"`
	Address       string               `json:"address,omitempty"`
}

type UpdateRequest struct {
	Name         string `json:"name,omitempty"`
	Description  string `json:"description,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Address      string `json:"address,omitempty"`
}
