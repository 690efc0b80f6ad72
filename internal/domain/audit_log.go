package domain

import "time"

// AuditLog records access to sensitive endpoints. Writes are best-effort and
// must never block or fail a request.
type AuditLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`

	EntityName string `json:"entity_name" gorm:"size:100"`
	EntityID   string `json:"entity_id" gorm:"size:255"`
	Action     string `json:"action" gorm:"size:50"`

	UserID   string `json:"user_id,omitempty" gorm:"size:50"`
	Username string `json:"username,omitempty" gorm:"size:50"`

	IPAddress      string `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent      string `json:"user_agent,omitempty" gorm:"size:500"`
	AdditionalInfo string `json:"additional_info,omitempty" gorm:"size:500"`
}
