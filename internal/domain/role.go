package domain

// Role is static reference data seeded at startup and never mutated by
// request flow. Users reference roles through the user_roles join table.
type Role struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

const (
	RoleAdmin         = "Admin"
	RoleUser          = "User"
	RoleConducting    = "Conducting"
	RoleParticipating = "Participating"
)

// SeedRoleNames is the full role set for a fresh database.
func SeedRoleNames() []string {
	return []string{RoleAdmin, RoleUser, RoleConducting, RoleParticipating}
}
