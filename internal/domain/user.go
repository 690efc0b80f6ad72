package domain

import "time"

type User struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:20;uniqueIndex;not null"`
	Email        string `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`

	Roles []Role `json:"roles,omitempty" gorm:"many2many:user_roles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleNames flattens the membership set into the claim form used by the
// token signer.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
