package domain

import "time"

// RefreshToken is the durable record behind a standing login session.
//
// Security notes:
// - Token is an opaque value from a cryptographically secure source
//   (64 random bytes before encoding), looked up via a unique index.
// - On refresh we rotate: the presented token is revoked and ReplacedByToken
//   points at its successor, forming a linked rotation chain.
// - Revocation is terminal. A revoked token stays queryable as inactive until
//   the expiry sweeper reclaims it; deletion is storage reclamation only.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	Token string `json:"-" gorm:"size:128;uniqueIndex;not null"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`

	RevokedReason   string `json:"revoked_reason,omitempty" gorm:"size:500"`
	ReplacedByToken string `json:"-" gorm:"size:128"`

	CreatedByIP string `json:"created_by_ip,omitempty" gorm:"size:45"`
	RevokedByIP string `json:"revoked_by_ip,omitempty" gorm:"size:45"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// Revoke marks the token permanently inactive. It never unsets a prior
// revocation.
func (t *RefreshToken) Revoke(now time.Time, reason, revokedByIP, replacedBy string) {
	if t.RevokedAt != nil {
		return
	}
	at := now
	t.RevokedAt = &at
	t.RevokedReason = reason
	t.RevokedByIP = revokedByIP
	t.ReplacedByToken = replacedBy
}
