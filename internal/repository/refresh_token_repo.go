package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"surveyhub/internal/domain"
)

// RefreshTokenRepository is the ledger of refresh-token records. GetByToken is
// the hot path for every refresh and resolves through the unique index on the
// token value; no scans.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RefreshTokenRepository) GetActiveByUserID(ctx context.Context, userID int64) ([]domain.RefreshToken, error) {
	now := time.Now().UTC()
	var tokens []domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND revoked_at IS NULL AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&tokens).Error
	return tokens, err
}

// Update persists revocation fields. The revoked_at guard keeps revocation
// monotonic at the storage layer.
func (r *RefreshTokenRepository) Update(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", t.ID).
		Updates(map[string]any{
			"revoked_at":        t.RevokedAt,
			"revoked_reason":    t.RevokedReason,
			"revoked_by_ip":     t.RevokedByIP,
			"replaced_by_token": t.ReplacedByToken,
		}).Error
}

// RevokeAllForUser marks every not-yet-revoked token for the user as revoked
// in a single statement. Used by login to invalidate all standing sessions.
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64, reason, revokedByIP string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Updates(map[string]any{
			"revoked_at":     now,
			"revoked_reason": reason,
			"revoked_by_ip":  revokedByIP,
		}).Error
}

// DeleteExpired reclaims storage for tokens past expiry. This is maintenance,
// not a semantic transition: revoked-but-unexpired tokens are untouched.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
