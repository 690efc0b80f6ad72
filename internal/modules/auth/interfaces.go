package auth

import (
	"context"

	"surveyhub/internal/domain"
	"surveyhub/internal/pkg/jwt"
)

// UserRepositoryInterface — only the methods the session manager uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	AddRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
}

type RoleRepositoryInterface interface {
	GetByName(ctx context.Context, name string) (*domain.Role, error)
}

// RefreshTokenRepositoryInterface — the ledger of refresh-token records.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	GetActiveByUserID(ctx context.Context, userID int64) ([]domain.RefreshToken, error)
	Update(ctx context.Context, t *domain.RefreshToken) error
	RevokeAllForUser(ctx context.Context, userID int64, reason, revokedByIP string) error
}

type tokenSigner interface {
	Issue(user *domain.User, roles []string) (string, error)
	Verify(token string) (*jwt.Claims, error)
}
