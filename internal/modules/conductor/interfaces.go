package conductor

import (
	"context"

	"surveyhub/internal/domain"
)

type RepositoryInterface interface {
	Create(ctx context.Context, c *domain.Conductor) error
	GetByID(ctx context.Context, id int64) (*domain.Conductor, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Conductor, error)
	Update(ctx context.Context, c *domain.Conductor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, limit int) ([]domain.Conductor, int64, error)
}
