package participant

import (
	"context"

	"surveyhub/internal/domain"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *domain.Participant) error
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Participant, error)
	Update(ctx context.Context, p *domain.Participant) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, limit int) ([]domain.Participant, int64, error)
	AddSkill(ctx context.Context, s *domain.ParticipantSkill) error
	DeleteSkill(ctx context.Context, participantID, skillID int64) error
}
