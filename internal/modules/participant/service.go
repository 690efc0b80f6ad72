package participant

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"surveyhub/internal/domain"
)

// Service holds the participant-profile business logic.
type Service struct {
	participants RepositoryInterface
}

func NewService(participants RepositoryInterface) *Service {
	return &Service{participants: participants}
}

// Register creates the profile for a user; one profile per user.
func (s *Service) Register(ctx context.Context, userID int64, req RegisterRequest) (*domain.Participant, error) {
	_, err := s.participants.GetByUserID(ctx, userID)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &domain.Participant{
		UserID:          userID,
		ExperienceLevel: req.ExperienceLevel,
		Rating:          req.Rating,
		IsActive:        req.IsActive,
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Participant, error) {
	p, err := s.participants.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Participant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.ExperienceLevel = req.ExperienceLevel
	p.Rating = req.Rating
	p.IsActive = req.IsActive

	if err := s.participants.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.participants.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Participant, int64, error) {
	return s.participants.List(ctx, page, limit)
}

func (s *Service) AddSkill(ctx context.Context, participantID int64, req AddSkillRequest) (*domain.ParticipantSkill, error) {
	if _, err := s.GetByID(ctx, participantID); err != nil {
		return nil, err
	}
	if req.Proficiency < 1 || req.Proficiency > 5 {
		return nil, ErrInvalidSkill
	}

	skill := &domain.ParticipantSkill{
		ParticipantID: participantID,
		SkillName:     req.SkillName,
		Proficiency:   req.Proficiency,
	}
	if err := s.participants.AddSkill(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func (s *Service) RemoveSkill(ctx context.Context, participantID, skillID int64) error {
	if _, err := s.GetByID(ctx, participantID); err != nil {
		return err
	}
	return s.participants.DeleteSkill(ctx, participantID, skillID)
}
