package conductor

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"surveyhub/internal/domain"
)

// Service holds the conductor-profile business logic. Thin CRUD; profiles
// carry no lifecycle beyond create/read/update/delete.
type Service struct {
	conductors RepositoryInterface
}

func NewService(conductors RepositoryInterface) *Service {
	return &Service{conductors: conductors}
}

// Register creates the profile for a user; one profile per user.
func (s *Service) Register(ctx context.Context, userID int64, req RegisterRequest) (*domain.Conductor, error) {
	_, err := s.conductors.GetByUserID(ctx, userID)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &domain.Conductor{
		UserID:        userID,
		Name:          req.Name,
		ConductorType: req.ConductorType,
		Description:   req.Description,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		IsVerified:    false,
	}
	if err := s.conductors.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Conductor, error) {
	c, err := s.conductors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Conductor, error) {
	c, err := s.conductors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Conductor, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.ContactPhone != "" {
		c.ContactPhone = req.ContactPhone
	}
	if req.Address != "" {
		c.Address = req.Address
	}

	if err := s.conductors.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.conductors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Conductor, int64, error) {
	return s.conductors.List(ctx, page, limit)
}
