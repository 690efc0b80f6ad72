package repository

import (
	"context"

	"gorm.io/gorm"

	"surveyhub/internal/domain"
)

type ConductorRepository struct {
	db *gorm.DB
}

func NewConductorRepository(db *gorm.DB) *ConductorRepository {
	return &ConductorRepository{db: db}
}

func (r *ConductorRepository) Create(ctx context.Context, c *domain.Conductor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ConductorRepository) GetByID(ctx context.Context, id int64) (*domain.Conductor, error) {
	var c domain.Conductor
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConductorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Conductor, error) {
	var c domain.Conductor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConductorRepository) Update(ctx context.Context, c *domain.Conductor) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ConductorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Conductor{}, id).Error
}

func (r *ConductorRepository) List(ctx context.Context, page, limit int) ([]domain.Conductor, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Conductor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var conductors []domain.Conductor
	err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&conductors).Error
	return conductors, total, err
}
