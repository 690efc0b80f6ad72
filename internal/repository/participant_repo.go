package repository

import (
	"context"

	"gorm.io/gorm"

	"surveyhub/internal/domain"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.WithContext(ctx).Preload("Skills").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.WithContext(ctx).Preload("Skills").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, p *domain.Participant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ParticipantRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("participant_id = ?", id).Delete(&domain.ParticipantSkill{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&domain.Participant{}, id).Error
}

func (r *ParticipantRepository) List(ctx context.Context, page, limit int) ([]domain.Participant, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Participant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var participants []domain.Participant
	err := r.db.WithContext(ctx).Preload("Skills").
		Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&participants).Error
	return participants, total, err
}

func (r *ParticipantRepository) AddSkill(ctx context.Context, s *domain.ParticipantSkill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ParticipantRepository) DeleteSkill(ctx context.Context, participantID, skillID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND participant_id = ?", skillID, participantID).
		Delete(&domain.ParticipantSkill{}).Error
}
