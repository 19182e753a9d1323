package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	FindAll(ctx context.Context, filter dto.EventFilter) ([]*model.Event, int64, error)
	Update(ctx context.Context, e *model.Event) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("CreatedBy").
		First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter dto.EventFilter) ([]*model.Event, int64, error) {
	var events []*model.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Event{}).Where("is_active = ?", true)

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Upcoming {
		query = query.Where("start_date >= ?", time.Now().UTC())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Category").
		Preload("CreatedBy").
		Order("start_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *eventRepository) CountParticipants(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
