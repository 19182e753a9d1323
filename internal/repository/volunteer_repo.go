package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
)

type VolunteerRepository interface {
	Create(ctx context.Context, v *model.Volunteer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Volunteer, error)
	FindByEmail(ctx context.Context, email string) (*model.Volunteer, error)
	FindAll(ctx context.Context, filter dto.VolunteerFilter) ([]*model.Volunteer, int64, error)
	Update(ctx context.Context, v *model.Volunteer) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type volunteerRepository struct {
	db *gorm.DB
}

func NewVolunteerRepository(db *gorm.DB) VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) Create(ctx context.Context, v *model.Volunteer) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *volunteerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Roles.Role").
		First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) FindByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	var v model.Volunteer
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Roles.Role").
		First(&v, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) FindAll(ctx context.Context, filter dto.VolunteerFilter) ([]*model.Volunteer, int64, error) {
	var volunteers []*model.Volunteer
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Volunteer{})

	if !filter.Inactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR roll_number ILIKE ? OR email ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Roles").
		Preload("Roles.Role").
		Order("full_name ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&volunteers).Error; err != nil {
		return nil, 0, err
	}

	return volunteers, total, nil
}

func (r *volunteerRepository) Update(ctx context.Context, v *model.Volunteer) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *volunteerRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Volunteer{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
