package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/model"
)

type RoleRepository interface {
	FindDefinitionByName(ctx context.Context, name string) (*model.RoleDefinition, error)
	ListDefinitions(ctx context.Context) ([]*model.RoleDefinition, error)
	Assign(ctx context.Context, ur *model.UserRole) error
	Revoke(ctx context.Context, volunteerID uuid.UUID, roleID uint) error
	FindActiveAssignments(ctx context.Context, volunteerID uuid.UUID) ([]*model.UserRole, error)
	// HighestLevel returns the highest hierarchy level among the volunteer's
	// active, unexpired role assignments; 0 when there are none.
	HighestLevel(ctx context.Context, volunteerID uuid.UUID, now time.Time) (int, error)
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindDefinitionByName(ctx context.Context, name string) (*model.RoleDefinition, error) {
	var def model.RoleDefinition
	if err := r.db.WithContext(ctx).First(&def, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *roleRepository) ListDefinitions(ctx context.Context) ([]*model.RoleDefinition, error) {
	var defs []*model.RoleDefinition
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("level DESC").
		Find(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *roleRepository) Assign(ctx context.Context, ur *model.UserRole) error {
	return r.db.WithContext(ctx).Create(ur).Error
}

func (r *roleRepository) Revoke(ctx context.Context, volunteerID uuid.UUID, roleID uint) error {
	return r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("volunteer_id = ? AND role_id = ? AND is_active = ?", volunteerID, roleID, true).
		Update("is_active", false).Error
}

func (r *roleRepository) FindActiveAssignments(ctx context.Context, volunteerID uuid.UUID) ([]*model.UserRole, error) {
	var assignments []*model.UserRole
	if err := r.db.WithContext(ctx).
		Preload("Role").
		Where("volunteer_id = ? AND is_active = ?", volunteerID, true).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *roleRepository) HighestLevel(ctx context.Context, volunteerID uuid.UUID, now time.Time) (int, error) {
	var level *int
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Select("MAX(role_definitions.level)").
		Joins("JOIN role_definitions ON role_definitions.id = user_roles.role_id").
		Where("user_roles.volunteer_id = ? AND user_roles.is_active = ?", volunteerID, true).
		Where("user_roles.expires_at IS NULL OR user_roles.expires_at > ?", now).
		Scan(&level).Error
	if err != nil {
		return 0, err
	}
	if level == nil {
		return 0, nil
	}
	return *level, nil
}
