package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

type RoleService interface {
	ListDefinitions(ctx context.Context) ([]*model.RoleDefinition, error)
	AssignRole(ctx context.Context, assignerID uuid.UUID, req dto.AssignRoleRequest) error
	RevokeRole(ctx context.Context, req dto.RevokeRoleRequest) error
	// CallerLevel resolves the caller's highest active role level.
	CallerLevel(ctx context.Context, volunteerID uuid.UUID) (int, error)
}

type roleService struct {
	roleRepo      repository.RoleRepository
	volunteerRepo repository.VolunteerRepository
}

func NewRoleService(roleRepo repository.RoleRepository, volunteerRepo repository.VolunteerRepository) RoleService {
	return &roleService{
		roleRepo:      roleRepo,
		volunteerRepo: volunteerRepo,
	}
}

func (s *roleService) ListDefinitions(ctx context.Context) ([]*model.RoleDefinition, error) {
	return s.roleRepo.ListDefinitions(ctx)
}

func (s *roleService) AssignRole(ctx context.Context, assignerID uuid.UUID, req dto.AssignRoleRequest) error {
	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return fmt.Errorf("%w: invalid volunteer id", apperror.ErrInvalidInput)
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now().UTC()) {
		return fmt.Errorf("%w: expiry must be in the future", apperror.ErrInvalidInput)
	}

	if _, err := s.volunteerRepo.FindByID(ctx, volunteerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("failed to load volunteer: %w", err)
	}

	def, err := s.roleRepo.FindDefinitionByName(ctx, req.RoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown role %q", apperror.ErrInvalidInput, req.RoleName)
		}
		return fmt.Errorf("failed to load role definition: %w", err)
	}

	assignments, err := s.roleRepo.FindActiveAssignments(ctx, volunteerID)
	if err != nil {
		return fmt.Errorf("failed to load role assignments: %w", err)
	}
	now := time.Now().UTC()
	for _, a := range assignments {
		if a.RoleID == def.ID && !a.ExpiredAt(now) {
			return fmt.Errorf("%w: role is already assigned", apperror.ErrConflict)
		}
	}

	return s.roleRepo.Assign(ctx, &model.UserRole{
		VolunteerID:  volunteerID,
		RoleID:       def.ID,
		AssignedByID: &assignerID,
		ExpiresAt:    req.ExpiresAt,
		IsActive:     true,
	})
}

func (s *roleService) RevokeRole(ctx context.Context, req dto.RevokeRoleRequest) error {
	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return fmt.Errorf("%w: invalid volunteer id", apperror.ErrInvalidInput)
	}

	def, err := s.roleRepo.FindDefinitionByName(ctx, req.RoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown role %q", apperror.ErrInvalidInput, req.RoleName)
		}
		return fmt.Errorf("failed to load role definition: %w", err)
	}

	return s.roleRepo.Revoke(ctx, volunteerID, def.ID)
}

func (s *roleService) CallerLevel(ctx context.Context, volunteerID uuid.UUID) (int, error) {
	return s.roleRepo.HighestLevel(ctx, volunteerID, time.Now().UTC())
}
