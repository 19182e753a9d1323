package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

func TestAssignRoleRejectsPastExpiry(t *testing.T) {
	volunteer := activeApprover()
	svc := NewRoleService(newFakeRoleRepo(), newFakeVolunteerRepo(volunteer))

	expired := time.Now().Add(-time.Hour)
	err := svc.AssignRole(context.Background(), uuid.New(), dto.AssignRoleRequest{
		VolunteerID: volunteer.ID.String(),
		RoleName:    model.RoleHead,
		ExpiresAt:   &expired,
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAssignRoleDuplicateActiveAssignment(t *testing.T) {
	volunteer := activeApprover()
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles, newFakeVolunteerRepo(volunteer))

	req := dto.AssignRoleRequest{VolunteerID: volunteer.ID.String(), RoleName: model.RoleHead}
	require.NoError(t, svc.AssignRole(context.Background(), uuid.New(), req))

	err := svc.AssignRole(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAssignRoleUnknownRole(t *testing.T) {
	volunteer := activeApprover()
	svc := NewRoleService(newFakeRoleRepo(), newFakeVolunteerRepo(volunteer))

	err := svc.AssignRole(context.Background(), uuid.New(), dto.AssignRoleRequest{
		VolunteerID: volunteer.ID.String(),
		RoleName:    "superuser",
	})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAssignRoleUnknownVolunteer(t *testing.T) {
	svc := NewRoleService(newFakeRoleRepo(), newFakeVolunteerRepo())

	err := svc.AssignRole(context.Background(), uuid.New(), dto.AssignRoleRequest{
		VolunteerID: uuid.New().String(),
		RoleName:    model.RoleHead,
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCallerLevelPicksHighestActiveRole(t *testing.T) {
	volunteer := activeApprover()
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles, newFakeVolunteerRepo(volunteer))

	assigner := uuid.New()
	require.NoError(t, svc.AssignRole(context.Background(), assigner,
		dto.AssignRoleRequest{VolunteerID: volunteer.ID.String(), RoleName: model.RoleVolunteer}))
	require.NoError(t, svc.AssignRole(context.Background(), assigner,
		dto.AssignRoleRequest{VolunteerID: volunteer.ID.String(), RoleName: model.RoleHead}))

	level, err := svc.CallerLevel(context.Background(), volunteer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LevelHead, level)
}

func TestCallerLevelIgnoresExpiredAssignments(t *testing.T) {
	volunteer := activeApprover()
	roles := newFakeRoleRepo()
	expired := time.Now().Add(-time.Hour)
	roles.assignments = append(roles.assignments, &model.UserRole{
		ID:          uuid.New(),
		VolunteerID: volunteer.ID,
		RoleID:      roles.definitions[model.RoleAdmin].ID,
		ExpiresAt:   &expired,
		IsActive:    true,
	})
	svc := NewRoleService(roles, newFakeVolunteerRepo(volunteer))

	level, err := svc.CallerLevel(context.Background(), volunteer.ID)
	require.NoError(t, err)
	assert.Zero(t, level)
}

func TestRevokeRoleDeactivatesAssignment(t *testing.T) {
	volunteer := activeApprover()
	roles := newFakeRoleRepo()
	svc := NewRoleService(roles, newFakeVolunteerRepo(volunteer))

	require.NoError(t, svc.AssignRole(context.Background(), uuid.New(),
		dto.AssignRoleRequest{VolunteerID: volunteer.ID.String(), RoleName: model.RoleHead}))
	require.NoError(t, svc.RevokeRole(context.Background(),
		dto.RevokeRoleRequest{VolunteerID: volunteer.ID.String(), RoleName: model.RoleHead}))

	level, err := svc.CallerLevel(context.Background(), volunteer.ID)
	require.NoError(t, err)
	assert.Zero(t, level)
}
