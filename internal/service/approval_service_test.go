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

func activeApprover() *model.Volunteer {
	return &model.Volunteer{
		ID:       uuid.New(),
		FullName: "Head Coordinator",
		Email:    "head@example.com",
		IsActive: true,
	}
}

func pendingParticipation(hours int) *model.EventParticipation {
	return &model.EventParticipation{
		ID:             uuid.New(),
		EventID:        uuid.New(),
		VolunteerID:    uuid.New(),
		Status:         model.ParticipationPresent,
		HoursAttended:  hours,
		ApprovalStatus: model.ApprovalPending,
	}
}

func TestApproveHoursDefaultsToAttendedHours(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	participations := newFakeParticipationRepo(row)
	notifications := &fakeNotificationService{}
	svc := NewApprovalService(participations, newFakeVolunteerRepo(approver), notifications)

	resp, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, nil, "good work")

	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, resp.ApprovalStatus)
	require.NotNil(t, row.ApprovedHours)
	assert.Equal(t, 6, *row.ApprovedHours)
	require.NotNil(t, row.ApprovedByID)
	assert.Equal(t, approver.ID, *row.ApprovedByID)
	assert.NotNil(t, row.ApprovedAt)
	require.Len(t, notifications.sent, 1)
	assert.Equal(t, model.NotificationHoursApproved, notifications.sent[0].Type)
	assert.Equal(t, row.VolunteerID, notifications.sent[0].VolunteerID)
}

func TestApproveHoursWithOverride(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	override := 4
	resp, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, &override, "")

	require.NoError(t, err)
	require.NotNil(t, resp.ApprovedHours)
	assert.Equal(t, 4, *resp.ApprovedHours)
}

func TestApproveHoursRejectsOutOfRangeBeforeAnyMutation(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	for _, hours := range []int{-1, 25} {
		h := hours
		_, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, &h, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
	assert.Equal(t, model.ApprovalPending, row.ApprovalStatus)
	assert.Nil(t, row.ApprovedHours)
}

func TestApproveHoursAlreadyDecidedIsConflict(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	row.ApprovalStatus = model.ApprovalApproved
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	_, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, nil, "")

	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestApproveHoursMissingParticipationIsNotFound(t *testing.T) {
	approver := activeApprover()
	svc := NewApprovalService(newFakeParticipationRepo(), newFakeVolunteerRepo(approver), nil)

	_, err := svc.ApproveHours(context.Background(), approver.ID, uuid.New(), nil, "")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestApproveHoursUnknownCaller(t *testing.T) {
	row := pendingParticipation(6)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(), nil)

	_, err := svc.ApproveHours(context.Background(), uuid.New(), row.ID, nil, "")

	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
	assert.Equal(t, model.ApprovalPending, row.ApprovalStatus)
}

func TestApproveHoursInactiveCaller(t *testing.T) {
	approver := activeApprover()
	approver.IsActive = false
	row := pendingParticipation(6)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	_, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, nil, "")

	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
}

func TestApproveHoursSanitizesNotes(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(3)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	_, err := svc.ApproveHours(context.Background(), approver.ID, row.ID, nil, `<script>alert(1)</script>well done`)

	require.NoError(t, err)
	require.NotNil(t, row.ApprovalNotes)
	assert.Equal(t, "well done", *row.ApprovalNotes)
}

func TestRejectHoursRequiresNotes(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	for _, notes := range []string{"", "   ", "<b></b>"} {
		_, err := svc.RejectHours(context.Background(), approver.ID, row.ID, notes)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
	assert.Equal(t, model.ApprovalPending, row.ApprovalStatus)
}

func TestRejectHoursClearsApprovedHours(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	notifications := &fakeNotificationService{}
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), notifications)

	resp, err := svc.RejectHours(context.Background(), approver.ID, row.ID, "no sign-in record")

	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, resp.ApprovalStatus)
	assert.Nil(t, row.ApprovedHours)
	require.NotNil(t, row.ApprovalNotes)
	assert.Equal(t, "no sign-in record", *row.ApprovalNotes)
	require.Len(t, notifications.sent, 1)
	assert.Equal(t, model.NotificationHoursRejected, notifications.sent[0].Type)
}

func TestRejectHoursOnApprovedRowIsConflict(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	row.ApprovalStatus = model.ApprovalApproved
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), nil)

	_, err := svc.RejectHours(context.Background(), approver.ID, row.ID, "changed my mind")

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, model.ApprovalApproved, row.ApprovalStatus)
}

func TestBulkApproveSkipsNonPendingRows(t *testing.T) {
	approver := activeApprover()
	pending1 := pendingParticipation(4)
	pending2 := pendingParticipation(2)
	decided := pendingParticipation(8)
	decided.ApprovalStatus = model.ApprovalRejected
	svc := NewApprovalService(newFakeParticipationRepo(pending1, pending2, decided), newFakeVolunteerRepo(approver), nil)

	count, err := svc.BulkApproveHours(context.Background(), approver.ID,
		[]uuid.UUID{pending1.ID, pending2.ID, decided.ID}, "")

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, model.ApprovalApproved, pending1.ApprovalStatus)
	assert.Equal(t, model.ApprovalApproved, pending2.ApprovalStatus)
	assert.Equal(t, model.ApprovalRejected, decided.ApprovalStatus)

	require.NotNil(t, pending1.ApprovedHours)
	assert.Equal(t, 4, *pending1.ApprovedHours)
	require.NotNil(t, pending2.ApprovedHours)
	assert.Equal(t, 2, *pending2.ApprovedHours)
}

func TestBulkApproveEmptySelection(t *testing.T) {
	approver := activeApprover()
	svc := NewApprovalService(newFakeParticipationRepo(), newFakeVolunteerRepo(approver), nil)

	_, err := svc.BulkApproveHours(context.Background(), approver.ID, nil, "")

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestResetApprovalClearsDecision(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	hours := 6
	decidedAt := time.Now().UTC()
	notes := "approved at camp"
	row.ApprovalStatus = model.ApprovalApproved
	row.ApprovedHours = &hours
	row.ApprovedByID = &approver.ID
	row.ApprovedAt = &decidedAt
	row.ApprovalNotes = &notes
	notifications := &fakeNotificationService{}
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), notifications)

	resp, err := svc.ResetApproval(context.Background(), approver.ID, row.ID)

	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, resp.ApprovalStatus)
	assert.Nil(t, row.ApprovedHours)
	assert.Nil(t, row.ApprovedByID)
	assert.Nil(t, row.ApprovedAt)
	assert.Nil(t, row.ApprovalNotes)
	require.Len(t, notifications.sent, 1)
	assert.Equal(t, model.NotificationHoursReset, notifications.sent[0].Type)
}

func TestResetApprovalOnPendingRowIsNoOp(t *testing.T) {
	approver := activeApprover()
	row := pendingParticipation(6)
	notifications := &fakeNotificationService{}
	svc := NewApprovalService(newFakeParticipationRepo(row), newFakeVolunteerRepo(approver), notifications)

	resp, err := svc.ResetApproval(context.Background(), approver.ID, row.ID)

	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, resp.ApprovalStatus)
	assert.Empty(t, notifications.sent)
}

func TestResetApprovalMissingRow(t *testing.T) {
	approver := activeApprover()
	svc := NewApprovalService(newFakeParticipationRepo(), newFakeVolunteerRepo(approver), nil)

	_, err := svc.ResetApproval(context.Background(), approver.ID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPendingApprovalsFiltersReviewable(t *testing.T) {
	approver := activeApprover()
	withHours := pendingParticipation(5)
	zeroHours := pendingParticipation(0)
	svc := NewApprovalService(newFakeParticipationRepo(withHours, zeroHours), newFakeVolunteerRepo(approver), nil)

	all, err := svc.GetPendingApprovals(context.Background(), dto.PendingApprovalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	reviewable, err := svc.GetPendingApprovals(context.Background(), dto.PendingApprovalFilter{Reviewable: true})
	require.NoError(t, err)
	require.Len(t, reviewable, 1)
	assert.Equal(t, withHours.ID, reviewable[0].ID)
}
