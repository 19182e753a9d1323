package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/metrics"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

// Participation-level hour bounds. The DTO layer enforces the same range,
// but the two cannot be assumed to always run together.
const (
	minApprovableHours = 0
	maxApprovableHours = 24
)

type ApprovalService interface {
	GetPendingApprovals(ctx context.Context, filter dto.PendingApprovalFilter) ([]dto.ParticipationResponse, error)
	ApproveHours(ctx context.Context, callerID, participationID uuid.UUID, approvedHours *int, notes string) (*dto.ParticipationResponse, error)
	RejectHours(ctx context.Context, callerID, participationID uuid.UUID, notes string) (*dto.ParticipationResponse, error)
	BulkApproveHours(ctx context.Context, callerID uuid.UUID, participationIDs []uuid.UUID, notes string) (int64, error)
	ResetApproval(ctx context.Context, callerID, participationID uuid.UUID) (*dto.ParticipationResponse, error)
}

type approvalService struct {
	participationRepo repository.ParticipationRepository
	volunteerRepo     repository.VolunteerRepository
	notifications     NotificationService
	sanitizer         *bluemonday.Policy
}

func NewApprovalService(
	participationRepo repository.ParticipationRepository,
	volunteerRepo repository.VolunteerRepository,
	notifications NotificationService,
) ApprovalService {
	return &approvalService{
		participationRepo: participationRepo,
		volunteerRepo:     volunteerRepo,
		notifications:     notifications,
		sanitizer:         bluemonday.StrictPolicy(),
	}
}

// resolveApprover maps the caller identity onto an active volunteer profile.
// The approver is always self-resolved; callers cannot act as someone else.
func (s *approvalService) resolveApprover(ctx context.Context, callerID uuid.UUID) (*model.Volunteer, error) {
	approver, err := s.volunteerRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to resolve approver: %w", err)
	}
	if !approver.IsActive {
		return nil, apperror.ErrProfileNotFound
	}
	return approver, nil
}

func (s *approvalService) cleanNotes(notes string) *string {
	cleaned := strings.TrimSpace(s.sanitizer.Sanitize(notes))
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func (s *approvalService) GetPendingApprovals(ctx context.Context, filter dto.PendingApprovalFilter) ([]dto.ParticipationResponse, error) {
	rows, err := s.participationRepo.FindPending(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending approvals: %w", err)
	}

	responses := make([]dto.ParticipationResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.ToParticipationResponse(row))
	}
	return responses, nil
}

func (s *approvalService) ApproveHours(ctx context.Context, callerID, participationID uuid.UUID, approvedHours *int, notes string) (*dto.ParticipationResponse, error) {
	if approvedHours != nil && (*approvedHours < minApprovableHours || *approvedHours > maxApprovableHours) {
		return nil, fmt.Errorf("%w: approved hours must be between %d and %d",
			apperror.ErrInvalidInput, minApprovableHours, maxApprovableHours)
	}

	approver, err := s.resolveApprover(ctx, callerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.participationRepo.Approve(ctx, participationID, repository.ApprovalDecision{
		ApproverID:    approver.ID,
		ApprovedHours: approvedHours,
		Notes:         s.cleanNotes(notes),
		DecidedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve hours: %w", err)
	}
	if rows == 0 {
		return nil, s.zeroRowsError(ctx, participationID)
	}

	metrics.ApprovalDecisions.WithLabelValues("approved").Inc()

	updated, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload participation: %w", err)
	}

	s.notifyDecision(ctx, updated, model.NotificationHoursApproved,
		fmt.Sprintf("Your %d hour(s) for %q were approved.", valueOrAttended(updated), updated.Event.Name))

	resp := dto.ToParticipationResponse(updated)
	return &resp, nil
}

func (s *approvalService) RejectHours(ctx context.Context, callerID, participationID uuid.UUID, notes string) (*dto.ParticipationResponse, error) {
	cleaned := s.cleanNotes(notes)
	if cleaned == nil {
		return nil, fmt.Errorf("%w: rejection notes are required", apperror.ErrInvalidInput)
	}

	approver, err := s.resolveApprover(ctx, callerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.participationRepo.Reject(ctx, participationID, repository.ApprovalDecision{
		ApproverID: approver.ID,
		Notes:      cleaned,
		DecidedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reject hours: %w", err)
	}
	if rows == 0 {
		return nil, s.zeroRowsError(ctx, participationID)
	}

	metrics.ApprovalDecisions.WithLabelValues("rejected").Inc()

	updated, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload participation: %w", err)
	}

	s.notifyDecision(ctx, updated, model.NotificationHoursRejected,
		fmt.Sprintf("Your hours for %q were rejected: %s", updated.Event.Name, *cleaned))

	resp := dto.ToParticipationResponse(updated)
	return &resp, nil
}

func (s *approvalService) BulkApproveHours(ctx context.Context, callerID uuid.UUID, participationIDs []uuid.UUID, notes string) (int64, error) {
	if len(participationIDs) == 0 {
		return 0, fmt.Errorf("%w: no participations selected", apperror.ErrInvalidInput)
	}

	approver, err := s.resolveApprover(ctx, callerID)
	if err != nil {
		return 0, err
	}

	count, err := s.participationRepo.BulkApprove(ctx, participationIDs, repository.ApprovalDecision{
		ApproverID: approver.ID,
		Notes:      s.cleanNotes(notes),
		DecidedAt:  time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk approve hours: %w", err)
	}

	metrics.ApprovalDecisions.WithLabelValues("approved").Add(float64(count))
	if count < int64(len(participationIDs)) {
		zap.L().Info("bulk approval skipped non-pending rows",
			zap.Int("requested", len(participationIDs)),
			zap.Int64("updated", count))
	}

	return count, nil
}

func (s *approvalService) ResetApproval(ctx context.Context, callerID, participationID uuid.UUID) (*dto.ParticipationResponse, error) {
	if _, err := s.resolveApprover(ctx, callerID); err != nil {
		return nil, err
	}

	rows, err := s.participationRepo.Reset(ctx, participationID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset approval: %w", err)
	}

	current, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload participation: %w", err)
	}

	// rows == 0 on an already-pending row is a no-op, not an error.
	if rows > 0 {
		metrics.ApprovalDecisions.WithLabelValues("reset").Inc()
		s.notifyDecision(ctx, current, model.NotificationHoursReset,
			fmt.Sprintf("Your hours for %q are back under review.", current.Event.Name))
	}

	resp := dto.ToParticipationResponse(current)
	return &resp, nil
}

// zeroRowsError distinguishes a missing row from one that is simply not
// pending anymore.
func (s *approvalService) zeroRowsError(ctx context.Context, participationID uuid.UUID) error {
	exists, err := s.participationRepo.Exists(ctx, participationID)
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if !exists {
		return apperror.ErrNotFound
	}
	return fmt.Errorf("%w: participation is not pending review", apperror.ErrConflict)
}

func (s *approvalService) notifyDecision(ctx context.Context, p *model.EventParticipation, kind, body string) {
	if s.notifications == nil {
		return
	}
	err := s.notifications.Notify(ctx, &model.Notification{
		VolunteerID: p.VolunteerID,
		Type:        kind,
		Title:       "Volunteer hours update",
		Body:        body,
	})
	if err != nil {
		zap.L().Warn("failed to write notification", zap.Error(err))
	}
}

func valueOrAttended(p *model.EventParticipation) int {
	if p.ApprovedHours != nil {
		return *p.ApprovedHours
	}
	return p.HoursAttended
}
