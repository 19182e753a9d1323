package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
)

// ErrAlreadyRegistered is returned when the unique (event, volunteer) pair
// constraint is violated on insert.
var ErrAlreadyRegistered = errors.New("volunteer is already registered for this event")

// ApprovalDecision carries everything a single approval transition writes.
type ApprovalDecision struct {
	ApproverID uuid.UUID
	// ApprovedHours nil means "use the recorded hours attended".
	ApprovedHours *int
	Notes         *string
	DecidedAt     time.Time
}

type ParticipationRepository interface {
	Create(ctx context.Context, p *model.EventParticipation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.EventParticipation, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindPending(ctx context.Context, filter dto.PendingApprovalFilter) ([]*model.EventParticipation, error)
	FindApproved(ctx context.Context) ([]*model.EventParticipation, error)

	// Approve and Reject only touch rows currently pending; they report the
	// number of rows actually updated.
	Approve(ctx context.Context, id uuid.UUID, d ApprovalDecision) (int64, error)
	Reject(ctx context.Context, id uuid.UUID, d ApprovalDecision) (int64, error)
	BulkApprove(ctx context.Context, ids []uuid.UUID, d ApprovalDecision) (int64, error)
	// Reset moves an approved or rejected row back to pending and clears the
	// recorded decision. Resetting an already-pending row affects zero rows.
	Reset(ctx context.Context, id uuid.UUID) (int64, error)

	// UpdateAttendance records a participation status and attended hours and
	// puts the row back under review.
	UpdateAttendance(ctx context.Context, id uuid.UUID, status string, hoursAttended int) (int64, error)
}

type participationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepository{db: db}
}

func (r *participationRepository) Create(ctx context.Context, p *model.EventParticipation) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the (event_id, volunteer_id) pair
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyRegistered
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyRegistered
		}
	}
	return err
}

func (r *participationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.EventParticipation, error) {
	var p model.EventParticipation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Volunteer").
		Preload("ApprovedBy").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *participationRepository) FindPending(ctx context.Context, filter dto.PendingApprovalFilter) ([]*model.EventParticipation, error) {
	var rows []*model.EventParticipation

	query := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Volunteer").
		Where("approval_status = ?", model.ApprovalPending)

	if filter.EventID != "" {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.Reviewable {
		query = query.Where("hours_attended > 0")
	}

	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *participationRepository) FindApproved(ctx context.Context) ([]*model.EventParticipation, error) {
	var rows []*model.EventParticipation
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Volunteer").
		Preload("ApprovedBy").
		Where("approval_status = ?", model.ApprovalApproved).
		Order("approved_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *participationRepository) Approve(ctx context.Context, id uuid.UUID, d ApprovalDecision) (int64, error) {
	updates := map[string]interface{}{
		"approval_status": model.ApprovalApproved,
		"approved_by_id":  d.ApproverID,
		"approved_at":     d.DecidedAt,
		"approval_notes":  d.Notes,
	}
	if d.ApprovedHours != nil {
		updates["approved_hours"] = *d.ApprovedHours
	} else {
		updates["approved_hours"] = gorm.Expr("hours_attended")
	}

	res := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id = ? AND approval_status = ?", id, model.ApprovalPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *participationRepository) Reject(ctx context.Context, id uuid.UUID, d ApprovalDecision) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id = ? AND approval_status = ?", id, model.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status": model.ApprovalRejected,
			"approved_by_id":  d.ApproverID,
			"approved_at":     d.DecidedAt,
			"approval_notes":  d.Notes,
			"approved_hours":  nil,
		})
	return res.RowsAffected, res.Error
}

func (r *participationRepository) BulkApprove(ctx context.Context, ids []uuid.UUID, d ApprovalDecision) (int64, error) {
	// One statement over the whole id set; non-pending rows are left alone
	// and the affected count reflects what actually changed.
	res := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id IN ? AND approval_status = ?", ids, model.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status": model.ApprovalApproved,
			"approved_hours":  gorm.Expr("hours_attended"),
			"approved_by_id":  d.ApproverID,
			"approved_at":     d.DecidedAt,
			"approval_notes":  d.Notes,
		})
	return res.RowsAffected, res.Error
}

func (r *participationRepository) Reset(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id = ? AND approval_status IN ?", id, []string{model.ApprovalApproved, model.ApprovalRejected}).
		Updates(map[string]interface{}{
			"approval_status": model.ApprovalPending,
			"approved_hours":  nil,
			"approved_by_id":  nil,
			"approved_at":     nil,
			"approval_notes":  nil,
		})
	return res.RowsAffected, res.Error
}

func (r *participationRepository) UpdateAttendance(ctx context.Context, id uuid.UUID, status string, hoursAttended int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          status,
			"hours_attended":  hoursAttended,
			"approval_status": model.ApprovalPending,
			"approved_hours":  nil,
			"approved_by_id":  nil,
			"approved_at":     nil,
			"approval_notes":  nil,
		})
	return res.RowsAffected, res.Error
}
