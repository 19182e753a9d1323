package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
)

// TrendRow is one month's raw aggregate as it comes back from Postgres.
// Months with no activity are absent; the service zero-fills them.
type TrendRow struct {
	Month           time.Time
	EventsCount     int64
	VolunteersCount int64
	HoursSum        int64
}

type ReportRepository interface {
	CountActiveVolunteers(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
	CountActiveEvents(ctx context.Context, now time.Time) (int64, error)
	// SumApprovedHours sums approved_hours over approved rows, optionally
	// restricted to rows created at or after since. Returns 0 for no rows.
	SumApprovedHours(ctx context.Context, since *time.Time) (int64, error)
	// CountPendingReviews counts pending rows with hours_attended > 0.
	// Zero-hour pending rows have nothing to approve and are excluded.
	CountPendingReviews(ctx context.Context) (int64, error)
	EventsEndingSoon(ctx context.Context, now time.Time, horizon time.Duration) ([]dto.EndingSoonEvent, error)
	MonthlyTrends(ctx context.Context, from time.Time) ([]TrendRow, error)
	TopEventsByImpact(ctx context.Context, limit int) ([]dto.EventImpact, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountActiveVolunteers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Volunteer{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) CountActiveEvents(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("is_active = ? AND start_date >= ?", true, now).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) SumApprovedHours(ctx context.Context, since *time.Time) (int64, error) {
	var sum int64
	query := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Select("COALESCE(SUM(approved_hours), 0)").
		Where("approval_status = ?", model.ApprovalApproved)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	err := query.Scan(&sum).Error
	return sum, err
}

func (r *reportRepository) CountPendingReviews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventParticipation{}).
		Where("approval_status = ? AND hours_attended > 0", model.ApprovalPending).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) EventsEndingSoon(ctx context.Context, now time.Time, horizon time.Duration) ([]dto.EndingSoonEvent, error) {
	var rows []dto.EndingSoonEvent
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Select("id AS event_id, name AS event_name, end_date").
		Where("is_active = ? AND end_date BETWEEN ? AND ?", true, now, now.Add(horizon)).
		Order("end_date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) MonthlyTrends(ctx context.Context, from time.Time) ([]TrendRow, error) {
	var rows []TrendRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			date_trunc('month', p.created_at AT TIME ZONE 'UTC') AS month,
			COUNT(DISTINCT p.event_id)                           AS events_count,
			COUNT(DISTINCT p.volunteer_id)                       AS volunteers_count,
			COALESCE(SUM(p.approved_hours) FILTER (WHERE p.approval_status = ?), 0) AS hours_sum
		FROM event_participations p
		WHERE p.created_at >= ?
		GROUP BY 1
		ORDER BY 1`,
		model.ApprovalApproved, from,
	).Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) TopEventsByImpact(ctx context.Context, limit int) ([]dto.EventImpact, error) {
	var rows []dto.EventImpact
	// Impact score is a display heuristic: participants weighted over hours.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id   AS event_id,
			e.name AS event_name,
			COUNT(p.id) AS participants,
			COALESCE(SUM(p.approved_hours) FILTER (WHERE p.approval_status = ?), 0) AS hours,
			COUNT(p.id) * 5 + COALESCE(SUM(p.approved_hours) FILTER (WHERE p.approval_status = ?), 0) AS impact_score
		FROM events e
		LEFT JOIN event_participations p ON p.event_id = e.id
		WHERE e.is_active = true
		GROUP BY e.id, e.name
		ORDER BY impact_score DESC
		LIMIT ?`,
		model.ApprovalApproved, model.ApprovalApproved, limit,
	).Scan(&rows).Error
	return rows, err
}
