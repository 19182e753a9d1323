package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

const (
	statsCacheKey = "volunteerhub:dashboard_stats"
	statsCacheTTL = 60 * time.Second

	endingSoonHorizon = 7 * 24 * time.Hour
	trendMonths       = 12
)

type ReportService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	GetMonthlyHours(ctx context.Context) (int64, error)
	GetMonthlyTrends(ctx context.Context) ([]dto.MonthlyTrend, error)
	GetEventsEndingSoon(ctx context.Context) ([]dto.EndingSoonEvent, error)
	GetTopEventsByImpact(ctx context.Context, limit int) ([]dto.EventImpact, error)
}

type reportService struct {
	repo        repository.ReportRepository
	redisClient *redis.Client
	now         func() time.Time
}

func NewReportService(repo repository.ReportRepository, redisClient *redis.Client) ReportService {
	return &reportService{
		repo:        repo,
		redisClient: redisClient,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// All calendar windows use UTC boundaries.
func (s *reportService) startOfMonth() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *reportService) GetDashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	now := s.now()
	stats := &dto.DashboardStats{}

	var err error
	if stats.TotalVolunteers, err = s.repo.CountActiveVolunteers(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if stats.TotalEvents, err = s.repo.CountEvents(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if stats.TotalHours, err = s.repo.SumApprovedHours(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if stats.PendingReviews, err = s.repo.CountPendingReviews(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if stats.ActiveEvents, err = s.repo.CountActiveEvents(ctx, now); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	s.cacheStats(ctx, stats)
	return stats, nil
}

func (s *reportService) GetMonthlyHours(ctx context.Context) (int64, error) {
	since := s.startOfMonth()
	sum, err := s.repo.SumApprovedHours(ctx, &since)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return sum, nil
}

// GetMonthlyTrends returns the last 12 calendar months in chronological
// order, zero-filled for months without any activity.
func (s *reportService) GetMonthlyTrends(ctx context.Context) ([]dto.MonthlyTrend, error) {
	thisMonth := s.startOfMonth()
	from := thisMonth.AddDate(0, -(trendMonths - 1), 0)

	rows, err := s.repo.MonthlyTrends(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	byMonth := make(map[string]repository.TrendRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month.UTC().Format("2006-01")] = row
	}

	trends := make([]dto.MonthlyTrend, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := from.AddDate(0, i, 0).Format("2006-01")
		trend := dto.MonthlyTrend{Month: month}
		if row, ok := byMonth[month]; ok {
			trend.EventsCount = row.EventsCount
			trend.VolunteersCount = row.VolunteersCount
			trend.HoursSum = row.HoursSum
		}
		trends = append(trends, trend)
	}

	return trends, nil
}

func (s *reportService) GetEventsEndingSoon(ctx context.Context) ([]dto.EndingSoonEvent, error) {
	events, err := s.repo.EventsEndingSoon(ctx, s.now(), endingSoonHorizon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return events, nil
}

func (s *reportService) GetTopEventsByImpact(ctx context.Context, limit int) ([]dto.EventImpact, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	events, err := s.repo.TopEventsByImpact(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return events, nil
}

// Cache failures never fail a report; a stale or missing cache just means
// hitting the store again.
func (s *reportService) cachedStats(ctx context.Context) *dto.DashboardStats {
	if s.redisClient == nil {
		return nil
	}
	raw, err := s.redisClient.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Debug("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats dto.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *reportService) cacheStats(ctx context.Context, stats *dto.DashboardStats) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
		zap.L().Debug("stats cache write failed", zap.Error(err))
	}
}
