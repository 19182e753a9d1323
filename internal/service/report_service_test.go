package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

func reportServiceAt(repo repository.ReportRepository, now time.Time) *reportService {
	return &reportService{
		repo: repo,
		now:  func() time.Time { return now },
	}
}

func TestGetDashboardStats(t *testing.T) {
	repo := &fakeReportRepo{
		activeVolunteers: 42,
		totalEvents:      10,
		activeEvents:     3,
		totalHours:       512,
		pendingReviews:   7,
	}
	svc := reportServiceAt(repo, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalVolunteers)
	assert.Equal(t, int64(10), stats.TotalEvents)
	assert.Equal(t, int64(512), stats.TotalHours)
	assert.Equal(t, int64(7), stats.PendingReviews)
	assert.Equal(t, int64(3), stats.ActiveEvents)
}

func TestGetDashboardStatsEmptyStore(t *testing.T) {
	svc := reportServiceAt(&fakeReportRepo{}, time.Now().UTC())

	stats, err := svc.GetDashboardStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &dto.DashboardStats{}, stats)
}

func TestGetDashboardStatsStoreFailure(t *testing.T) {
	svc := reportServiceAt(&fakeReportRepo{err: errStore}, time.Now().UTC())

	stats, err := svc.GetDashboardStats(context.Background())

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestGetMonthlyHoursUsesMonthStart(t *testing.T) {
	repo := &fakeReportRepo{totalHours: 900, monthHours: 36}
	svc := reportServiceAt(repo, time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC))

	sum, err := svc.GetMonthlyHours(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(36), sum)
}

func TestGetMonthlyTrendsZeroFillsTwelveMonths(t *testing.T) {
	repo := &fakeReportRepo{
		trendRows: []repository.TrendRow{
			{Month: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), EventsCount: 2, VolunteersCount: 15, HoursSum: 60},
			{Month: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), EventsCount: 1, VolunteersCount: 8, HoursSum: 24},
		},
	}
	svc := reportServiceAt(repo, time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC))

	trends, err := svc.GetMonthlyTrends(context.Background())

	require.NoError(t, err)
	require.Len(t, trends, 12)
	assert.Equal(t, "2025-03", trends[0].Month)
	assert.Equal(t, "2026-02", trends[11].Month)

	for i := 1; i < len(trends); i++ {
		assert.Less(t, trends[i-1].Month, trends[i].Month)
	}

	byMonth := make(map[string]dto.MonthlyTrend, len(trends))
	for _, trend := range trends {
		byMonth[trend.Month] = trend
	}
	assert.Equal(t, int64(2), byMonth["2025-11"].EventsCount)
	assert.Equal(t, int64(60), byMonth["2025-11"].HoursSum)
	assert.Equal(t, int64(24), byMonth["2026-02"].HoursSum)
	assert.Zero(t, byMonth["2025-12"].EventsCount)
	assert.Zero(t, byMonth["2025-12"].HoursSum)
}

func TestGetMonthlyTrendsStoreFailure(t *testing.T) {
	svc := reportServiceAt(&fakeReportRepo{err: errStore}, time.Now().UTC())

	trends, err := svc.GetMonthlyTrends(context.Background())

	assert.Nil(t, trends)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestGetTopEventsByImpactClampsLimit(t *testing.T) {
	repo := &fakeReportRepo{topEvents: []dto.EventImpact{{EventName: "Beach Cleanup"}}}
	svc := reportServiceAt(repo, time.Now().UTC())

	for _, limit := range []int{0, -5, 120, 10} {
		events, err := svc.GetTopEventsByImpact(context.Background(), limit)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	}
}

func TestGetEventsEndingSoon(t *testing.T) {
	repo := &fakeReportRepo{endingSoon: []dto.EndingSoonEvent{{EventName: "Tree Plantation"}}}
	svc := reportServiceAt(repo, time.Now().UTC())

	events, err := svc.GetEventsEndingSoon(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tree Plantation", events[0].EventName)
}
