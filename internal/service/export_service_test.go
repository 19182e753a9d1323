package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sevasetu/volunteerhub/internal/model"
)

func TestApprovedHoursWorkbook(t *testing.T) {
	hours := 5
	decidedAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	notes := "verified on site"
	row := &model.EventParticipation{
		ID:             uuid.New(),
		EventID:        uuid.New(),
		VolunteerID:    uuid.New(),
		Status:         model.ParticipationPresent,
		HoursAttended:  6,
		ApprovalStatus: model.ApprovalApproved,
		ApprovedHours:  &hours,
		ApprovedAt:     &decidedAt,
		ApprovalNotes:  &notes,
		Volunteer:      model.Volunteer{FullName: "Asha Kulkarni", RollNumber: "COMP2023-17"},
		Event:          model.Event{Name: "Tree Plantation"},
	}
	pending := &model.EventParticipation{
		ID:             uuid.New(),
		ApprovalStatus: model.ApprovalPending,
		HoursAttended:  2,
	}
	svc := NewExportService(newFakeParticipationRepo(row, pending))

	buf, err := svc.ApprovedHoursWorkbook(context.Background())

	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	cells, err := f.GetRows("Approved Hours")
	require.NoError(t, err)
	require.Len(t, cells, 2, "only approved rows are exported")

	assert.Equal(t, "Volunteer", cells[0][0])
	assert.Equal(t, "Asha Kulkarni", cells[1][0])
	assert.Equal(t, "COMP2023-17", cells[1][1])
	assert.Equal(t, "Tree Plantation", cells[1][2])
	assert.Equal(t, "6", cells[1][3])
	assert.Equal(t, "5", cells[1][4])
	assert.Equal(t, "2026-08-01 09:30", cells[1][6])
	assert.Equal(t, "verified on site", cells[1][7])
}

func TestApprovedHoursWorkbookEmpty(t *testing.T) {
	svc := NewExportService(newFakeParticipationRepo())

	buf, err := svc.ApprovedHoursWorkbook(context.Background())

	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
