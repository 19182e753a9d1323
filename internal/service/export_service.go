package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sevasetu/volunteerhub/internal/repository"
)

type ExportService interface {
	// ApprovedHoursWorkbook builds an xlsx report of all approved
	// participations and returns it as a byte buffer ready to stream.
	ApprovedHoursWorkbook(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	participationRepo repository.ParticipationRepository
}

func NewExportService(participationRepo repository.ParticipationRepository) ExportService {
	return &exportService{participationRepo: participationRepo}
}

func (s *exportService) ApprovedHoursWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.participationRepo.FindApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved participations: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Approved Hours"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Volunteer", "Roll Number", "Event", "Hours Attended", "Approved Hours", "Approved By", "Approved At", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	for i, p := range rows {
		rowNum := i + 2
		approvedHours := 0
		if p.ApprovedHours != nil {
			approvedHours = *p.ApprovedHours
		}
		approvedBy := ""
		if p.ApprovedBy != nil {
			approvedBy = p.ApprovedBy.FullName
		}
		approvedAt := ""
		if p.ApprovedAt != nil {
			approvedAt = p.ApprovedAt.UTC().Format("2006-01-02 15:04")
		}
		notes := ""
		if p.ApprovalNotes != nil {
			notes = *p.ApprovalNotes
		}

		values := []interface{}{
			p.Volunteer.FullName,
			p.Volunteer.RollNumber,
			p.Event.Name,
			p.HoursAttended,
			approvedHours,
			approvedBy,
			approvedAt,
			notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}
