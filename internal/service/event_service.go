package service

import (
	"context"
	"errors"
	"fmt"

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

type EventService interface {
	CreateEvent(ctx context.Context, creatorID uuid.UUID, req dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, filter dto.EventFilter) (*dto.PaginatedEventResponse, error)
	UpdateEvent(ctx context.Context, callerID uuid.UUID, callerIsAdmin bool, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, callerID uuid.UUID, callerIsAdmin bool, id uuid.UUID) error
	RegisterParticipation(ctx context.Context, callerID uuid.UUID, eventID uuid.UUID, req dto.RegisterParticipationRequest) (*dto.ParticipationResponse, error)
	MarkAttendance(ctx context.Context, participationID uuid.UUID, req dto.MarkAttendanceRequest) (*dto.ParticipationResponse, error)
}

type eventService struct {
	eventRepo         repository.EventRepository
	categoryRepo      repository.CategoryRepository
	participationRepo repository.ParticipationRepository
	search            SearchService
	sanitizer         *bluemonday.Policy
}

func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	participationRepo repository.ParticipationRepository,
	search SearchService,
) EventService {
	return &eventService{
		eventRepo:         eventRepo,
		categoryRepo:      categoryRepo,
		participationRepo: participationRepo,
		search:            search,
		sanitizer:         bluemonday.UGCPolicy(),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, creatorID uuid.UUID, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperror.ErrInvalidInput)
	}
	if req.MaxVolunteers > 0 && req.MinVolunteers > req.MaxVolunteers {
		return nil, fmt.Errorf("%w: min volunteers cannot exceed max volunteers", apperror.ErrInvalidInput)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", apperror.ErrInvalidInput)
	}
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", apperror.ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	event := &model.Event{
		Name:          req.Name,
		Description:   s.sanitizer.Sanitize(req.Description),
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DeclaredHours: req.DeclaredHours,
		MinVolunteers: req.MinVolunteers,
		MaxVolunteers: req.MaxVolunteers,
		Status:        model.EventDraft,
		CategoryID:    &category.ID,
		CreatedByID:   creatorID,
		IsActive:      true,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	event.Category = *category
	s.reindex(event)

	resp := dto.ToEventResponse(event, 0)
	return &resp, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	registered, err := s.eventRepo.CountParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	resp := dto.ToEventResponse(event, registered)
	return &resp, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter dto.EventFilter) (*dto.PaginatedEventResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	data := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		registered, err := s.eventRepo.CountParticipants(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}
		data = append(data, dto.ToEventResponse(e, registered))
	}

	return &dto.PaginatedEventResponse{
		Data: data,
		Meta: dto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID uuid.UUID, callerIsAdmin bool, id uuid.UUID, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	if event.CreatedByID != callerID && !callerIsAdmin {
		return nil, apperror.ErrForbidden
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if !event.EndDate.After(event.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", apperror.ErrInvalidInput)
	}
	if req.DeclaredHours != nil {
		event.DeclaredHours = *req.DeclaredHours
	}
	if req.MinVolunteers != nil {
		event.MinVolunteers = *req.MinVolunteers
	}
	if req.MaxVolunteers != nil {
		event.MaxVolunteers = *req.MaxVolunteers
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category id", apperror.ErrInvalidInput)
		}
		category, err := s.categoryRepo.FindByID(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: category does not exist", apperror.ErrInvalidInput)
		}
		event.CategoryID = &category.ID
		event.Category = *category
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.reindex(event)

	registered, err := s.eventRepo.CountParticipants(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	resp := dto.ToEventResponse(event, registered)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, callerID uuid.UUID, callerIsAdmin bool, id uuid.UUID) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("failed to load event: %w", err)
	}

	if event.CreatedByID != callerID && !callerIsAdmin {
		return apperror.ErrForbidden
	}

	if err := s.eventRepo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if s.search != nil {
		if err := s.search.DeleteEvent(id.String()); err != nil {
			zap.L().Warn("failed to remove event from search index", zap.Error(err))
		}
	}
	return nil
}

func (s *eventService) RegisterParticipation(ctx context.Context, callerID uuid.UUID, eventID uuid.UUID, req dto.RegisterParticipationRequest) (*dto.ParticipationResponse, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if !event.IsActive || event.Status == model.EventCancelled {
		return nil, fmt.Errorf("%w: event is not open for registration", apperror.ErrConflict)
	}

	volunteerID := callerID
	if req.VolunteerID != "" {
		parsed, err := uuid.Parse(req.VolunteerID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid volunteer id", apperror.ErrInvalidInput)
		}
		volunteerID = parsed
	}

	if event.MaxVolunteers > 0 {
		registered, err := s.eventRepo.CountParticipants(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants: %w", err)
		}
		if registered >= int64(event.MaxVolunteers) {
			return nil, fmt.Errorf("%w: event is full", apperror.ErrConflict)
		}
	}

	participation := &model.EventParticipation{
		EventID:        eventID,
		VolunteerID:    volunteerID,
		DeclaredHours:  req.DeclaredHours,
		Status:         model.ParticipationRegistered,
		ApprovalStatus: model.ApprovalPending,
	}

	if err := s.participationRepo.Create(ctx, participation); err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return nil, fmt.Errorf("%w: already registered for this event", apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to register participation: %w", err)
	}

	metrics.Registrations.Inc()

	created, err := s.participationRepo.FindByID(ctx, participation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload participation: %w", err)
	}

	resp := dto.ToParticipationResponse(created)
	return &resp, nil
}

// MarkAttendance records what actually happened at the event. Any change
// puts the row back to pending so the new hours go through review again.
func (s *eventService) MarkAttendance(ctx context.Context, participationID uuid.UUID, req dto.MarkAttendanceRequest) (*dto.ParticipationResponse, error) {
	rows, err := s.participationRepo.UpdateAttendance(ctx, participationID, req.Status, req.HoursAttended)
	if err != nil {
		return nil, fmt.Errorf("failed to mark attendance: %w", err)
	}
	if rows == 0 {
		return nil, apperror.ErrNotFound
	}

	updated, err := s.participationRepo.FindByID(ctx, participationID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload participation: %w", err)
	}

	resp := dto.ToParticipationResponse(updated)
	return &resp, nil
}

func (s *eventService) reindex(event *model.Event) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexEvent(event); err != nil {
		zap.L().Warn("failed to index event", zap.String("event_id", event.ID.String()), zap.Error(err))
	}
}
