package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
	"github.com/sevasetu/volunteerhub/pkg/storage"
)

type VolunteerService interface {
	GetVolunteer(ctx context.Context, id uuid.UUID) (*dto.VolunteerResponse, error)
	ListVolunteers(ctx context.Context, filter dto.VolunteerFilter) (*dto.PaginatedVolunteerResponse, error)
	UpdateProfile(ctx context.Context, callerID, targetID uuid.UUID, callerIsAdmin bool, req dto.UpdateVolunteerRequest) (*dto.VolunteerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	UploadAvatar(ctx context.Context, callerID uuid.UUID, r io.Reader, fileName string) (string, error)
}

type volunteerService struct {
	volunteerRepo repository.VolunteerRepository
	imageStorage  storage.ImageStorage
}

func NewVolunteerService(volunteerRepo repository.VolunteerRepository, imageStorage storage.ImageStorage) VolunteerService {
	return &volunteerService{
		volunteerRepo: volunteerRepo,
		imageStorage:  imageStorage,
	}
}

func (s *volunteerService) GetVolunteer(ctx context.Context, id uuid.UUID) (*dto.VolunteerResponse, error) {
	volunteer, err := s.volunteerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load volunteer: %w", err)
	}

	resp := dto.ToVolunteerResponse(volunteer)
	return &resp, nil
}

func (s *volunteerService) ListVolunteers(ctx context.Context, filter dto.VolunteerFilter) (*dto.PaginatedVolunteerResponse, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	volunteers, total, err := s.volunteerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}

	data := make([]dto.VolunteerResponse, 0, len(volunteers))
	for _, v := range volunteers {
		data = append(data, dto.ToVolunteerResponse(v))
	}

	return &dto.PaginatedVolunteerResponse{
		Data: data,
		Meta: dto.NewPaginationMeta(filter.Page, filter.Limit, total),
	}, nil
}

func (s *volunteerService) UpdateProfile(ctx context.Context, callerID, targetID uuid.UUID, callerIsAdmin bool, req dto.UpdateVolunteerRequest) (*dto.VolunteerResponse, error) {
	if callerID != targetID && !callerIsAdmin {
		return nil, apperror.ErrForbidden
	}

	volunteer, err := s.volunteerRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load volunteer: %w", err)
	}

	if req.FullName != nil {
		volunteer.FullName = *req.FullName
	}
	if req.Branch != nil {
		volunteer.Branch = *req.Branch
	}
	if req.Year != nil {
		volunteer.Year = *req.Year
	}
	if req.Gender != nil {
		volunteer.Gender = *req.Gender
	}
	if req.Phone != nil {
		volunteer.Phone = req.Phone
	}

	if err := s.volunteerRepo.Update(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to update volunteer: %w", err)
	}

	resp := dto.ToVolunteerResponse(volunteer)
	return &resp, nil
}

func (s *volunteerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.volunteerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("failed to load volunteer: %w", err)
	}

	return s.volunteerRepo.SetActive(ctx, id, false)
}

func (s *volunteerService) UploadAvatar(ctx context.Context, callerID uuid.UUID, r io.Reader, fileName string) (string, error) {
	if s.imageStorage == nil {
		return "", fmt.Errorf("%w: image storage is not configured", apperror.ErrUnavailable)
	}

	volunteer, err := s.volunteerRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.ErrProfileNotFound
		}
		return "", fmt.Errorf("failed to load volunteer: %w", err)
	}

	url, err := s.imageStorage.UploadImage(ctx, r, "avatars", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	// Best effort: drop the previous avatar once the new one is stored.
	if volunteer.AvatarURL != nil {
		_ = s.imageStorage.DeleteImage(ctx, *volunteer.AvatarURL)
	}

	volunteer.AvatarURL = &url
	if err := s.volunteerRepo.Update(ctx, volunteer); err != nil {
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}

	return url, nil
}
