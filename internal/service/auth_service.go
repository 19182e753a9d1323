package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sevasetu/volunteerhub/internal/dto"
	"github.com/sevasetu/volunteerhub/internal/model"
	"github.com/sevasetu/volunteerhub/internal/repository"
	"github.com/sevasetu/volunteerhub/pkg/apperror"
)

const tokenLifetime = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.VolunteerResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	volunteerRepo repository.VolunteerRepository
	roleRepo      repository.RoleRepository
	secret        string
}

func NewAuthService(volunteerRepo repository.VolunteerRepository, roleRepo repository.RoleRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	return &authService{
		volunteerRepo: volunteerRepo,
		roleRepo:      roleRepo,
		secret:        secret,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.VolunteerResponse, error) {
	if _, err := s.volunteerRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email is already registered", apperror.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	volunteer := &model.Volunteer{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		RollNumber:   req.RollNumber,
		Branch:       req.Branch,
		Year:         req.Year,
		Gender:       req.Gender,
		IsActive:     true,
	}
	if req.Phone != "" {
		volunteer.Phone = &req.Phone
	}

	if err := s.volunteerRepo.Create(ctx, volunteer); err != nil {
		return nil, fmt.Errorf("failed to create volunteer: %w", err)
	}

	// Every new signup starts with the base volunteer role.
	if def, err := s.roleRepo.FindDefinitionByName(ctx, model.RoleVolunteer); err == nil {
		_ = s.roleRepo.Assign(ctx, &model.UserRole{
			VolunteerID: volunteer.ID,
			RoleID:      def.ID,
			IsActive:    true,
		})
	}

	resp := dto.ToVolunteerResponse(volunteer)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	volunteer, err := s.volunteerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up volunteer: %w", err)
	}

	if !volunteer.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperror.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(volunteer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperror.ErrUnauthorized)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   volunteer.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	})

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     signed,
		Volunteer: dto.ToVolunteerResponse(volunteer),
	}, nil
}
