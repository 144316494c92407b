package services

import (
	"context"
	"net/http"
	"strings"

	"flower-backend/internal/apperr"
	"flower-backend/internal/auth"
	"flower-backend/internal/models"
	"flower-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

type UserService struct {
	UserRepo *repositories.UserRepository
	TOTPRepo *repositories.TOTPRepository
	JWT      *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{UserRepo: userRepo, TOTPRepo: totpRepo, JWT: jwtManager}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return nil, apperr.BadRequest("VALIDATION", "name and email are required")
	}
	if len(req.Password) < 8 {
		return nil, apperr.BadRequest("VALIDATION", "password must be at least 8 characters")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleStaff {
		return nil, apperr.BadRequest("VALIDATION", "role must be ADMIN or STAFF")
	}

	existing, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("VALIDATION", "email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and, for users with 2FA enabled, the TOTP code.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.New(http.StatusForbidden, "INVALID_CREDENTIALS", "account is disabled")
	}

	secret, enabled, err := s.TOTPRepo.GetSecret(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if enabled {
		if req.TOTPCode == "" {
			return nil, apperr.New(http.StatusUnauthorized, "TOTP_REQUIRED", "totp_code is required")
		}
		if !totp.Validate(req.TOTPCode, secret) {
			return nil, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid TOTP code")
		}
	}

	token, err := s.JWT.Generate(user.ID, user.Email, user.Role, user.IsActive)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, nil
}
