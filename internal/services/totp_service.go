package services

import (
	"context"
	"net/http"

	"flower-backend/internal/apperr"
	"flower-backend/internal/repositories"

	"github.com/pquerna/otp/totp"
)

// TOTPService manages two-factor enrollment. Enrollment is a two-step flow:
// Setup issues a secret, Verify confirms the user's authenticator works
// before 2FA is switched on.
type TOTPService struct {
	Repo     *repositories.TOTPRepository
	UserRepo *repositories.UserRepository
}

func NewTOTPService(repo *repositories.TOTPRepository, userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{Repo: repo, UserRepo: userRepo}
}

// Setup generates a fresh secret and returns the otpauth provisioning URL.
// Refused once 2FA is enabled; regenerating the secret would silently break
// the enrolled authenticator.
func (s *TOTPService) Setup(ctx context.Context, userID int) (string, string, error) {
	enabled, err := s.IsEnabled(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if enabled {
		return "", "", apperr.BadRequest("VALIDATION", "TOTP is already enabled")
	}

	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", apperr.NotFound("USER_NOT_FOUND", "user not found")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "FlowerMarket",
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", err
	}

	if err := s.Repo.SaveSecret(ctx, userID, key.Secret()); err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// Verify checks the first code from the user's authenticator and enables 2FA.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, enabled, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return apperr.BadRequest("VALIDATION", "TOTP setup has not been started")
	}
	if enabled {
		return apperr.BadRequest("VALIDATION", "TOTP is already enabled")
	}
	if !totp.Validate(code, secret) {
		return apperr.BadRequest("VALIDATION", "invalid TOTP code")
	}
	return s.Repo.Enable(ctx, userID)
}

// Authorize enforces the second factor on sensitive actions. Users without
// 2FA enrolled pass through.
func (s *TOTPService) Authorize(ctx context.Context, userID int, code string) error {
	secret, enabled, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}
	if code == "" || !totp.Validate(code, secret) {
		return apperr.New(http.StatusUnauthorized, "TOTP_REQUIRED", "valid TOTP code required")
	}
	return nil
}

// IsEnabled reports whether the user has completed 2FA enrollment.
func (s *TOTPService) IsEnabled(ctx context.Context, userID int) (bool, error) {
	_, enabled, err := s.Repo.GetSecret(ctx, userID)
	return enabled, err
}
