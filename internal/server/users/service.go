package users

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"net/url"
	"time"

	"github.com/sitenexus/sitenexus/internal/common"
	"github.com/sitenexus/sitenexus/internal/server/auth"
	"github.com/sitenexus/sitenexus/internal/server/config"
	"github.com/sitenexus/sitenexus/internal/server/images"
	"github.com/sitenexus/sitenexus/internal/server/mail"
)

// Service implements account registration, login, the password-reset flow
// and profile image handling. Session and reset tokens share the signing
// secret and validity but carry different purpose claims.
type Service struct {
	repo          Repository
	images        images.Store
	mailer        mail.Sender
	jwtSecret     []byte
	tokenValidity time.Duration
	resetBaseURL  string
}

func NewService(repo Repository, imageStore images.Store, mailer mail.Sender, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		images:        imageStore,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		resetBaseURL:  cfg.ResetLinkBaseURL,
	}
}

func validateRegistration(companyName, email, password string) error {
	if companyName == "" {
		return fmt.Errorf("%w: company name is required", common.ErrorValidation)
	}
	if _, err := netmail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}

func (s *Service) Register(ctx context.Context, companyName, email, password string) (*User, error) {

	if err := validateRegistration(companyName, email, password); err != nil {
		return nil, err
	}

	// Same check the original performed before inserting; the unique index
	// still backs it up against concurrent registrations.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		CompanyName:  companyName,
		Email:        email,
		PasswordHash: passwordHash,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Login verifies the credentials and returns a session token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, auth.PurposeSession, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// RequestPasswordReset issues a reset token for the account behind the email
// and hands a reset link to the mail collaborator. Returns
// common.ErrorNotFound for unknown addresses.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	token, err := auth.GenerateToken(user.ID, auth.PurposeReset, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return common.ErrorInternal
	}

	link := fmt.Sprintf("%s?token=%s", s.resetBaseURL, url.QueryEscape(token))

	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return fmt.Errorf("error sending reset email: %w", err)
	}

	return nil
}

// ResetPassword verifies a reset-purpose token and replaces the stored hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {

	userID, err := auth.GetUserIDFromToken(token, auth.PurposeReset, s.jwtSecret)
	if err != nil {
		return common.ErrInvalidToken
	}

	if newPassword == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	if err := s.repo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return common.ErrorInternal
	}

	return nil
}

// UploadImage replaces the caller's profile image.
func (s *Service) UploadImage(ctx context.Context, userID string, data []byte, contentType string) error {

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if err := s.images.Put(ctx, userID, data, contentType); err != nil {
		return fmt.Errorf("error storing image: %w", err)
	}

	return nil
}

// GetImage returns the caller's profile image and its content type.
func (s *Service) GetImage(ctx context.Context, userID string) ([]byte, string, error) {
	return s.images.Get(ctx, userID)
}
