package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

const (
	resetTokenLength = 48
	resetTokenTTL    = 15 * time.Minute
	minPasswordLen   = 8

	LandingAdmin      = "admin"
	LandingAppliances = "appliances"
)

// Mailer delivers a plain-text e-mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type LoginResult struct {
	Token   string       `json:"token"`
	Landing string       `json:"landing"`
	User    *models.User `json:"user"`
}

type AuthService struct {
	users    *repositories.UserRepository
	jwt      *utils.JWTManager
	mailer   Mailer
	baseURL  string
	hashCost int
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(users *repositories.UserRepository, jwt *utils.JWTManager, mailer Mailer, publicBaseURL string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		mailer:   mailer,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		hashCost: bcrypt.DefaultCost,
		log:      log,
		now:      time.Now,
	}
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email", "must be a valid e-mail address")
	}
	if len(password) < minPasswordLen {
		return invalid("password", "must be at least %d characters", minPasswordLen)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		Email:    email,
		Password: hashed,
		FullName: strings.TrimSpace(fullName),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

// Login checks the password and issues a token. The landing hint tells the
// client which area to open: the admin dashboard for Admin users.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwt.GenerateJWT(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	landing := LandingAppliances
	if u.IsAdmin() {
		landing = LandingAdmin
	}
	return &LoginResult{Token: token, Landing: landing, User: u}, nil
}

// ForgotPassword issues a short-lived reset token and mails a reset link.
// Unknown addresses are ignored silently so callers cannot probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	u.ResetToken = utils.GenerateRandomToken(resetTokenLength)
	u.ResetTokenExp = s.now().Add(resetTokenTTL)
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.baseURL, url.QueryEscape(u.ResetToken), url.QueryEscape(u.Email))
	body := fmt.Sprintf("Please reset your password by opening this link:\n\n%s\n\nThe link expires in 15 minutes.", link)
	if err := s.mailer.Send(ctx, u.Email, "Reset Password", body); err != nil {
		s.log.Error("reset mail failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.users.GetByResetToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if s.now().After(u.ResetTokenExp) {
		return ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLen {
		return invalid("password", "must be at least %d characters", minPasswordLen)
	}

	hashed, err := utils.HashPassword(newPassword, s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hashed
	u.ResetToken = ""
	u.ResetTokenExp = time.Time{}
	return s.users.Update(ctx, u)
}

// SeedAdmin makes sure the configured administrator exists and holds the
// Admin role. An empty e-mail disables seeding.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}
	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.IsAdmin() {
			return nil
		}
		u.Role = models.RoleAdmin
		if err := s.users.Update(ctx, u); err != nil {
			return err
		}
		s.log.Info("existing user promoted to admin", zap.Uint("user_id", u.ID))
		return nil
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}

	if err := validateCredentials(email, password); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}
	hashed, err := utils.HashPassword(password, s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin := &models.User{Email: email, Password: hashed, FullName: "Administrator", Role: models.RoleAdmin}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	s.log.Info("admin user created", zap.Uint("user_id", admin.ID))
	return nil
}
