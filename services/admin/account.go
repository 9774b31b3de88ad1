package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"amedick/database"
	"amedick/models"
	"amedick/utils"

	"github.com/google/uuid"
)

func (s *DefaultAdminService) Signup(ctx context.Context, req models.AdminSignupRequest) (*models.Admin, error) {
	if !s.SignupEnabled {
		return nil, ErrSignupDisabled
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAdminExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(models.RoleAdmin),
	}
	if err := s.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, err
	}
	return admin, nil
}

func (s *DefaultAdminService) Login(ctx context.Context, email, password string) (string, *models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, ErrCredentialsMissing
	}
	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, ErrAdminNotFound
	}
	if !utils.CheckPassword(admin.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(models.Principal{ID: admin.ID, Email: admin.Email, Role: models.RoleAdmin}, s.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, admin, nil
}
