package user

import (
	"context"
	"fmt"
	"strings"

	"amedick/models"
	"amedick/services/storage"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Login issues a patient token.
func (s *DefaultUserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrCredentialsMissing
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActivated {
		return "", nil, ErrNotActivated
	}

	token, err := utils.GenerateToken(models.Principal{ID: user.ID, Email: user.Email, Role: models.RolePatient}, s.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{UserID: userID, Name: user.Name}
	}
	return &ProfileView{User: user, Profile: profile}, nil
}

// UpdateProfile applies the non-nil fields and an optional photo upload.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, photo *storage.File) (*ProfileView, error) {
	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := bson.M{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	set("name", update.Name)
	set("gender", update.Gender)
	set("dob", update.DOB)
	set("phone", update.Phone)
	set("address", update.Address)

	if photo != nil && s.Storage != nil {
		url, err := s.Storage.Upload(ctx, *photo, "profile-photos")
		if err != nil {
			utils.GetLogger().Error("Profile photo upload failed", zap.String("userId", userID), zap.Error(err))
			return nil, ErrUploadFailed
		}
		fields["profilePhoto"] = url
	}

	profile, err := s.Repo.UpsertProfile(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile}, nil
}
