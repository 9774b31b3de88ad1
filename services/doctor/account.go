package doctor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"amedick/database"
	"amedick/models"
	"amedick/services/directory"
	"amedick/services/notification"
	"amedick/services/storage"
	"amedick/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	documentsFolder = "doctor-documents"
	photosFolder    = "profile-photos"
)

// Register creates a pending doctor from the registration form and its uploads.
func (s *DefaultDoctorService) Register(ctx context.Context, form models.DoctorRegistration, files []storage.File) (*models.Doctor, error) {
	email := normalizeEmail(form.Email)
	name := strings.TrimSpace(form.FullName)
	if name == "" || email == "" || form.Password == "" ||
		strings.TrimSpace(form.Specialization) == "" || strings.TrimSpace(form.RegistrationNumber) == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorExists
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &models.Doctor{
		ID:                  uuid.New().String(),
		Name:                name,
		Email:               email,
		PasswordHash:        hash,
		Phone:               strings.TrimSpace(form.Phone),
		Specialization:      strings.TrimSpace(form.Specialization),
		RegistrationNumber:  strings.TrimSpace(form.RegistrationNumber),
		RegistrationCouncil: strings.TrimSpace(form.RegistrationCouncil),
		VerificationStatus:  models.VerificationPending,
		Availability:        []models.DayAvailability{},
	}
	if year, err := strconv.Atoi(strings.TrimSpace(form.RegistrationYear)); err == nil {
		doctor.RegistrationYear = year
	}

	for _, f := range files {
		folder := documentsFolder
		if f.Field == "profilePhoto" {
			folder = photosFolder
		}
		url, err := s.upload(ctx, f, folder)
		if err != nil {
			return nil, err
		}
		switch f.Field {
		case "medicalRegistrationCertificate":
			doctor.Documents.MedicalRegistrationCertificate = url
		case "degreeCertificate":
			doctor.Documents.DegreeCertificate = url
		case "govtIdProof":
			doctor.Documents.GovtIDProof = url
		case "profilePhoto":
			doctor.ProfilePhoto = url
		}
	}

	if err := s.Repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDoctorExists
		}
		return nil, err
	}

	if s.Mailer != nil {
		if err := s.Mailer.Send(ctx, notification.DoctorRegisteredMail(doctor)); err != nil {
			utils.GetLogger().Warn("Registration mail failed", zap.String("doctorId", doctor.ID), zap.Error(err))
		}
	}
	doctor.PasswordHash = ""
	return doctor, nil
}

func (s *DefaultDoctorService) upload(ctx context.Context, f storage.File, folder string) (string, error) {
	if s.Storage == nil {
		utils.GetLogger().Warn("Storage not configured, upload skipped", zap.String("field", f.Field))
		return "", nil
	}
	url, err := s.Storage.Upload(ctx, f, folder)
	if err != nil {
		utils.GetLogger().Error("Upload failed", zap.String("field", f.Field), zap.Error(err))
		return "", ErrUploadFailed
	}
	return url, nil
}

// Login issues a doctor token. Only approved doctors may log in.
func (s *DefaultDoctorService) Login(ctx context.Context, email, password string) (string, *models.Doctor, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, ErrCredentialsMissing
	}
	doctor, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if doctor == nil {
		return "", nil, ErrDoctorNotFound
	}
	if doctor.VerificationStatus != models.VerificationApproved {
		return "", nil, ErrNotVerified
	}
	if !utils.CheckPassword(doctor.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(models.Principal{ID: doctor.ID, Email: doctor.Email, Role: models.RoleDoctor}, s.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	doctor.PasswordHash = ""
	return token, doctor, nil
}

func (s *DefaultDoctorService) GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.Repo.GetByIDWithProjection(ctx, doctorID, bson.M{"passwordHash": 0})
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// UpdateProfile applies the non-nil fields and an optional new photo.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, doctorID string, update models.DoctorProfileUpdate, photo *storage.File) (*models.Doctor, error) {
	fields := bson.M{}
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		fields["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		fields["phone"] = strings.TrimSpace(*update.Phone)
	}
	if update.Specialization != nil {
		fields["specialization"] = strings.TrimSpace(*update.Specialization)
	}
	if update.Experience != nil && *update.Experience >= 0 {
		fields["experience"] = *update.Experience
	}
	if update.Clinic != nil {
		fields["clinic"] = update.Clinic
	}
	if photo != nil {
		url, err := s.upload(ctx, *photo, photosFolder)
		if err != nil {
			return nil, err
		}
		if url != "" {
			fields["profilePhoto"] = url
		}
	}

	if len(fields) == 0 {
		return s.GetProfile(ctx, doctorID)
	}
	doctor, err := s.Repo.UpdateFields(ctx, doctorID, fields)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	_, renamed := fields["name"]
	_, respecialized := fields["specialization"]
	if s.Directory != nil && (renamed || respecialized) {
		s.Directory.Invalidate(ctx)
	}
	return doctor, nil
}

func (s *DefaultDoctorService) ListDoctors(ctx context.Context) ([]models.DoctorSummary, error) {
	return directory.Load(ctx, s.Repo, s.Directory)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
