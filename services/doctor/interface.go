package doctor

import (
	"context"
	"time"

	doctorRepo "amedick/database/repository/doctor"
	"amedick/models"
	"amedick/services/availability"
	"amedick/services/directory"
	"amedick/services/notification"
	"amedick/services/storage"
)

type DoctorService interface {
	// Accounts
	Register(ctx context.Context, form models.DoctorRegistration, files []storage.File) (*models.Doctor, error)
	Login(ctx context.Context, email, password string) (string, *models.Doctor, error)
	GetProfile(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, doctorID string, update models.DoctorProfileUpdate, photo *storage.File) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.DoctorSummary, error)

	// Weekly availability template
	GetAvailability(ctx context.Context, doctorID string) ([]models.DayAvailability, error)
	UpsertAvailability(ctx context.Context, doctorID string, req models.UpsertAvailabilityRequest) ([]models.DayAvailability, error)
	DeleteAvailability(ctx context.Context, doctorID string, day int, slot string) ([]models.DayAvailability, error)
	DeleteAvailabilityRange(ctx context.Context, doctorID string, day int, start, end string) ([]models.DayAvailability, error)
	GetAvailabilityRanges(ctx context.Context, doctorID string) ([]DayRanges, error)
}

// DayRanges is the compressed view of one weekday's slots.
type DayRanges struct {
	Day    int                  `json:"day"`
	Ranges []availability.Range `json:"ranges"`
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo    doctorRepo.DoctorRepository
	Storage storage.StorageService
	Mailer  notification.Mailer
	// Directory caches the public doctor list; nil disables caching.
	Directory directory.Cache
	// TokenTTL is the lifetime of issued session tokens.
	TokenTTL time.Duration
}
