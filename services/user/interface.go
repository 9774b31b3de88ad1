package user

import (
	"context"
	"time"

	userRepo "amedick/database/repository/user"
	"amedick/models"
	"amedick/services/notification"
	"amedick/services/storage"
)

type UserService interface {
	// Registration
	InitiateSignup(ctx context.Context, req models.SignupRequest) error
	ResendOTP(ctx context.Context, email string) error
	VerifySignup(ctx context.Context, email, otp string) (*models.User, error)

	// Authentication
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// Profile
	GetProfile(ctx context.Context, userID string) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate, photo *storage.File) (*ProfileView, error)
}

// OTPStore keeps pending signups until they are verified or expire.
type OTPStore interface {
	Save(ctx context.Context, pending models.PendingSignup, ttl time.Duration) error
	// Get returns nil, nil when nothing is pending for email.
	Get(ctx context.Context, email string) (*models.PendingSignup, error)
	// CountAttempt increments and returns the number of verification attempts for email.
	CountAttempt(ctx context.Context, email string, ttl time.Duration) (int, error)
	// Delete drops the pending signup and its attempt count.
	Delete(ctx context.Context, email string) error
}

// DefaultMaxOTPAttempts is used when MaxOTPAttempts is unset.
const DefaultMaxOTPAttempts = 5

// ProfileView is the account joined with its optional profile.
type ProfileView struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	OTPs     OTPStore
	Mailer   notification.Mailer
	Storage  storage.StorageService
	OTPTTL   time.Duration
	TokenTTL time.Duration
	// MaxOTPAttempts caps verification attempts per pending signup.
	MaxOTPAttempts int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultUserService) maxOTPAttempts() int {
	if s.MaxOTPAttempts > 0 {
		return s.MaxOTPAttempts
	}
	return DefaultMaxOTPAttempts
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
