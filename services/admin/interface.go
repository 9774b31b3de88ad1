package admin

import (
	"context"
	"time"

	adminRepo "amedick/database/repository/admin"
	doctorRepo "amedick/database/repository/doctor"
	"amedick/models"
	"amedick/services/directory"
	"amedick/services/notification"
)

type AdminService interface {
	Signup(ctx context.Context, req models.AdminSignupRequest) (*models.Admin, error)
	Login(ctx context.Context, email, password string) (string, *models.Admin, error)

	// Doctor verification
	ListPendingDoctors(ctx context.Context) ([]models.Doctor, error)
	ApproveDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	RejectDoctor(ctx context.Context, doctorID, reason string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Admins   adminRepo.AdminRepository
	Doctors  doctorRepo.DoctorRepository
	Mailer   notification.Mailer
	TokenTTL time.Duration
	// Directory is invalidated whenever the set of bookable doctors changes.
	Directory directory.Cache
	// SignupEnabled gates self-service admin signup.
	SignupEnabled bool
}
