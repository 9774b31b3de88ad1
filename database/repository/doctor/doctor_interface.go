package doctorRepo

import (
	"context"

	"amedick/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorRepository defines methods for doctor data access, including the
// embedded weekly availability template.
type DoctorRepository interface {
	// Create inserts a new doctor; a taken email yields database.ErrDuplicate.
	Create(ctx context.Context, doctor *models.Doctor) error
	// GetByID retrieves a doctor by ID. Missing doctors return nil, nil.
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByIDWithProjection is GetByID restricted to the projected fields.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by email. Missing doctors return nil, nil.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	// ListApproved returns the public listing of approved doctors.
	ListApproved(ctx context.Context) ([]models.DoctorSummary, error)
	// ListByStatus returns every doctor in the given verification state.
	ListByStatus(ctx context.Context, status string) ([]models.Doctor, error)
	// UpdateFields sets fields and returns the updated doctor, or nil if missing.
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Doctor, error)
	// Delete removes a doctor; missing doctors yield database.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// UpsertDay replaces one weekday's slots, keeping at most one entry per day.
	UpsertDay(ctx context.Context, id string, day int, slots []string) error
	// RemoveDay drops a weekday entry and reports whether it existed.
	RemoveDay(ctx context.Context, id string, day int) (bool, error)
	// RemoveSlots pulls slots from a weekday entry and reports whether the day existed.
	RemoveSlots(ctx context.Context, id string, day int, slots []string) (bool, error)

	EnsureIndexes(ctx context.Context) error
}
