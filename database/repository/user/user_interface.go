package userRepo

import (
	"context"

	"amedick/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for patient account data access.
type UserRepository interface {
	// Create inserts a new user record; a taken email yields database.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. Missing users return nil, nil.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Missing users return nil, nil.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetProfile retrieves the user's profile. Missing profiles return nil, nil.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// UpsertProfile applies fields to the user's profile, creating it if needed.
	UpsertProfile(ctx context.Context, userID string, fields bson.M) (*models.Profile, error)
	EnsureIndexes(ctx context.Context) error
}
