package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amedick/database"
	"amedick/models"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AdminRepository defines methods for admin account data access.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	// GetByEmail returns nil, nil when no admin uses the email.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoAdminRepo struct {
	coll *mongo.Collection
}

func NewMongoAdminRepo() AdminRepository {
	repo := &MongoAdminRepo{coll: database.DB().Collection("admins")}
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		utils.GetLogger().Warn("admin indexes not created", zap.Error(err))
	}
	return repo
}

func (r *MongoAdminRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create admin indexes: %w", err)
	}
	return nil
}

func (r *MongoAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", database.WrapWriteError(err))
	}
	return nil
}

func (r *MongoAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return &admin, nil
}
