package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll     *mongo.Collection
	profiles *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	db := database.DB()
	repo := &MongoUserRepo{
		coll:     db.Collection("users"),
		profiles: db.Collection("profiles"),
	}
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		utils.GetLogger().Warn("user indexes not created", zap.Error(err))
	}
	return repo
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if user.DateJoined.IsZero() {
		user.DateJoined = now
	}
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", database.WrapWriteError(err))
	}
	return nil
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.profiles.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *MongoUserRepo) UpsertProfile(ctx context.Context, userID string, fields bson.M) (*models.Profile, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"userId": userID},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var profile models.Profile
	if err := r.profiles.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %s: %w", userID, err)
	}
	return &profile, nil
}
