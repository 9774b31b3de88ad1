package userRepo

import (
	"context"
	"fmt"
	"time"

	"amedick/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique lookups for users and their profiles.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	profileIndex := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := r.profiles.Indexes().CreateOne(ctx, profileIndex); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
