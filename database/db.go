package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amedick/config"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// InitDB initializes the MongoDB connection.
func InitDB(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return nil
}

// DB returns the application database.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the global client.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}

// NewContext derives a bounded context for a single store call.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// WrapWriteError maps unique index violations to ErrDuplicate.
func WrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
