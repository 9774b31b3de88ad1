package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	repo := &MongoDoctorRepo{coll: database.DB().Collection("doctors")}
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		utils.GetLogger().Warn("doctor indexes not created", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates indexes for frequently used fields in queries.
func (r *MongoDoctorRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "verificationStatus", Value: 1}, {Key: "name", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	// $push on a null field fails, so the template is always stored as an array.
	if doctor.Availability == nil {
		doctor.Availability = []models.DayAvailability{}
	}

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", database.WrapWriteError(err))
	}
	return nil
}

func (r *MongoDoctorRepo) findOne(ctx context.Context, filter bson.M, projection bson.M) (*models.Doctor, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id}, nil)
}

func (r *MongoDoctorRepo) GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id}, projection)
}

func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

// ListApproved returns id, name and specialization of every approved doctor, sorted by name.
func (r *MongoDoctorRepo) ListApproved(ctx context.Context) ([]models.DoctorSummary, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"id": 1, "name": 1, "specialization": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"verificationStatus": models.VerificationApproved}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.DoctorSummary{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// ListByStatus returns doctors in the given verification state, oldest first.
func (r *MongoDoctorRepo) ListByStatus(ctx context.Context, status string) ([]models.Doctor, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0, "availability": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"verificationStatus": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s doctors: %w", status, err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return doctors, nil
}

// UpdateFields applies a $set and returns the doctor after the update.
func (r *MongoDoctorRepo) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Doctor, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"passwordHash": 0})

	var doctor models.Doctor
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
