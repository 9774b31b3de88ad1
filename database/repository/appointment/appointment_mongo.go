package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amedick/database"
	"amedick/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll    *mongo.Collection
	indexes indexCreator
}

// indexCreator is the part of mongo.IndexView the repository needs.
type indexCreator interface {
	CreateMany(ctx context.Context, indexes []mongo.IndexModel, opts ...*options.CreateIndexesOptions) ([]string, error)
}

// NewMongoAppointmentRepo builds the repository and its indexes. It is only
// returned once the unique active-slot index exists.
func NewMongoAppointmentRepo(ctx context.Context) (AppointmentRepository, error) {
	coll := database.DB().Collection("appointments")
	return newMongoAppointmentRepo(ctx, coll, coll.Indexes())
}

func newMongoAppointmentRepo(ctx context.Context, coll *mongo.Collection, indexes indexCreator) (*MongoAppointmentRepo, error) {
	repo := &MongoAppointmentRepo{coll: coll, indexes: indexes}
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// EnsureIndexes creates the slot uniqueness index plus the listing indexes.
// The unique index only covers active documents, so a cancelled appointment
// frees its slot.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.indexes.CreateMany(ctx, appointmentIndexes()); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

func appointmentIndexes() []mongo.IndexModel {
	slotIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctorId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().
			SetName(slotIndexName).
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"active": true}),
	}
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		slotIdx,
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "status", Value: 1}}},
	}
}

const slotIndexName = "uniq_active_slot"

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	appt.Active = appt.Status != models.StatusCancelled

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", database.WrapWriteError(err))
	}
	return nil
}

func (r *MongoAppointmentRepo) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"time": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"doctorId": doctorID, "date": date, "active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	times := []string{}
	for cursor.Next(ctx) {
		var a struct {
			Time string `bson:"time"`
		}
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode booked slot: %w", err)
		}
		times = append(times, a.Time)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return times, nil
}

var byDateTime = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, doctorID, status string) ([]models.Appointment, error) {
	filter := bson.M{"doctorId": doctorID}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter, options.Find().SetSort(byDateTime))
}

func (r *MongoAppointmentRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID}, options.Find().SetSort(byDateTime))
}

func (r *MongoAppointmentRepo) ListOnDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID, "date": date}, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
}

func (r *MongoAppointmentRepo) ListAfter(ctx context.Context, doctorID, date string, limit int64) ([]models.Appointment, error) {
	opts := options.Find().SetSort(byDateTime).SetLimit(limit)
	return r.find(ctx, bson.M{"doctorId": doctorID, "date": bson.M{"$gt": date}}, opts)
}

func (r *MongoAppointmentRepo) GetForDoctor(ctx context.Context, id, doctorID string) (*models.Appointment, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "doctorId": doctorID}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) TransitionStatus(ctx context.Context, id, doctorID string, from []string, to string) (*models.Appointment, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "doctorId": doctorID, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{
		"status":    to,
		"active":    to != models.StatusCancelled,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, database.WrapWriteError(err))
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) Delete(ctx context.Context, id, doctorID string) (*models.Appointment, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id, "doctorId": doctorID}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return &appt, nil
}
