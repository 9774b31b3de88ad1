package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"amedick/database"
	"amedick/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UpsertDay first tries a positional $set on an existing entry for the day and
// otherwise pushes a new entry guarded by "no entry for this day yet". When two
// writers race, one of the two writes always matches on the next attempt.
func (r *MongoDoctorRepo) UpsertDay(ctx context.Context, id string, day int, slots []string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	if slots == nil {
		slots = []string{}
	}
	now := time.Now()

	for attempt := 0; attempt < 2; attempt++ {
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"id": id, "availability.day": day},
			bson.M{"$set": bson.M{"availability.$.slots": slots, "updatedAt": now}},
		)
		if err != nil {
			return fmt.Errorf("failed to update availability for doctor %s: %w", id, err)
		}
		if res.MatchedCount > 0 {
			return nil
		}

		res, err = r.coll.UpdateOne(ctx,
			bson.M{"id": id, "availability.day": bson.M{"$ne": day}},
			bson.M{
				"$push": bson.M{"availability": models.DayAvailability{Day: day, Slots: slots}},
				"$set":  bson.M{"updatedAt": now},
			},
		)
		if err != nil {
			return fmt.Errorf("failed to add availability for doctor %s: %w", id, err)
		}
		if res.MatchedCount > 0 {
			return nil
		}

		if err := r.notFoundUnlessExists(ctx, id); err != nil {
			return err
		}
	}
	return fmt.Errorf("availability for doctor %s day %d changed concurrently", id, day)
}

// RemoveDay pulls the weekday entry.
func (r *MongoDoctorRepo) RemoveDay(ctx context.Context, id string, day int) (bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "availability.day": day},
		bson.M{
			"$pull": bson.M{"availability": bson.M{"day": day}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove availability for doctor %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}
	return false, r.notFoundUnlessExists(ctx, id)
}

// RemoveSlots pulls the given slots from one weekday entry.
func (r *MongoDoctorRepo) RemoveSlots(ctx context.Context, id string, day int, slots []string) (bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "availability.day": day},
		bson.M{
			"$pull": bson.M{"availability.$.slots": bson.M{"$in": slots}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove slots for doctor %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}
	return false, r.notFoundUnlessExists(ctx, id)
}

// notFoundUnlessExists returns database.ErrNotFound when the doctor is gone.
func (r *MongoDoctorRepo) notFoundUnlessExists(ctx context.Context, id string) error {
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoDoctorRepo) exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to look up doctor %s: %w", id, err)
	}
	return n > 0, nil
}
