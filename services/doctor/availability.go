package doctor

import (
	"context"
	"errors"

	"amedick/database"
	"amedick/models"
	"amedick/services/availability"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *DefaultDoctorService) GetAvailability(ctx context.Context, doctorID string) ([]models.DayAvailability, error) {
	doctor, err := s.Repo.GetByIDWithProjection(ctx, doctorID, bson.M{"id": 1, "availability": 1})
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Availability == nil {
		return []models.DayAvailability{}, nil
	}
	return doctor.Availability, nil
}

// UpsertAvailability replaces one weekday's slots. Ranges, when given, are
// expanded and merged with the explicit slots; unparseable range tokens are dropped.
func (s *DefaultDoctorService) UpsertAvailability(ctx context.Context, doctorID string, req models.UpsertAvailabilityRequest) ([]models.DayAvailability, error) {
	if req.Day == nil || (req.Slots == nil && req.Ranges == "") {
		return nil, ErrSlotsRequired
	}
	if !validDay(*req.Day) {
		return nil, ErrInvalidDay
	}
	for _, slot := range req.Slots {
		if !availability.ValidClock(slot) {
			return nil, ErrInvalidSlot
		}
	}

	slots := append([]string{}, req.Slots...)
	if req.Ranges != "" {
		slots = append(slots, availability.ParseRanges(req.Ranges, availability.SlotStep)...)
	}

	if err := s.Repo.UpsertDay(ctx, doctorID, *req.Day, availability.NormalizeSlots(slots)); err != nil {
		return nil, mapNotFound(err)
	}
	return s.GetAvailability(ctx, doctorID)
}

// DeleteAvailability removes one slot from a day, or the whole day when slot is empty.
func (s *DefaultDoctorService) DeleteAvailability(ctx context.Context, doctorID string, day int, slot string) ([]models.DayAvailability, error) {
	if !validDay(day) {
		return nil, ErrInvalidDay
	}

	var found bool
	var err error
	if slot == "" {
		found, err = s.Repo.RemoveDay(ctx, doctorID, day)
	} else {
		found, err = s.Repo.RemoveSlots(ctx, doctorID, day, []string{slot})
	}
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !found {
		return nil, ErrDayNotFound
	}
	return s.GetAvailability(ctx, doctorID)
}

// DeleteAvailabilityRange removes every slot in [start, end) from a day.
func (s *DefaultDoctorService) DeleteAvailabilityRange(ctx context.Context, doctorID string, day int, start, end string) ([]models.DayAvailability, error) {
	if !validDay(day) {
		return nil, ErrInvalidDay
	}
	slots, err := availability.ExpandRange(start, end, availability.SlotStep)
	if err != nil {
		return nil, ErrInvalidRange
	}

	found, err := s.Repo.RemoveSlots(ctx, doctorID, day, slots)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !found {
		return nil, ErrDayNotFound
	}
	return s.GetAvailability(ctx, doctorID)
}

// GetAvailabilityRanges returns the template compressed into ranges, ordered by weekday.
func (s *DefaultDoctorService) GetAvailabilityRanges(ctx context.Context, doctorID string) ([]DayRanges, error) {
	days, err := s.GetAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	weekly := availability.FromDays(days)

	out := []DayRanges{}
	for day := 0; day < 7; day++ {
		slots, ok := weekly[day]
		if !ok {
			continue
		}
		out = append(out, DayRanges{Day: day, Ranges: availability.CompressToRanges(slots, availability.SlotStep)})
	}
	return out, nil
}

func validDay(day int) bool {
	return day >= 0 && day <= 6
}

func mapNotFound(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return ErrDoctorNotFound
	}
	return err
}
