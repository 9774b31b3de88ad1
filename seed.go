package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amedick/database"
	doctorRepo "amedick/database/repository/doctor"
	"amedick/models"
	"amedick/services/availability"
	"amedick/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// demoWeek is Monday to Friday mornings plus Saturday late morning.
var demoWeek = map[int]string{
	1: "09:00-12:00, 14:00-16:00",
	2: "09:00-12:00, 14:00-16:00",
	3: "09:00-12:00",
	4: "09:00-12:00, 14:00-16:00",
	5: "09:00-12:00",
	6: "10:00-12:00",
}

func demoAvailability() []models.DayAvailability {
	days := make([]models.DayAvailability, 0, len(demoWeek))
	for day := 0; day < 7; day++ {
		ranges, ok := demoWeek[day]
		if !ok {
			continue
		}
		days = append(days, models.DayAvailability{Day: day, Slots: availability.ParseRanges(ranges, availability.SlotStep)})
	}
	return days
}

func runSeed(ctx context.Context, email, password string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	doctors := doctorRepo.NewMongoDoctorRepo()
	email = strings.ToLower(strings.TrimSpace(email))
	week := demoAvailability()

	existing, err := doctors.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if _, err := doctors.UpdateFields(ctx, existing.ID, bson.M{
			"verificationStatus": models.VerificationApproved,
			"updatedAt":          time.Now(),
		}); err != nil {
			return err
		}
		for _, d := range week {
			if err := doctors.UpsertDay(ctx, existing.ID, d.Day, d.Slots); err != nil {
				return fmt.Errorf("failed to seed day %d: %w", d.Day, err)
			}
		}
		logger.Info("seed: demo doctor refreshed", zap.String("doctorId", existing.ID))
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	doc := &models.Doctor{
		ID:                 uuid.New().String(),
		Name:               "Demo Doctor",
		Email:              email,
		PasswordHash:       hash,
		Specialization:     "General Medicine",
		RegistrationNumber: "DEMO-0001",
		RegistrationYear:   2015,
		Experience:         10,
		Clinic:             &models.Clinic{Name: "AmedicK Demo Clinic", City: "Pune", Fee: 500},
		VerificationStatus: models.VerificationApproved,
		Availability:       week,
	}
	if err := doctors.Create(ctx, doc); err != nil {
		return err
	}
	logger.Info("seed: demo doctor created", zap.String("doctorId", doc.ID), zap.String("email", email))
	return nil
}
