package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"amedick/database"
	"amedick/models"
	"amedick/services/notification"
	"amedick/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultAdminService) ListPendingDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.Doctors.ListByStatus(ctx, models.VerificationPending)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		doctors[i].PasswordHash = ""
	}
	return doctors, nil
}

// ApproveDoctor makes the doctor bookable and tells them so.
func (s *DefaultAdminService) ApproveDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := s.Doctors.UpdateFields(ctx, doctorID, bson.M{
		"verificationStatus": models.VerificationApproved,
		"updatedAt":          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	doctor.PasswordHash = ""
	s.invalidateDirectory(ctx)

	if err := s.Mailer.Send(ctx, notification.DoctorApprovedMail(doctor)); err != nil {
		utils.GetLogger().Warn("Approval mail not queued", zap.String("doctorId", doctorID), zap.Error(err))
	}
	utils.GetLogger().Info("Doctor approved", zap.String("doctorId", doctorID))
	return doctor, nil
}

// RejectDoctor mails the reason and then removes the registration entirely.
func (s *DefaultAdminService) RejectDoctor(ctx context.Context, doctorID, reason string) error {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := s.Mailer.Send(ctx, notification.DoctorRejectedMail(doctor, strings.TrimSpace(reason))); err != nil {
		utils.GetLogger().Warn("Rejection mail not queued", zap.String("doctorId", doctorID), zap.Error(err))
	}
	if err := s.Doctors.Delete(ctx, doctorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}
	if doctor.VerificationStatus == models.VerificationApproved {
		s.invalidateDirectory(ctx)
	}
	utils.GetLogger().Info("Doctor rejected", zap.String("doctorId", doctorID))
	return nil
}

func (s *DefaultAdminService) invalidateDirectory(ctx context.Context) {
	if s.Directory != nil {
		s.Directory.Invalidate(ctx)
	}
}
