package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"amedick/database"
	"amedick/models"
	"amedick/services/notification"
	"amedick/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitiateSignup parks the signup in the OTP store and mails a code.
// The account itself is only created once the code is verified.
func (s *DefaultUserService) InitiateSignup(ctx context.Context, req models.SignupRequest) error {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" {
		return ErrMissingFields
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	secret, err := utils.NewOTPSecret(email)
	if err != nil {
		return err
	}

	// A fresh signup starts a fresh attempt budget.
	if err := s.OTPs.Delete(ctx, email); err != nil {
		return err
	}
	pending := models.PendingSignup{Name: name, Email: email, PasswordHash: hash, Secret: secret}
	if err := s.OTPs.Save(ctx, pending, s.OTPTTL); err != nil {
		return err
	}
	return s.sendCode(ctx, pending)
}

// ResendOTP mails a fresh code for a signup that is still pending and restarts its expiry.
func (s *DefaultUserService) ResendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	pending, err := s.OTPs.Get(ctx, email)
	if err != nil {
		return err
	}
	if pending == nil {
		return ErrOTPExpired
	}
	secret, err := utils.NewOTPSecret(email)
	if err != nil {
		return err
	}
	pending.Secret = secret
	if err := s.OTPs.Save(ctx, *pending, s.OTPTTL); err != nil {
		return err
	}
	return s.sendCode(ctx, *pending)
}

func (s *DefaultUserService) sendCode(ctx context.Context, pending models.PendingSignup) error {
	code, err := utils.OTPCode(pending.Secret, s.now())
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	utils.GetLogger().Debug("Signup OTP issued", zap.String("email", pending.Email))
	if err := s.Mailer.Send(ctx, notification.SignupOTPMail(pending.Email, pending.Name, code, s.OTPTTL)); err != nil {
		return fmt.Errorf("failed to send otp: %w", err)
	}
	return nil
}

// VerifySignup checks the code and creates the activated account. Every attempt
// is counted before the code is checked; once the budget is spent the pending
// signup is dropped and the user has to sign up again.
func (s *DefaultUserService) VerifySignup(ctx context.Context, email, otp string) (*models.User, error) {
	email = normalizeEmail(email)
	pending, err := s.OTPs.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, ErrOTPExpired
	}

	attempts, err := s.OTPs.CountAttempt(ctx, email, s.OTPTTL)
	if err != nil {
		return nil, err
	}
	if attempts > s.maxOTPAttempts() {
		s.dropPending(ctx, email)
		return nil, ErrOTPLocked
	}
	if !utils.ValidOTP(strings.TrimSpace(otp), pending.Secret, s.now()) {
		if attempts == s.maxOTPAttempts() {
			utils.GetLogger().Warn("Pending signup locked after failed OTP attempts", zap.String("email", email))
			s.dropPending(ctx, email)
			return nil, ErrOTPLocked
		}
		return nil, ErrInvalidOTP
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		IsActivated:  true,
		DateJoined:   s.now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	s.dropPending(ctx, email)
	return user, nil
}

func (s *DefaultUserService) dropPending(ctx context.Context, email string) {
	if err := s.OTPs.Delete(ctx, email); err != nil {
		utils.GetLogger().Warn("Failed to clear pending signup", zap.String("email", email), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
