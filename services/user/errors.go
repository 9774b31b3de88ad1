package user

import (
	"net/http"

	"amedick/utils"
)

var (
	ErrMissingFields      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Name, email and password are required")
	ErrEmailRequired      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Email is required")
	ErrCredentialsMissing = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Email and password required")
	ErrUserExists         = utils.NewAppError(http.StatusBadRequest, "user_exists", "User already exists")
	ErrOTPExpired         = utils.NewAppError(http.StatusBadRequest, "otp_expired", "OTP expired or not requested")
	ErrInvalidOTP         = utils.NewAppError(http.StatusBadRequest, "invalid_otp", "Invalid OTP")
	ErrOTPLocked          = utils.NewAppError(http.StatusTooManyRequests, "otp_locked", "Too many invalid OTP attempts, please sign up again")
	ErrUserNotFound       = utils.NewAppError(http.StatusNotFound, "user_not_found", "User not found")
	ErrInvalidCredentials = utils.NewAppError(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrNotActivated       = utils.NewAppError(http.StatusForbidden, "not_activated", "Account not activated")
	ErrUploadFailed       = utils.NewAppError(http.StatusBadGateway, "upload_failed", "Could not store uploaded file")
)
