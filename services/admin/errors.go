package admin

import (
	"net/http"

	"amedick/utils"
)

var (
	ErrSignupDisabled     = utils.NewAppError(http.StatusForbidden, "signup_disabled", "Admin signup is disabled")
	ErrMissingFields      = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Name, email and password are required")
	ErrCredentialsMissing = utils.NewAppError(http.StatusBadRequest, "missing_fields", "Email and password required")
	ErrAdminExists        = utils.NewAppError(http.StatusConflict, "admin_exists", "Admin already exists")
	ErrAdminNotFound      = utils.NewAppError(http.StatusNotFound, "admin_not_found", "Admin not found")
	ErrInvalidCredentials = utils.NewAppError(http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
	ErrDoctorNotFound     = utils.NewAppError(http.StatusNotFound, "doctor_not_found", "Doctor not found")
)
