package models

// SignupRequest is the first step of patient registration.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest completes a pending patient signup.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest is shared by patient, doctor and admin logins.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PendingSignup is what the OTP store keeps between signup and verification.
type PendingSignup struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Secret       string `json:"secret"`
}

// AuthResponse is returned by every successful login.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    any    `json:"user,omitempty"`
	Doctor  any    `json:"doctor,omitempty"`
	Admin   any    `json:"admin,omitempty"`
}
