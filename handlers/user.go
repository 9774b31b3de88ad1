package handlers

import (
	"net/http"

	"amedick/models"
	"amedick/services/storage"
	"amedick/services/user"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(service user.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// SignupHandler handles POST /user/signup.
func (h *UserHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.InitiateSignup(c.Request.Context(), req); err != nil {
		getLogger(c).Info("Signup rejected", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

// SendOTPHandler handles POST /user/send-otp.
func (h *UserHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.ResendOTP(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent to your email"})
}

// VerifyOTPHandler handles POST /user/verify-otp.
func (h *UserHandler) VerifyOTPHandler(c *gin.Context) {
	var req models.VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Service.VerifySignup(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Patient signed up", zap.String("userId", u.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signup successful", "user": u})
}

// LoginHandler handles POST /user/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, u, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.AuthResponse{Message: "Login successful", Token: token, User: u})
}

// GetProfileHandler handles GET /user/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	view, err := h.Service.GetProfile(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateProfileHandler handles PUT /user/profile as JSON or multipart with a profilePhoto part.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	var photo *storage.File
	if isMultipart(c) {
		if err := c.ShouldBind(&update); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "invalid_request")
			return
		}
		files, closeFiles, err := formFiles(c, "profilePhoto")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid upload", "invalid_request")
			return
		}
		defer closeFiles()
		if len(files) > 0 {
			photo = &files[0]
		}
	} else if !bindJSON(c, &update) {
		return
	}

	view, err := h.Service.UpdateProfile(c.Request.Context(), p.ID, update, photo)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": view.Profile, "user": view.User})
}
