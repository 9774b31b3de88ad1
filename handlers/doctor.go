package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"amedick/models"
	"amedick/services/doctor"
	"amedick/services/storage"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var registrationFiles = []string{"medicalRegistrationCertificate", "degreeCertificate", "govtIdProof", "profilePhoto"}

type DoctorHandler struct {
	Service doctor.DoctorService
}

func NewDoctorHandler(service doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: service}
}

// RegisterHandler handles POST /doctor/register (multipart).
func (h *DoctorHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)
	var form models.DoctorRegistration
	if err := c.ShouldBind(&form); err != nil {
		logger.Debug("Invalid doctor registration", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "invalid_request")
		return
	}

	var files []storage.File
	if isMultipart(c) {
		var closeFiles func()
		var err error
		files, closeFiles, err = formFiles(c, registrationFiles...)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid upload", "invalid_request")
			return
		}
		defer closeFiles()
	}

	doc, err := h.Service.Register(c.Request.Context(), form, files)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	logger.Info("Doctor registered", zap.String("doctorId", doc.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Registration submitted. Await verification.", "doctor": doc})
}

// LoginHandler handles POST /doctor/login.
func (h *DoctorHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, doc, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.AuthResponse{Message: "Login successful", Token: token, Doctor: doc})
}

// ListDoctorsHandler handles GET /doctor/appointments/doctors.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.ListDoctors(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list doctors", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) GetProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	doc, err := h.Service.GetProfile(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": doc})
}

// UpdateProfileHandler handles PATCH /api/doctor/profile. Multipart requests carry
// the clinic as a JSON string field and an optional profilePhoto part.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var update models.DoctorProfileUpdate
	var photo *storage.File
	if isMultipart(c) {
		if err := c.ShouldBind(&update); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "invalid_request")
			return
		}
		if raw := strings.TrimSpace(c.PostForm("clinic")); raw != "" {
			var clinic models.Clinic
			if err := json.Unmarshal([]byte(raw), &clinic); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "clinic must be a JSON object", "invalid_request")
				return
			}
			update.Clinic = &clinic
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

	doc, err := h.Service.UpdateProfile(c.Request.Context(), p.ID, update, photo)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "doctor": doc})
}

func (h *DoctorHandler) GetAvailabilityHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	days, err := h.Service.GetAvailability(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

func (h *DoctorHandler) UpsertAvailabilityHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req models.UpsertAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}
	days, err := h.Service.UpsertAvailability(c.Request.Context(), p.ID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability saved", "availability": days})
}

func (h *DoctorHandler) GetAvailabilityRangesHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	ranges, err := h.Service.GetAvailabilityRanges(c.Request.Context(), p.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges})
}

// DeleteAvailabilityHandler handles DELETE /api/doctor/availability/:day[?slot=HH:MM].
func (h *DoctorHandler) DeleteAvailabilityHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	days, err := h.Service.DeleteAvailability(c.Request.Context(), p.ID, day, c.Query("slot"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "availability": days})
}

// DeleteAvailabilityRangeHandler handles DELETE /api/doctor/availability/:day/range?start&end.
func (h *DoctorHandler) DeleteAvailabilityRangeHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	day, ok := dayParam(c)
	if !ok {
		return
	}
	days, err := h.Service.DeleteAvailabilityRange(c.Request.Context(), p.ID, day, c.Query("start"), c.Query("end"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "availability": days})
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.RespondError(c, doctor.ErrInvalidDay)
		return 0, false
	}
	return day, true
}
