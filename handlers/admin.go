package handlers

import (
	"net/http"

	"amedick/models"
	"amedick/services/admin"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler covers admin accounts and doctor verification.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(service admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

func (h *AdminHandler) SignupHandler(c *gin.Context) {
	var req models.AdminSignupRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Service.Signup(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully", "admin": a.Safe()})
}

func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, a, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setSessionCookie(c, token)
	c.JSON(http.StatusOK, models.AuthResponse{Message: "Login successful", Token: token, Admin: a.Safe()})
}

// PendingDoctorsHandler handles GET /api/admin/doctors/pending.
func (h *AdminHandler) PendingDoctorsHandler(c *gin.Context) {
	doctors, err := h.Service.ListPendingDoctors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(doctors), "doctors": doctors})
}

// ApproveDoctorHandler handles PATCH /api/admin/doctor/approve/:id.
func (h *AdminHandler) ApproveDoctorHandler(c *gin.Context) {
	doc, err := h.Service.ApproveDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor approved", "doctor": doc})
}

// RejectDoctorHandler handles PATCH /api/admin/doctor/reject/:id. The body is optional.
func (h *AdminHandler) RejectDoctorHandler(c *gin.Context) {
	var req models.RejectDoctorRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	id := c.Param("id")
	if err := h.Service.RejectDoctor(c.Request.Context(), id, req.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Doctor rejected", zap.String("doctorId", id))
	var reason any
	if req.Reason != "" {
		reason = req.Reason
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor rejected and deleted", "reason": reason})
}
