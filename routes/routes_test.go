package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"amedick/config"
	"amedick/handlers"
	"amedick/middleware"
	"amedick/models"
	"amedick/services/admin"
	"amedick/services/booking"
	"amedick/services/doctor"
	"amedick/services/intelligence"
	"amedick/services/user"
	"amedick/utils"

	"github.com/gin-gonic/gin"
)

type fakeBooking struct {
	booking.BookingService
	booked []models.BookingRequest
}

func (f *fakeBooking) AvailableSlots(_ context.Context, doctorID, date string) ([]string, error) {
	if doctorID == "ghost" {
		return nil, booking.ErrDoctorNotFound
	}
	return []string{"09:00", "09:30"}, nil
}

func (f *fakeBooking) Book(_ context.Context, patientID string, req models.BookingRequest) (*models.Appointment, error) {
	for _, b := range f.booked {
		if b.DoctorID == req.DoctorID && b.Date == req.Date && b.Time == req.Time {
			return nil, booking.ErrSlotAlreadyBooked
		}
	}
	f.booked = append(f.booked, req)
	return &models.Appointment{ID: "a1", DoctorID: req.DoctorID, PatientID: patientID, Date: req.Date, Time: req.Time, Status: models.StatusBooked}, nil
}

func (f *fakeBooking) ListForPatient(_ context.Context, patientID string) ([]models.PatientAppointment, error) {
	return []models.PatientAppointment{{Appointment: models.Appointment{ID: "a1", PatientID: patientID}}}, nil
}

type fakeUsers struct {
	user.UserService
}

func (fakeUsers) Login(_ context.Context, email, password string) (string, *models.User, error) {
	if password != "pw" {
		return "", nil, user.ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(models.Principal{ID: "p1", Email: email, Role: models.RolePatient}, time.Hour)
	return token, &models.User{ID: "p1", Email: email}, err
}

func (fakeUsers) GetProfile(_ context.Context, userID string) (*user.ProfileView, error) {
	return &user.ProfileView{User: &models.User{ID: userID}, Profile: &models.Profile{UserID: userID}}, nil
}

type fakeDoctors struct {
	doctor.DoctorService
}

func (fakeDoctors) GetAvailability(context.Context, string) ([]models.DayAvailability, error) {
	return []models.DayAvailability{{Day: 1, Slots: []string{"09:00"}}}, nil
}

type fakeAdmins struct {
	admin.AdminService
}

type memRevoker struct {
	revoked map[string]bool
}

func (m *memRevoker) Revoke(_ context.Context, token string, _ time.Time) error {
	m.revoked[token] = true
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return m.revoked[token], nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeBooking) {
	t.Helper()
	return newLimitedTestRouter(t, nil)
}

func newLimitedTestRouter(t *testing.T, rateLimit gin.HandlerFunc) (*gin.Engine, *fakeBooking) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpires = time.Hour
	config.AppConfig.CORSOrigins = "http://localhost:5173"

	revoker := &memRevoker{revoked: map[string]bool{}}
	bookings := &fakeBooking{}
	userHandler := handlers.NewUserHandler(fakeUsers{})
	doctorHandler := handlers.NewDoctorHandler(fakeDoctors{})
	apptHandler := handlers.NewAppointmentHandler(bookings)
	aiHandler := handlers.NewAIHandler(&intelligence.DefaultAutocompleteService{})
	authHandler := handlers.NewAuthHandler(revoker)

	hb := handlers.NewHandlerBundle(middleware.Authenticate(revoker), rateLimit,
		userHandler, doctorHandler, apptHandler, handlers.NewAdminHandler(fakeAdmins{}), aiHandler, authHandler)
	r := gin.New()
	RegisterRoutes(r, hb)
	return r, bookings
}

func do(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, id string, role models.Role) string {
	t.Helper()
	token, err := utils.GenerateToken(models.Principal{ID: id, Email: id + "@example.com", Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestSlotQuery(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		path string
		want int
		body string
	}{
		{"missing date", "/available/appointments/slots?doctorId=d1", http.StatusBadRequest, "doctorId and date are required"},
		{"unknown doctor", "/available/appointments/slots?doctorId=ghost&date=2025-03-10", http.StatusNotFound, "Doctor not found"},
		{"ok", "/available/appointments/slots?doctorId=d1&date=2025-03-10", http.StatusOK, `["09:00","09:30"]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tc.path, "", "")
			if w.Code != tc.want || !strings.Contains(w.Body.String(), tc.body) {
				t.Errorf("got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestBookingGate(t *testing.T) {
	r, bookings := newTestRouter(t)
	body := `{"doctorId":"d1","date":"2025-03-10","time":"09:00"}`

	if w := do(r, http.MethodPost, "/appointment", "", body); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous booking = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/appointment", tokenFor(t, "d1", models.RoleDoctor), body); w.Code != http.StatusForbidden {
		t.Errorf("doctor booking = %d", w.Code)
	}

	patient := tokenFor(t, "p1", models.RolePatient)
	w := do(r, http.MethodPost, "/appointment", patient, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("booking = %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Appointment models.Appointment `json:"appointment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Appointment.PatientID != "p1" || len(bookings.booked) != 1 {
		t.Errorf("appointment = %+v", resp.Appointment)
	}

	if w := do(r, http.MethodPost, "/appointment", patient, body); w.Code != http.StatusConflict {
		t.Errorf("double booking = %d", w.Code)
	}
}

func TestPatientListOwnership(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/appointment/patient/p1", tokenFor(t, "p1", models.RolePatient), ""); w.Code != http.StatusOK {
		t.Errorf("own list = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/appointment/patient/p1", tokenFor(t, "p2", models.RolePatient), ""); w.Code != http.StatusForbidden {
		t.Errorf("other patient's list = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/appointment/patient/p1", tokenFor(t, "ops", models.RoleAdmin), ""); w.Code != http.StatusOK {
		t.Errorf("admin list = %d", w.Code)
	}
}

func TestLoginCookieAndLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/user/login", "", `{"email":"p1@example.com","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d %s", w.Code, w.Body.String())
	}
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Fatalf("access cookie missing or not HttpOnly: %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("profile via cookie = %d", w.Code)
	}

	if w := do(r, http.MethodPost, "/auth/logout", cookie.Value, ""); w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/user/profile", cookie.Value, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("profile after logout = %d", w.Code)
	}

	if w := do(r, http.MethodPost, "/user/login", "", `{"email":"p1@example.com","password":"nope"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d", w.Code)
	}
}

func TestRoleScopedRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/user/profile", tokenFor(t, "d1", models.RoleDoctor), ""); w.Code != http.StatusForbidden {
		t.Errorf("doctor on patient profile = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/doctor/availability", tokenFor(t, "d1", models.RoleDoctor), ""); w.Code != http.StatusOK {
		t.Errorf("doctor availability = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/doctor/availability", tokenFor(t, "p1", models.RolePatient), ""); w.Code != http.StatusForbidden {
		t.Errorf("patient on doctor availability = %d", w.Code)
	}
}

func TestAutocompleteFallback(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/ai/autocomplete", "", `{"text":"Review labs"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Review labs for a follow-up consultation") {
		t.Errorf("got %d %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRateLimitCoversAuthRoutes(t *testing.T) {
	paths := []string{"/user/login", "/user/verify-otp", "/doctor/login", "/api/admin/login"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			r, _ := newLimitedTestRouter(t, middleware.RateLimitMiddleware(3))
			for i := 0; i < 3; i++ {
				if w := do(r, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
					t.Fatalf("health %d = %d", i+1, w.Code)
				}
			}
			w := do(r, http.MethodPost, path, "", `{"email":"p1@example.com","otp":"123456"}`)
			if w.Code != http.StatusTooManyRequests {
				t.Errorf("%s after budget spent = %d, want 429", path, w.Code)
			}
		})
	}
}
