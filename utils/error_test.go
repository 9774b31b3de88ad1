package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	notFound := NewAppError(http.StatusNotFound, "doctor_not_found", "Doctor not found")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{"app error", notFound, http.StatusNotFound, "doctor_not_found", "Doctor not found"},
		{"wrapped app error", fmt.Errorf("lookup: %w", notFound), http.StatusNotFound, "doctor_not_found", "Doctor not found"},
		{"plain error", fmt.Errorf("connection reset"), http.StatusInternalServerError, "internal_error", "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body %q: %v", w.Body.String(), err)
			}
			if body["success"] != false || body["error"] != tt.wantErr || body["message"] != tt.wantMsg {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
