package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kdcreatives/kdcreatives-backend/services"
)

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &services.ValidationError{Fields: []services.FieldError{{Field: "budget", Message: "required"}}}, http.StatusUnprocessableEntity},
		{"not found", &services.NotFoundError{Resource: "quotation"}, http.StatusNotFound},
		{"forbidden", &services.ForbiddenError{Reason: "admin access required"}, http.StatusForbidden},
		{"conflict", &services.ConflictError{Reason: "image cap reached"}, http.StatusConflict},
		{"unknown", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondServiceError(c, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
