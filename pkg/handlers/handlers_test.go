package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	config "research-brief-api/configs"
	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminHandler := NewAdminHandler(&config.Config{AdminUsername: "admin", AdminPassword: "pass"})
	router := gin.New()
	router.GET("/health", adminHandler.HealthCheck)

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminHandler := NewAdminHandler(&config.Config{AdminUsername: "admin"})
	router := gin.New()
	router.POST("/start", adminHandler.StartMaintenance)

	req, _ := http.NewRequest("POST", "/start", bytes.NewBufferString(`{"username":"admin","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDetectIntentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	monitoring := services.NewMonitoringService()
	h := NewIntentHandler(nil, monitoring, services.NewExportService())
	router := gin.New()
	router.POST("/detect", h.DetectIntent)

	req, _ := http.NewRequest("POST", "/detect", bytes.NewBufferString(`{"text":"why do consumers feel this way"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mode":"qualitative"`)
	assert.Equal(t, 1, monitoring.GetDashboardData(1).IntentDistribution[intent.Qualitative])

	req, _ = http.NewRequest("POST", "/detect", bytes.NewBufferString(`not json`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveMode(t *testing.T) {
	c := intent.Default()
	assert.Equal(t, intent.Quantitative, resolveMode(c, "why", "quantitative"))
	assert.Equal(t, intent.Mixed, resolveMode(c, "wh", ""))
	assert.Equal(t, intent.Qualitative, resolveMode(c, "why is it", ""))
	assert.Equal(t, intent.Mixed, resolveMode(c, "why is it", "nonsense"))
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForError(services.ErrCaseNotFound))
	assert.Equal(t, http.StatusNotFound, statusForError(services.ErrBriefNotFound))
	assert.Equal(t, http.StatusBadRequest, statusForError(services.ErrInvalidPosition))
	assert.Equal(t, http.StatusBadRequest, statusForError(services.ErrUnsupportedFile))
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("x")))
}
