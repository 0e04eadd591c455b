package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects-showcase/reservation-bot/internal/health"
	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
	"github.com/projects-showcase/reservation-bot/internal/reservation/storetest"
)

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := health.NewRouter(storetest.NewMemStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := storetest.NewMemStore()
	store.SeedProjects(
		domain.Project{Number: "1", Name: "Первый"},
		domain.Project{Number: "2", Name: "Второй"},
	)
	store.SeedTeams(
		domain.Team{LeaderID: "1", GroupName: "УЭИ-123", ProjectNumber: "1"},
		domain.Team{LeaderID: "2", GroupName: "УЭИ-123"},
	)
	router := health.NewRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.EqualValues(t, 2, body["teams"])
	assert.EqualValues(t, 1, body["reserved_teams"])
	assert.EqualValues(t, 2, body["projects"])
}
