package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-eduwatch/snapshot"
	"go-eduwatch/types"
)

type stubSource struct{}

func (stubSource) Name() string { return "stub" }

func (stubSource) FetchIncidents(_ context.Context, _ types.Filters) ([]types.SchoolIncident, error) {
	return []types.SchoolIncident{{UID: "1", Date: "2024-01-05", State: "TX"}}, nil
}

func setupTestRouter(clientURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(snapshot.NewProvider(stubSource{}), nil, nil, "", clientURL)
}

func TestCORSHeadersForConfiguredClient(t *testing.T) {
	r := setupTestRouter("http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	r := setupTestRouter("http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/incidents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestNoCORSHeadersWithoutClientURL(t *testing.T) {
	r := setupTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/incidents", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRootRoute(t *testing.T) {
	r := setupTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stub")
}

func TestReportsUnavailableWithoutFirestore(t *testing.T) {
	r := setupTestRouter("")

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
