package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olliebm/boards-sync/api"
	"github.com/olliebm/boards-sync/internal/models"
)

func TestManifest(t *testing.T) {
	manifest := api.Manifest("http://localhost:4000")

	assert.Equal(t, "boards-sync", manifest.AppID)
	assert.Equal(t, "http", manifest.AppType)
	assert.Equal(t, "http://localhost:4000", manifest.HTTP.RootURL)
	assert.Contains(t, manifest.RequestedPermissions, "act_as_bot")
	assert.ElementsMatch(t, []string{"/channel_header", "/command"}, manifest.RequestedLocations)
}

func TestBindingsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	appHandler := &api.AppHandler{RootURL: "http://localhost:4000"}
	router := gin.New()
	router.GET("/manifest.json", appHandler.ManifestHandler)
	router.POST("/bindings", appHandler.BindingsHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bindings", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Type string              `json:"type"`
		Data []models.AppBinding `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Type)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "/channel_header", resp.Data[0].Location)
	assert.Equal(t, "/command", resp.Data[1].Location)

	// The command binding nests a send subcommand carrying the form.
	command := resp.Data[1].Bindings[0]
	require.Len(t, command.Bindings, 1)
	require.NotNil(t, command.Bindings[0].Form)
	assert.Equal(t, "/submit", command.Bindings[0].Form.Submit.Path)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifest.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var manifest models.AppManifest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &manifest))
	assert.Equal(t, "boards-sync", manifest.AppID)
}
