package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/middleware"
	"admin-bff-service/internal/repository"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newSettingsHandler(t *testing.T, backendURL string) *SettingsHandler {
	t.Setenv("VENDOR_SERVICE_URL", backendURL)
	return &SettingsHandler{
		repo:             repository.NewSessionsRepository(nil),
		storefrontClient: clients.NewStorefrontClient(),
		logger:           quietLogger().WithField("component", "settings"),
	}
}

func setupSettingsRouter(h *SettingsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/v1/storefront")
	grp.Use(func(c *gin.Context) {
		c.Set("tenant_id", "tenant-1")
		c.Set("user_id", "user-1")
		c.Next()
	})
	grp.Use(middleware.StorefrontMiddleware())
	grp.GET("/settings", h.GetSettings)
	grp.POST("/settings", h.SaveSettings)
	grp.PATCH("/settings", h.PatchSettings)
	grp.DELETE("/settings", h.DeleteSettings)
	return r
}

func TestGetSettings_TranslatesBackendFieldNames(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tenant-1", r.Header.Get("x-jwt-claim-tenant-id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"showHero":false,"showWishlistButton":true,"termsRequired":true,"showSearch":true,"showReviews":false,"productsPerPage":24,"currencyCode":"EUR"}}`))
	}))
	defer backend.Close()

	router := setupSettingsRouter(newSettingsHandler(t, backend.URL))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/storefront/settings", nil)
	req.Header.Set("X-Storefront-ID", "store-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["heroEnabled"])
	assert.Equal(t, true, data["showWishlist"])
	assert.Equal(t, true, data["showTermsCheckbox"])
	assert.Equal(t, float64(24), data["productsPerPage"])
	assert.NotContains(t, data, "showHero", "backend field names must not leak")
	assert.NotContains(t, data, "termsRequired")
}

func TestGetSettings_FallsBackToDefaultsWhenBackendDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close() // unreachable on purpose

	router := setupSettingsRouter(newSettingsHandler(t, backend.URL))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/storefront/settings", nil)
	req.Header.Set("X-Storefront-ID", "store-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "backend failure must not surface on GET")

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["heroEnabled"])
	assert.Equal(t, true, data["showWishlist"])
	assert.Equal(t, false, data["showTermsCheckbox"])
	assert.Equal(t, "USD", data["currencyCode"])
}

func TestGetSettings_MissingStorefrontHeader(t *testing.T) {
	router := setupSettingsRouter(newSettingsHandler(t, "http://localhost:1"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/storefront/settings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchSettings_TranslatesOutboundFieldNames(t *testing.T) {
	var received map[string]interface{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"showHero":true,"showWishlistButton":false,"termsRequired":true,"showSearch":true,"showReviews":true,"productsPerPage":12,"currencyCode":"USD"}}`))
	}))
	defer backend.Close()

	router := setupSettingsRouter(newSettingsHandler(t, backend.URL))

	body, _ := json.Marshal(map[string]interface{}{
		"heroEnabled":       true,
		"showWishlist":      false,
		"showTermsCheckbox": true,
		"productsPerPage":   12,
		"currencyCode":      "USD",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/storefront/settings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-ID", "store-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// vendor-service received its own field names
	assert.Equal(t, true, received["showHero"])
	assert.Equal(t, false, received["showWishlistButton"])
	assert.Equal(t, true, received["termsRequired"])
	assert.NotContains(t, received, "heroEnabled")

	// the admin response carries the admin field names
	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["heroEnabled"])
	assert.Equal(t, false, data["showWishlist"])
}

func TestPatchSettings_BackendFailureSurfaces(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	router := setupSettingsRouter(newSettingsHandler(t, backend.URL))

	body, _ := json.Marshal(map[string]interface{}{"heroEnabled": true})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/storefront/settings", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-ID", "store-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code, "writes surface backend failures, unlike GET")
}
