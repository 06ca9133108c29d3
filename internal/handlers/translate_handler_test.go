package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"admin-bff-service/internal/clients"
)

func newTranslateHandler(t *testing.T, backendURL string) *TranslateHandler {
	t.Setenv("TRANSLATION_SERVICE_URL", backendURL)
	return &TranslateHandler{
		client: clients.NewTranslateClient(),
		logger: quietLogger().WithField("component", "translate-proxy"),
	}
}

func setupTranslateRouter(h *TranslateHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/api/v1")
	grp.Use(func(c *gin.Context) {
		c.Set("tenant_id", "tenant-1")
		c.Set("user_id", "user-1")
		c.Next()
	})
	grp.Any("/translations/*path", h.Proxy)
	return r
}

func TestTranslateProxy_Passthrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/translations/products/p-1", r.URL.Path)
		assert.Equal(t, "locale=de", r.URL.RawQuery)
		assert.Equal(t, "tenant-1", r.Header.Get("x-jwt-claim-tenant-id"))

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "Stuhl", body["name"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"id":"tr-1"}}`))
	}))
	defer backend.Close()

	router := setupTranslateRouter(newTranslateHandler(t, backend.URL))

	body, _ := json.Marshal(map[string]string{"name": "Stuhl"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/translations/products/p-1?locale=de", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, "upstream status relays as-is")
	assert.Contains(t, w.Body.String(), "tr-1")
}

func TestTranslateProxy_UpstreamErrorRelaysAsIs(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND"}}`))
	}))
	defer backend.Close()

	router := setupTranslateRouter(newTranslateHandler(t, backend.URL))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/translations/products/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestTranslateProxy_Unreachable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	router := setupTranslateRouter(newTranslateHandler(t, backend.URL))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/translations/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSLATION_UNAVAILABLE")
}

func TestTranslateProxy_Timeout(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer backend.Close()

	router := setupTranslateRouter(newTranslateHandler(t, backend.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/translations/products", nil)
	req = req.WithContext(ctx)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "TRANSLATION_TIMEOUT")
}
