package clients

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TranslateClient forwards requests to the translation-service. Translations
// of large catalogs can take a while, so this client carries a longer timeout
// than the other service clients.
type TranslateClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTranslateClient creates a new translation client
func NewTranslateClient() *TranslateClient {
	baseURL := os.Getenv("TRANSLATION_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://translation-service:8080"
	}

	return &TranslateClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Do forwards a request to the translation service and returns the raw
// response. The caller owns the response body and must close it. Transport
// errors (including timeouts) come back as the error; HTTP-level failures are
// returned as-is for the caller to relay.
func (c *TranslateClient) Do(ctx context.Context, claims ClaimHeaders, method, path, rawQuery string, body io.Reader, contentType string) (*http.Response, error) {
	url := c.baseURL + "/api/v1/translations" + path
	if rawQuery != "" {
		url += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.httpClient.Do(req)
}
