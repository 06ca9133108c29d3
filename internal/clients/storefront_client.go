package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"admin-bff-service/internal/models"
)

// StorefrontClient handles communication with the vendor-service storefront
// endpoints (settings and branding)
type StorefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

// backendSettingsResponse is the vendor-service settings envelope
type backendSettingsResponse struct {
	Success bool                              `json:"success"`
	Data    *models.BackendStorefrontSettings `json:"data,omitempty"`
	Message *string                           `json:"message,omitempty"`
}

// NewStorefrontClient creates a new storefront client
func NewStorefrontClient() *StorefrontClient {
	baseURL := os.Getenv("VENDOR_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://vendor-service:8080"
	}

	return &StorefrontClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetSettings fetches the stored settings for one storefront
func (c *StorefrontClient) GetSettings(claims ClaimHeaders, storefrontID string) (*models.BackendStorefrontSettings, error) {
	req, err := http.NewRequest("GET", c.settingsURL(storefrontID), nil)
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch storefront settings: %d - %s", resp.StatusCode, string(body))
	}

	var result backendSettingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if !result.Success || result.Data == nil {
		return nil, fmt.Errorf("storefront settings not available")
	}
	return result.Data, nil
}

// SaveSettings creates or replaces the settings for one storefront
func (c *StorefrontClient) SaveSettings(claims ClaimHeaders, storefrontID string, settings models.BackendStorefrontSettings) (*models.BackendStorefrontSettings, error) {
	return c.writeSettings("POST", claims, storefrontID, settings)
}

// PatchSettings partially updates the settings for one storefront
func (c *StorefrontClient) PatchSettings(claims ClaimHeaders, storefrontID string, settings models.BackendStorefrontSettings) (*models.BackendStorefrontSettings, error) {
	return c.writeSettings("PATCH", claims, storefrontID, settings)
}

// DeleteSettings resets a storefront to its default settings
func (c *StorefrontClient) DeleteSettings(claims ClaimHeaders, storefrontID string) error {
	req, err := http.NewRequest("DELETE", c.settingsURL(storefrontID), nil)
	if err != nil {
		return err
	}
	claims.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("failed to delete storefront settings: %d - %s", resp.StatusCode, string(body))
}

// GetBranding fetches the branding configuration for one storefront
func (c *StorefrontClient) GetBranding(claims ClaimHeaders, storefrontID string) (*models.BrandingConfig, error) {
	req, err := http.NewRequest("GET", c.brandingURL(storefrontID), nil)
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch branding: %d - %s", resp.StatusCode, string(body))
	}

	var result models.BrandingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// PatchBranding partially updates branding for one storefront
func (c *StorefrontClient) PatchBranding(claims ClaimHeaders, storefrontID string, branding models.BrandingConfig) (*models.BrandingConfig, error) {
	body, err := json.Marshal(branding)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("PATCH", c.brandingURL(storefrontID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to update branding: %d - %s", resp.StatusCode, string(respBody))
	}

	var result models.BrandingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *StorefrontClient) writeSettings(method string, claims ClaimHeaders, storefrontID string, settings models.BackendStorefrontSettings) (*models.BackendStorefrontSettings, error) {
	body, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, c.settingsURL(storefrontID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to save storefront settings: %d - %s", resp.StatusCode, string(respBody))
	}

	var result backendSettingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		saved := settings
		return &saved, nil
	}
	return result.Data, nil
}

func (c *StorefrontClient) settingsURL(storefrontID string) string {
	return fmt.Sprintf("%s/api/v1/storefronts/%s/settings", c.baseURL, storefrontID)
}

func (c *StorefrontClient) brandingURL(storefrontID string) string {
	return fmt.Sprintf("%s/api/v1/storefronts/%s/branding", c.baseURL, storefrontID)
}
