package clients

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"admin-bff-service/internal/models"
)

// CategoriesClient handles communication with the categories-service
type CategoriesClient struct {
	baseURL    string
	httpClient *http.Client
}

// CategoryFilter narrows a category list request
type CategoryFilter struct {
	Search     string
	ActiveOnly bool
}

// NewCategoriesClient creates a new categories client
func NewCategoriesClient() *CategoriesClient {
	baseURL := os.Getenv("CATEGORIES_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://categories-service:8080"
	}

	return &CategoriesClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetCategories lists categories for a tenant
func (c *CategoriesClient) GetCategories(claims ClaimHeaders, filter CategoryFilter) ([]models.Category, error) {
	params := url.Values{}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.ActiveOnly {
		params.Set("isActive", "true")
	}

	endpoint := fmt.Sprintf("%s/api/v1/categories", c.baseURL)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[CategoriesClient] Error calling categories API: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list categories: %d - %s", resp.StatusCode, string(body))
	}

	var result models.CategoryListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateCategory creates a new category
func (c *CategoriesClient) CreateCategory(claims ClaimHeaders, payload models.CreateCategoryRequest) (*models.Category, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v1/categories", c.baseURL), bytes.NewBuffer(body))
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

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create category: %d - %s", resp.StatusCode, string(respBody))
	}

	var result models.CategoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	log.Printf("[CategoriesClient] Created category '%s' (ID: %s)", payload.Name, result.Data.ID)
	return result.Data, nil
}

// FindCategoryByName searches for a category by name (case-insensitive).
// Returns nil without error when no category matches.
func (c *CategoriesClient) FindCategoryByName(claims ClaimHeaders, name string) (*models.Category, error) {
	categories, err := c.GetCategories(claims, CategoryFilter{})
	if err != nil {
		return nil, err
	}

	nameLower := strings.ToLower(name)
	for _, cat := range categories {
		if strings.ToLower(cat.Name) == nameLower {
			return &cat, nil
		}
	}
	return nil, nil
}
