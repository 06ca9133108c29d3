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
	"strconv"
	"strings"
	"time"

	"admin-bff-service/internal/models"
)

// ProductsClient handles communication with the products-service
type ProductsClient struct {
	baseURL    string
	httpClient *http.Client
}

// ProductListFilter narrows a product list request
type ProductListFilter struct {
	Page     int
	Limit    int
	Status   string
	Category string
	Search   string
}

// NewProductsClient creates a new products client
func NewProductsClient() *ProductsClient {
	baseURL := os.Getenv("PRODUCTS_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://products-service:8080"
	}

	return &ProductsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProducts lists products for a tenant
func (c *ProductsClient) GetProducts(claims ClaimHeaders, filter ProductListFilter) (*models.ProductListResponse, error) {
	params := url.Values{}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Category != "" {
		params.Set("categoryId", filter.Category)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}

	endpoint := fmt.Sprintf("%s/api/v1/products", c.baseURL)
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
		log.Printf("[ProductsClient] Error calling products API: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to list products: %d - %s", resp.StatusCode, string(body))
	}

	var result models.ProductListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct retrieves a single product by ID
func (c *ProductsClient) GetProduct(claims ClaimHeaders, productID string) (*models.Product, error) {
	endpoint := fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, productID)

	req, err := http.NewRequest("GET", endpoint, nil)
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
		return nil, fmt.Errorf("product not found: %d - %s", resp.StatusCode, string(body))
	}

	var result models.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// CreateProduct creates a new product
func (c *ProductsClient) CreateProduct(claims ClaimHeaders, payload models.CreateProductRequest) (*models.Product, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v1/products", c.baseURL), bytes.NewBuffer(body))
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
		return nil, fmt.Errorf("failed to create product: %d - %s", resp.StatusCode, string(respBody))
	}

	var result models.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	log.Printf("[ProductsClient] Created product '%s' (SKU: %s)", payload.Name, payload.SKU)
	return result.Data, nil
}

// UpdateProduct updates an existing product
func (c *ProductsClient) UpdateProduct(claims ClaimHeaders, productID string, payload models.UpdateProductRequest) (*models.Product, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("PUT", fmt.Sprintf("%s/api/v1/products/%s", c.baseURL, productID), bytes.NewBuffer(body))
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
		return nil, fmt.Errorf("failed to update product: %d - %s", resp.StatusCode, string(respBody))
	}

	var result models.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// UpdateProductStatus changes the status of one product
func (c *ProductsClient) UpdateProductStatus(claims ClaimHeaders, productID string, payload models.UpdateProductStatusRequest) (*models.Product, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("PUT", fmt.Sprintf("%s/api/v1/products/%s/status", c.baseURL, productID), bytes.NewBuffer(body))
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
		return nil, fmt.Errorf("failed to update product status: %d - %s", resp.StatusCode, string(respBody))
	}

	var result models.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// BulkUpdateProductStatus changes the status of several products at once
func (c *ProductsClient) BulkUpdateProductStatus(claims ClaimHeaders, payload models.BulkStatusUpdateRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/api/v1/products/bulk/status", c.baseURL), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	claims.Apply(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to bulk update status: %d - %s", resp.StatusCode, string(respBody))
	}

	log.Printf("[ProductsClient] Bulk status update applied to %d products", len(payload.ProductIDs))
	return nil
}
