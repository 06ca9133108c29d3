package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"admin-bff-service/internal/models"
)

// MediaClient handles image uploads to the media-service
type MediaClient struct {
	baseURL    string
	httpClient *http.Client
}

// mediaUploadResponse is the media-service upload envelope
type mediaUploadResponse struct {
	Success bool                 `json:"success"`
	Image   *models.ProductImage `json:"image,omitempty"`
	Message *string              `json:"message,omitempty"`
}

// NewMediaClient creates a new media client
func NewMediaClient() *MediaClient {
	baseURL := os.Getenv("MEDIA_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://media-service:8080"
	}

	return &MediaClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// UploadProductImage uploads one image file for a product. The file content is
// streamed into a multipart body together with the product id, the image type
// tag and the requested position, and the claim headers are forwarded so the
// media-service stores the image under the right tenant.
func (c *MediaClient) UploadProductImage(ctx context.Context, claims ClaimHeaders, productID string, file io.Reader, fileName, contentType, imageType string, position int) (*models.ProductImage, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	writer.WriteField("productId", productID)
	writer.WriteField("imageType", imageType)
	writer.WriteField("position", strconv.Itoa(position))

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/media/images", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	claims.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to communicate with media service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result mediaUploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("invalid media service response: %d - %s", resp.StatusCode, string(respBody))
	}

	if !result.Success || result.Image == nil {
		msg := "upload rejected by media service"
		if result.Message != nil {
			msg = *result.Message
		}
		return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}

	if result.Image.FileName == "" {
		result.Image.FileName = fileName
	}
	return result.Image, nil
}

// DeleteProductImage removes an image from media storage. A 404 is treated as
// already deleted.
func (c *MediaClient) DeleteProductImage(ctx context.Context, claims ClaimHeaders, productID, imageID string) error {
	endpoint := fmt.Sprintf("%s/api/v1/media/images/%s?productId=%s", c.baseURL, imageID, productID)

	req, err := http.NewRequestWithContext(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	claims.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to communicate with media service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("failed to delete image: %d - %s", resp.StatusCode, string(respBody))
}
