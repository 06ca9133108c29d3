package models

import "time"

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// ImageType constants sent to media-service with each upload
const (
	ImageTypePrimary = "primary"
	ImageTypeGallery = "gallery"
)

// MediaLimits defines upload limits enforced before any file leaves the BFF
var MediaLimits = struct {
	MaxImageSizeBytes int64 // Max size for images (10MB)
	MaxGalleryImages  int   // Max gallery images per product
	MaxPrimaryImages  int   // Max images flagged for prominent storefront display
}{
	MaxImageSizeBytes: 10 * 1024 * 1024,
	MaxGalleryImages:  12,
	MaxPrimaryImages:  3,
}

// AllowedImageTypes is the MIME allow-list for product image uploads
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Dimensions represents product dimensions
type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Unit   string `json:"unit"` // cm, in, m, ft
}

// DimensionUnits enumerates the accepted dimension units
var DimensionUnits = map[string]bool{
	"cm": true,
	"in": true,
	"m":  true,
	"ft": true,
}

// ProductImage represents an uploaded product image as stored on the product
type ProductImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Path      string `json:"path,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	Type      string `json:"type,omitempty"` // primary or gallery, as assigned at upload
	Position  int    `json:"position"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Product represents a product as returned by products-service
type Product struct {
	ID                string         `json:"id"`
	TenantID          string         `json:"tenantId"`
	VendorID          string         `json:"vendorId"`
	CategoryID        string         `json:"categoryId"`
	Name              string         `json:"name"`
	Slug              *string        `json:"slug,omitempty"`
	SKU               string         `json:"sku"`
	Brand             *string        `json:"brand,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Price             string         `json:"price"`
	ComparePrice      *string        `json:"comparePrice,omitempty"`
	CostPrice         *string        `json:"costPrice,omitempty"`
	Status            ProductStatus  `json:"status"`
	Quantity          *int           `json:"quantity,omitempty"`
	MinOrderQty       *int           `json:"minOrderQty,omitempty"`
	MaxOrderQty       *int           `json:"maxOrderQty,omitempty"`
	LowStockThreshold *int           `json:"lowStockThreshold,omitempty"`
	Weight            *string        `json:"weight,omitempty"`
	Dimensions        *Dimensions    `json:"dimensions,omitempty"`
	SearchKeywords    *string        `json:"searchKeywords,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Images            []ProductImage `json:"images,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// CreateProductRequest represents a request forwarded to products-service
type CreateProductRequest struct {
	Name              string         `json:"name" binding:"required"`
	Slug              *string        `json:"slug,omitempty"`
	SKU               string         `json:"sku" binding:"required"`
	Brand             *string        `json:"brand,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Price             string         `json:"price" binding:"required"`
	ComparePrice      *string        `json:"comparePrice,omitempty"`
	CostPrice         *string        `json:"costPrice,omitempty"`
	VendorID          string         `json:"vendorId"`
	CategoryID        string         `json:"categoryId"`
	Quantity          *int           `json:"quantity,omitempty"`
	MinOrderQty       *int           `json:"minOrderQty,omitempty"`
	MaxOrderQty       *int           `json:"maxOrderQty,omitempty"`
	LowStockThreshold *int           `json:"lowStockThreshold,omitempty"`
	Weight            *string        `json:"weight,omitempty"`
	Dimensions        *Dimensions    `json:"dimensions,omitempty"`
	SearchKeywords    *string        `json:"searchKeywords,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Images            []ProductImage `json:"images,omitempty"`
}

// UpdateProductRequest represents a partial update forwarded to products-service
type UpdateProductRequest struct {
	Name              *string        `json:"name,omitempty"`
	Slug              *string        `json:"slug,omitempty"`
	SKU               *string        `json:"sku,omitempty"`
	Brand             *string        `json:"brand,omitempty"`
	Description       *string        `json:"description,omitempty"`
	Price             *string        `json:"price,omitempty"`
	ComparePrice      *string        `json:"comparePrice,omitempty"`
	CostPrice         *string        `json:"costPrice,omitempty"`
	CategoryID        *string        `json:"categoryId,omitempty"`
	Quantity          *int           `json:"quantity,omitempty"`
	MinOrderQty       *int           `json:"minOrderQty,omitempty"`
	MaxOrderQty       *int           `json:"maxOrderQty,omitempty"`
	LowStockThreshold *int           `json:"lowStockThreshold,omitempty"`
	Weight            *string        `json:"weight,omitempty"`
	Dimensions        *Dimensions    `json:"dimensions,omitempty"`
	SearchKeywords    *string        `json:"searchKeywords,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Images            []ProductImage `json:"images,omitempty"`
}

// UpdateProductStatusRequest represents a request to update product status
type UpdateProductStatusRequest struct {
	Status ProductStatus `json:"status" binding:"required"`
	Notes  *string       `json:"notes,omitempty"`
}

// BulkStatusUpdateRequest represents a bulk status change
type BulkStatusUpdateRequest struct {
	ProductIDs []string      `json:"productIds" binding:"required"`
	Status     ProductStatus `json:"status" binding:"required"`
}

// Response types
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
