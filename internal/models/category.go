package models

import "time"

// Category represents a category as returned by categories-service
type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ParentID    *string   `json:"parentId,omitempty"`
	Level       int       `json:"level"`
	Position    int       `json:"position"`
	Status      string    `json:"status"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCategoryRequest for creating a new category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	IsActive bool   `json:"isActive"`
}

// CategoryOptionKind discriminates the two kinds of entries in the category picker
type CategoryOptionKind string

const (
	CategoryOptionExisting  CategoryOptionKind = "existing"
	CategoryOptionSuggested CategoryOptionKind = "suggested"
)

// CategoryOption is a single entry in the admin category picker. Exactly one of
// Category (kind=existing) or Name/Icon (kind=suggested) is populated.
type CategoryOption struct {
	Kind     CategoryOptionKind `json:"kind"`
	Category *Category          `json:"category,omitempty"`
	Name     string             `json:"name,omitempty"`
	Icon     string             `json:"icon,omitempty"`
}

// DefaultCategorySuggestions are shown in the picker for tenants that have not
// created any categories yet. Picking one creates the real category on demand.
var DefaultCategorySuggestions = []CategoryOption{
	{Kind: CategoryOptionSuggested, Name: "Electronics", Icon: "devices"},
	{Kind: CategoryOptionSuggested, Name: "Clothing", Icon: "apparel"},
	{Kind: CategoryOptionSuggested, Name: "Home & Garden", Icon: "home"},
	{Kind: CategoryOptionSuggested, Name: "Beauty", Icon: "spa"},
	{Kind: CategoryOptionSuggested, Name: "Sports & Outdoors", Icon: "sports"},
	{Kind: CategoryOptionSuggested, Name: "Books", Icon: "book"},
}

// CategoryResponse from categories-service
type CategoryResponse struct {
	Success bool      `json:"success"`
	Data    *Category `json:"data,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// CategoryListResponse from categories-service
type CategoryListResponse struct {
	Success    bool            `json:"success"`
	Data       []Category      `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// CategoryOptionsResponse is the merged picker payload
type CategoryOptionsResponse struct {
	Success bool             `json:"success"`
	Data    []CategoryOption `json:"data"`
}
