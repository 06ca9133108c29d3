package session

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"admin-bff-service/internal/models"
)

// MoveDirection for image reordering
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// EditSession is one product editing session: the draft form fields, the image
// list, and the field error map. The image list here is the single source of
// truth; the save payload derives its images from it rather than keeping a
// second mirrored slice that has to be updated in lock-step.
type EditSession struct {
	ID        string                `json:"id"`
	TenantID  string                `json:"tenantId"`
	ProductID string                `json:"productId"` // empty for a not-yet-saved product
	Form      ProductDraft          `json:"form"`
	Images    []models.ProductImage `json:"images"`
	Errors    map[string]string     `json:"errors"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// New creates an empty editing session with the form defaults applied
func New(tenantID, productID string) *EditSession {
	now := time.Now().UTC()
	return &EditSession{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ProductID: productID,
		Form: ProductDraft{
			MinOrderQty:       "1",
			LowStockThreshold: "10",
			Dimensions:        models.Dimensions{Unit: "cm"},
		},
		Images:    []models.ProductImage{},
		Errors:    map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FromProduct starts an editing session populated from an existing product
func FromProduct(tenantID string, p *models.Product) *EditSession {
	s := New(tenantID, p.ID)
	s.Form.Name = p.Name
	s.Form.SKU = p.SKU
	s.Form.Price = p.Price
	s.Form.CategoryID = p.CategoryID
	if p.Slug != nil {
		s.Form.Slug = *p.Slug
	}
	if p.Brand != nil {
		s.Form.Brand = *p.Brand
	}
	if p.Description != nil {
		s.Form.Description = *p.Description
	}
	if p.ComparePrice != nil {
		s.Form.ComparePrice = *p.ComparePrice
	}
	if p.CostPrice != nil {
		s.Form.CostPrice = *p.CostPrice
	}
	if p.Quantity != nil {
		s.Form.Quantity = strconv.Itoa(*p.Quantity)
	}
	if p.MinOrderQty != nil {
		s.Form.MinOrderQty = strconv.Itoa(*p.MinOrderQty)
	}
	if p.MaxOrderQty != nil {
		s.Form.MaxOrderQty = strconv.Itoa(*p.MaxOrderQty)
	}
	if p.LowStockThreshold != nil {
		s.Form.LowStockThreshold = strconv.Itoa(*p.LowStockThreshold)
	}
	if p.Weight != nil {
		s.Form.Weight = *p.Weight
	}
	if p.Dimensions != nil {
		s.Form.Dimensions = *p.Dimensions
	}
	if p.SearchKeywords != nil {
		s.Form.SearchKeywords = *p.SearchKeywords
	}
	s.Form.Tags = append([]string{}, p.Tags...)
	if len(p.Images) > 0 {
		s.Images = append([]models.ProductImage{}, p.Images...)
		s.reindex()
	}
	return s
}

// SetField updates one form field and refreshes its validation state.
// Returns false for unknown field names.
func (s *EditSession) SetField(name, value string) bool {
	if !s.Form.SetField(name, value) {
		return false
	}
	if msg := s.Form.ValidateField(name, value); msg != "" {
		s.Errors[name] = msg
	} else {
		delete(s.Errors, name)
	}
	s.touch()
	return true
}

// ValidateStep validates the fields belonging to one wizard step, merging the
// results into the error map. Fields outside the step are untouched.
func (s *EditSession) ValidateStep(step int) bool {
	fields, ok := stepFields[step]
	if !ok {
		return false
	}
	valid := true
	for _, f := range fields {
		if msg := s.Form.ValidateField(f, s.Form.FieldValue(f)); msg != "" {
			s.Errors[f] = msg
			valid = false
		} else {
			delete(s.Errors, f)
		}
	}
	s.touch()
	return valid
}

// ValidateForm is the final gate before submission: all required fields plus
// every optional field that carries a non-empty value.
func (s *EditSession) ValidateForm() bool {
	valid := true
	for _, f := range requiredFields {
		if msg := s.Form.ValidateField(f, s.Form.FieldValue(f)); msg != "" {
			s.Errors[f] = msg
			valid = false
		} else {
			delete(s.Errors, f)
		}
	}
	for _, f := range optionalFields {
		v := s.Form.FieldValue(f)
		if v == "" {
			delete(s.Errors, f)
			continue
		}
		if msg := s.Form.ValidateField(f, v); msg != "" {
			s.Errors[f] = msg
			valid = false
		} else {
			delete(s.Errors, f)
		}
	}
	s.touch()
	return valid
}

// Payload derives the products-service save payload from the session. The
// image list is copied from the session's single image slice.
func (s *EditSession) Payload(vendorID string) models.CreateProductRequest {
	req := models.CreateProductRequest{
		Name:       s.Form.Name,
		SKU:        s.Form.SKU,
		Price:      s.Form.Price,
		VendorID:   vendorID,
		CategoryID: s.Form.CategoryID,
		Tags:       append([]string{}, s.Form.Tags...),
		Images:     append([]models.ProductImage{}, s.Images...),
	}
	if s.Form.Slug != "" {
		req.Slug = &s.Form.Slug
	}
	if s.Form.Brand != "" {
		req.Brand = &s.Form.Brand
	}
	if s.Form.Description != "" {
		req.Description = &s.Form.Description
	}
	if s.Form.ComparePrice != "" {
		req.ComparePrice = &s.Form.ComparePrice
	}
	if s.Form.CostPrice != "" {
		req.CostPrice = &s.Form.CostPrice
	}
	if n, err := strconv.Atoi(s.Form.Quantity); err == nil {
		req.Quantity = &n
	}
	if n, err := strconv.Atoi(s.Form.MinOrderQty); err == nil {
		req.MinOrderQty = &n
	}
	if n, err := strconv.Atoi(s.Form.MaxOrderQty); err == nil {
		req.MaxOrderQty = &n
	}
	if n, err := strconv.Atoi(s.Form.LowStockThreshold); err == nil {
		req.LowStockThreshold = &n
	}
	if s.Form.Weight != "" {
		req.Weight = &s.Form.Weight
	}
	if s.Form.Dimensions.Length != "" || s.Form.Dimensions.Width != "" || s.Form.Dimensions.Height != "" {
		dims := s.Form.Dimensions
		req.Dimensions = &dims
	}
	if s.Form.SearchKeywords != "" {
		req.SearchKeywords = &s.Form.SearchKeywords
	}
	return req
}

// UpdatePayload derives the partial update payload for an existing product.
// Every field the form carries is sent; the image list again comes from the
// session's single slice.
func (s *EditSession) UpdatePayload() models.UpdateProductRequest {
	full := s.Payload("")
	req := models.UpdateProductRequest{
		Name:              &full.Name,
		SKU:               &full.SKU,
		Price:             &full.Price,
		Slug:              full.Slug,
		Brand:             full.Brand,
		Description:       full.Description,
		ComparePrice:      full.ComparePrice,
		CostPrice:         full.CostPrice,
		Quantity:          full.Quantity,
		MinOrderQty:       full.MinOrderQty,
		MaxOrderQty:       full.MaxOrderQty,
		LowStockThreshold: full.LowStockThreshold,
		Weight:            full.Weight,
		Dimensions:        full.Dimensions,
		SearchKeywords:    full.SearchKeywords,
		Tags:              full.Tags,
		Images:            full.Images,
	}
	if full.CategoryID != "" {
		req.CategoryID = &full.CategoryID
	}
	return req
}

// Key is the identifier the session is addressed by: the product id once the
// product exists, otherwise the generated session id for a not-yet-saved draft.
func (s *EditSession) Key() string {
	if s.ProductID != "" {
		return s.ProductID
	}
	return s.ID
}

func (s *EditSession) touch() {
	s.UpdatedAt = time.Now().UTC()
}
