package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"admin-bff-service/internal/models"
)

func TestNew_Defaults(t *testing.T) {
	s := New("tenant-1", "")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "tenant-1", s.TenantID)
	assert.Empty(t, s.ProductID)
	assert.Equal(t, "1", s.Form.MinOrderQty)
	assert.Equal(t, "10", s.Form.LowStockThreshold)
	assert.Equal(t, "cm", s.Form.Dimensions.Unit)
	assert.Empty(t, s.Images)
	assert.Empty(t, s.Errors)
}

func TestKey(t *testing.T) {
	draft := New("tenant-1", "")
	assert.Equal(t, draft.ID, draft.Key())

	editing := New("tenant-1", "prod-1")
	assert.Equal(t, "prod-1", editing.Key())
}

func TestSetField_UpdatesErrorMap(t *testing.T) {
	s := New("tenant-1", "")

	assert.True(t, s.SetField("sku", "AB"))
	assert.Contains(t, s.Errors, "sku")

	// Fixing the value clears the error
	assert.True(t, s.SetField("sku", "AB-100"))
	assert.NotContains(t, s.Errors, "sku")

	assert.False(t, s.SetField("bogus", "x"))
}

func TestValidateStep_OnlyTouchesStepFields(t *testing.T) {
	s := New("tenant-1", "")
	s.SetField("price", "abc") // step 2 field, now invalid in the error map

	// Step 1 covers name and sku; both empty and required
	assert.False(t, s.ValidateStep(1))
	assert.Contains(t, s.Errors, "name")
	assert.Contains(t, s.Errors, "sku")
	assert.Contains(t, s.Errors, "price", "step 1 must not clear step 2 errors")

	s.Form.Name = "Shirt"
	s.Form.SKU = "SKU-1"
	assert.True(t, s.ValidateStep(1))
	assert.NotContains(t, s.Errors, "name")
	assert.NotContains(t, s.Errors, "sku")

	assert.False(t, s.ValidateStep(9), "unknown step")
}

func TestValidateForm(t *testing.T) {
	s := New("tenant-1", "")
	assert.False(t, s.ValidateForm())
	assert.Contains(t, s.Errors, "name")
	assert.Contains(t, s.Errors, "sku")
	assert.Contains(t, s.Errors, "price")

	s.Form.Name = "Shirt"
	s.Form.SKU = "SKU-1"
	s.Form.Price = "19.99"
	assert.True(t, s.ValidateForm())
	assert.Empty(t, s.Errors)

	// A non-empty optional field is validated too
	s.Form.ComparePrice = "10.00"
	assert.False(t, s.ValidateForm())
	assert.Contains(t, s.Errors, "comparePrice")

	// Clearing it passes again
	s.Form.ComparePrice = ""
	assert.True(t, s.ValidateForm())
}

func TestPayload_DerivesImagesFromSession(t *testing.T) {
	s := New("tenant-1", "prod-1")
	s.Form.Name = "Shirt"
	s.Form.SKU = "SKU-1"
	s.Form.Price = "19.99"
	s.Images = []models.ProductImage{
		{ID: "img-1", URL: "https://cdn/img-1", Position: 0, IsPrimary: true},
		{ID: "img-2", URL: "https://cdn/img-2", Position: 1},
	}

	payload := s.Payload("vendor-1")

	assert.Equal(t, "Shirt", payload.Name)
	assert.Equal(t, "vendor-1", payload.VendorID)
	assert.Len(t, payload.Images, 2)
	assert.Equal(t, "img-1", payload.Images[0].ID)

	// The payload image list is a copy, not an alias
	payload.Images[0].ID = "mutated"
	assert.Equal(t, "img-1", s.Images[0].ID)
}

func TestPayload_OmitsEmptyOptionals(t *testing.T) {
	s := New("tenant-1", "")
	s.Form.Name = "Shirt"
	s.Form.SKU = "SKU-1"
	s.Form.Price = "19.99"
	s.Form.Quantity = ""
	s.Form.MinOrderQty = "1"

	payload := s.Payload("vendor-1")

	assert.Nil(t, payload.Quantity)
	assert.NotNil(t, payload.MinOrderQty)
	assert.Equal(t, 1, *payload.MinOrderQty)
	assert.Nil(t, payload.ComparePrice)
	assert.Nil(t, payload.Weight)
}

func TestFromProduct(t *testing.T) {
	qty := 7
	desc := "Nice shirt"
	p := &models.Product{
		ID:          "prod-1",
		Name:        "Shirt",
		SKU:         "SKU-1",
		Price:       "19.99",
		Description: &desc,
		Quantity:    &qty,
		Tags:        []string{"summer", "sale"},
		Images: []models.ProductImage{
			{ID: "img-1", Position: 5},
			{ID: "img-2", Position: 9},
		},
	}

	s := FromProduct("tenant-1", p)

	assert.Equal(t, "prod-1", s.ProductID)
	assert.Equal(t, "Shirt", s.Form.Name)
	assert.Equal(t, "Nice shirt", s.Form.Description)
	assert.Equal(t, "7", s.Form.Quantity)
	assert.Equal(t, []string{"summer", "sale"}, s.Form.Tags)

	// Positions normalize to 0..n-1 on load regardless of what was stored
	assert.Equal(t, 0, s.Images[0].Position)
	assert.Equal(t, 1, s.Images[1].Position)
}
