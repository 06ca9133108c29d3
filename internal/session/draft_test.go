package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateField_SKU(t *testing.T) {
	d := &ProductDraft{}

	assert.NotEmpty(t, d.ValidateField("sku", ""))
	assert.NotEmpty(t, d.ValidateField("sku", "AB"), "shorter than 3 characters")
	assert.NotEmpty(t, d.ValidateField("sku", "SKU 123"), "spaces are not allowed")
	assert.NotEmpty(t, d.ValidateField("sku", "SKU#123"))

	assert.Empty(t, d.ValidateField("sku", "SKU-123"))
	assert.Empty(t, d.ValidateField("sku", "abc_001"))
	assert.Empty(t, d.ValidateField("sku", "123"))
}

func TestValidateField_Price(t *testing.T) {
	d := &ProductDraft{}

	assert.NotEmpty(t, d.ValidateField("price", ""))
	assert.NotEmpty(t, d.ValidateField("price", "abc"))
	assert.NotEmpty(t, d.ValidateField("price", "-0.01"), "negative prices are rejected")
	assert.NotEmpty(t, d.ValidateField("price", "10.999"), "more than 2 decimal places")
	assert.NotEmpty(t, d.ValidateField("price", "10."))

	assert.Empty(t, d.ValidateField("price", "0"))
	assert.Empty(t, d.ValidateField("price", "10"))
	assert.Empty(t, d.ValidateField("price", "10.5"))
	assert.Empty(t, d.ValidateField("price", "10.99"))
}

func TestValidateField_ComparePriceAgainstPrice(t *testing.T) {
	d := &ProductDraft{Price: "20.00"}

	assert.Empty(t, d.ValidateField("comparePrice", ""), "optional when empty")
	assert.Empty(t, d.ValidateField("comparePrice", "25.00"))
	assert.NotEmpty(t, d.ValidateField("comparePrice", "20.00"), "equal is not greater")
	assert.NotEmpty(t, d.ValidateField("comparePrice", "15.00"))
	assert.NotEmpty(t, d.ValidateField("comparePrice", "abc"))
}

func TestValidateField_ComparePriceWithInvalidPrice(t *testing.T) {
	// When the price itself is invalid only the format rule applies
	d := &ProductDraft{Price: "abc"}
	assert.Empty(t, d.ValidateField("comparePrice", "5.00"))
}

func TestValidateField_Quantities(t *testing.T) {
	d := &ProductDraft{MinOrderQty: "5"}

	assert.Empty(t, d.ValidateField("quantity", "0"))
	assert.NotEmpty(t, d.ValidateField("quantity", "-1"))
	assert.NotEmpty(t, d.ValidateField("quantity", "1.5"))

	assert.NotEmpty(t, d.ValidateField("minOrderQty", "0"), "minimum is 1")
	assert.Empty(t, d.ValidateField("minOrderQty", "1"))

	assert.NotEmpty(t, d.ValidateField("maxOrderQty", "4"), "below minOrderQty")
	assert.Empty(t, d.ValidateField("maxOrderQty", "5"))
	assert.Empty(t, d.ValidateField("maxOrderQty", "100"))

	assert.Empty(t, d.ValidateField("lowStockThreshold", "0"))
	assert.NotEmpty(t, d.ValidateField("lowStockThreshold", "-1"))
}

func TestValidateField_Slug(t *testing.T) {
	d := &ProductDraft{}

	assert.Empty(t, d.ValidateField("slug", ""))
	assert.Empty(t, d.ValidateField("slug", "summer-shirt-2"))
	assert.NotEmpty(t, d.ValidateField("slug", "Summer-Shirt"))
	assert.NotEmpty(t, d.ValidateField("slug", "summer--shirt"))
	assert.NotEmpty(t, d.ValidateField("slug", "-summer"))
}

func TestValidateField_DimensionUnit(t *testing.T) {
	d := &ProductDraft{}

	for _, unit := range []string{"cm", "in", "m", "ft"} {
		assert.Empty(t, d.ValidateField("dimensionUnit", unit))
	}
	assert.NotEmpty(t, d.ValidateField("dimensionUnit", "km"))
	assert.Empty(t, d.ValidateField("dimensionUnit", ""))
}

func TestSetField_UnknownName(t *testing.T) {
	d := &ProductDraft{}
	assert.False(t, d.SetField("nope", "x"))
	assert.True(t, d.SetField("name", "Shirt"))
	assert.Equal(t, "Shirt", d.Name)
}

func TestFieldValue_RoundTrip(t *testing.T) {
	d := &ProductDraft{}
	for _, name := range []string{"name", "sku", "price", "comparePrice", "dimensionUnit"} {
		assert.True(t, d.SetField(name, "v-"+name))
		assert.Equal(t, "v-"+name, d.FieldValue(name))
	}
}

func TestKnownStep(t *testing.T) {
	assert.True(t, KnownStep(1))
	assert.True(t, KnownStep(2))
	assert.True(t, KnownStep(3))
	assert.False(t, KnownStep(0))
	assert.False(t, KnownStep(4))
}
