package session

import (
	"regexp"
	"strconv"
	"strings"

	"admin-bff-service/internal/models"
)

// ProductDraft holds the product form fields of one editing session. All values
// are kept as the raw strings the admin UI submits; conversion to the wire
// types happens only when the draft is turned into a save payload.
type ProductDraft struct {
	Name              string            `json:"name"`
	Slug              string            `json:"slug"`
	SKU               string            `json:"sku"`
	Brand             string            `json:"brand"`
	Description       string            `json:"description"`
	CategoryID        string            `json:"categoryId"`
	Price             string            `json:"price"`
	ComparePrice      string            `json:"comparePrice"`
	CostPrice         string            `json:"costPrice"`
	Quantity          string            `json:"quantity"`
	MinOrderQty       string            `json:"minOrderQty"`
	MaxOrderQty       string            `json:"maxOrderQty"`
	LowStockThreshold string            `json:"lowStockThreshold"`
	Weight            string            `json:"weight"`
	Dimensions        models.Dimensions `json:"dimensions"`
	SearchKeywords    string            `json:"searchKeywords"`
	Tags              []string          `json:"tags"` // insertion order meaningful
}

var (
	skuPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// requiredFields must pass validation before a draft can be submitted
var requiredFields = []string{"name", "sku", "price"}

// optionalFields are validated only when they carry a non-empty value
var optionalFields = []string{
	"slug", "comparePrice", "costPrice", "quantity",
	"minOrderQty", "maxOrderQty", "lowStockThreshold", "dimensionUnit",
}

// stepFields maps a wizard step to the fields it validates
var stepFields = map[int][]string{
	1: {"name", "sku"},
	2: {"price", "comparePrice", "costPrice"},
	3: {"quantity", "minOrderQty", "maxOrderQty", "lowStockThreshold"},
}

// KnownStep reports whether a wizard step number exists
func KnownStep(step int) bool {
	_, ok := stepFields[step]
	return ok
}

// SetField assigns a single form field by its JSON name. Returns false for
// unknown field names.
func (d *ProductDraft) SetField(name, value string) bool {
	switch name {
	case "name":
		d.Name = value
	case "slug":
		d.Slug = value
	case "sku":
		d.SKU = value
	case "brand":
		d.Brand = value
	case "description":
		d.Description = value
	case "categoryId":
		d.CategoryID = value
	case "price":
		d.Price = value
	case "comparePrice":
		d.ComparePrice = value
	case "costPrice":
		d.CostPrice = value
	case "quantity":
		d.Quantity = value
	case "minOrderQty":
		d.MinOrderQty = value
	case "maxOrderQty":
		d.MaxOrderQty = value
	case "lowStockThreshold":
		d.LowStockThreshold = value
	case "weight":
		d.Weight = value
	case "dimensionLength":
		d.Dimensions.Length = value
	case "dimensionWidth":
		d.Dimensions.Width = value
	case "dimensionHeight":
		d.Dimensions.Height = value
	case "dimensionUnit":
		d.Dimensions.Unit = value
	case "searchKeywords":
		d.SearchKeywords = value
	default:
		return false
	}
	return true
}

// FieldValue returns the current raw value for a field name, "" for unknown names.
func (d *ProductDraft) FieldValue(name string) string {
	switch name {
	case "name":
		return d.Name
	case "slug":
		return d.Slug
	case "sku":
		return d.SKU
	case "brand":
		return d.Brand
	case "description":
		return d.Description
	case "categoryId":
		return d.CategoryID
	case "price":
		return d.Price
	case "comparePrice":
		return d.ComparePrice
	case "costPrice":
		return d.CostPrice
	case "quantity":
		return d.Quantity
	case "minOrderQty":
		return d.MinOrderQty
	case "maxOrderQty":
		return d.MaxOrderQty
	case "lowStockThreshold":
		return d.LowStockThreshold
	case "weight":
		return d.Weight
	case "dimensionLength":
		return d.Dimensions.Length
	case "dimensionWidth":
		return d.Dimensions.Width
	case "dimensionHeight":
		return d.Dimensions.Height
	case "dimensionUnit":
		return d.Dimensions.Unit
	case "searchKeywords":
		return d.SearchKeywords
	}
	return ""
}

// ValidateField validates one field value against the draft. Pure with respect
// to the draft: no state is written, the result is an error message or "".
// Cross-field rules (comparePrice vs price, maxOrderQty vs minOrderQty) read
// the counterpart's current value from the draft.
func (d *ProductDraft) ValidateField(name, value string) string {
	switch name {
	case "name":
		if strings.TrimSpace(value) == "" {
			return "Product name is required"
		}
	case "sku":
		if value == "" {
			return "SKU is required"
		}
		if len(value) < 3 {
			return "SKU must be at least 3 characters"
		}
		if !skuPattern.MatchString(value) {
			return "SKU may only contain letters, numbers, hyphens and underscores"
		}
	case "slug":
		if value != "" && !slugPattern.MatchString(value) {
			return "Slug may only contain lowercase letters, numbers and hyphens"
		}
	case "price":
		if value == "" {
			return "Price is required"
		}
		if !pricePattern.MatchString(value) {
			return "Price must be a non-negative number with at most 2 decimal places"
		}
	case "comparePrice":
		if value == "" {
			return ""
		}
		if !pricePattern.MatchString(value) {
			return "Compare-at price must be a non-negative number with at most 2 decimal places"
		}
		if pricePattern.MatchString(d.Price) {
			price, _ := strconv.ParseFloat(d.Price, 64)
			compare, _ := strconv.ParseFloat(value, 64)
			if compare <= price {
				return "Compare-at price must be greater than price"
			}
		}
	case "costPrice":
		if value != "" && !pricePattern.MatchString(value) {
			return "Cost price must be a non-negative number with at most 2 decimal places"
		}
	case "quantity":
		if value == "" {
			return ""
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return "Quantity must be a whole number of 0 or more"
		}
	case "minOrderQty":
		if value == "" {
			return ""
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return "Minimum order quantity must be a whole number of 1 or more"
		}
	case "maxOrderQty":
		if value == "" {
			return ""
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return "Maximum order quantity must be a whole number"
		}
		if min, minErr := strconv.Atoi(d.MinOrderQty); minErr == nil && n < min {
			return "Maximum order quantity must not be less than the minimum order quantity"
		}
	case "lowStockThreshold":
		if value == "" {
			return ""
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return "Low stock threshold must be a whole number of 0 or more"
		}
	case "dimensionUnit":
		if value != "" && !models.DimensionUnits[value] {
			return "Dimension unit must be one of cm, in, m, ft"
		}
	}
	return ""
}
