package models

// StorefrontSettings is the shape the admin UI works with. Field names differ
// from what vendor-service stores; translation happens at the proxy boundary.
type StorefrontSettings struct {
	HeroEnabled       bool   `json:"heroEnabled"`
	ShowWishlist      bool   `json:"showWishlist"`
	ShowTermsCheckbox bool   `json:"showTermsCheckbox"`
	ShowSearch        bool   `json:"showSearch"`
	ShowReviews       bool   `json:"showReviews"`
	ProductsPerPage   int    `json:"productsPerPage"`
	CurrencyCode      string `json:"currencyCode"`
}

// BackendStorefrontSettings is the shape vendor-service stores and returns
type BackendStorefrontSettings struct {
	ShowHero           bool   `json:"showHero"`
	ShowWishlistButton bool   `json:"showWishlistButton"`
	TermsRequired      bool   `json:"termsRequired"`
	ShowSearch         bool   `json:"showSearch"`
	ShowReviews        bool   `json:"showReviews"`
	ProductsPerPage    int    `json:"productsPerPage"`
	CurrencyCode       string `json:"currencyCode"`
}

// ToBackend translates admin field names to vendor-service field names
func (s StorefrontSettings) ToBackend() BackendStorefrontSettings {
	return BackendStorefrontSettings{
		ShowHero:           s.HeroEnabled,
		ShowWishlistButton: s.ShowWishlist,
		TermsRequired:      s.ShowTermsCheckbox,
		ShowSearch:         s.ShowSearch,
		ShowReviews:        s.ShowReviews,
		ProductsPerPage:    s.ProductsPerPage,
		CurrencyCode:       s.CurrencyCode,
	}
}

// ToFrontend translates vendor-service field names back to admin field names
func (b BackendStorefrontSettings) ToFrontend() StorefrontSettings {
	return StorefrontSettings{
		HeroEnabled:       b.ShowHero,
		ShowWishlist:      b.ShowWishlistButton,
		ShowTermsCheckbox: b.TermsRequired,
		ShowSearch:        b.ShowSearch,
		ShowReviews:       b.ShowReviews,
		ProductsPerPage:   b.ProductsPerPage,
		CurrencyCode:      b.CurrencyCode,
	}
}

// DefaultStorefrontSettings is served when vendor-service is unreachable so the
// settings screen renders instead of erroring
func DefaultStorefrontSettings() StorefrontSettings {
	return StorefrontSettings{
		HeroEnabled:       true,
		ShowWishlist:      true,
		ShowTermsCheckbox: false,
		ShowSearch:        true,
		ShowReviews:       true,
		ProductsPerPage:   12,
		CurrencyCode:      "USD",
	}
}

// StorefrontSettingsResponse wraps settings in the standard envelope
type StorefrontSettingsResponse struct {
	Success bool               `json:"success"`
	Data    StorefrontSettings `json:"data"`
	Message *string            `json:"message,omitempty"`
}

// BrandingConfig is the admin branding surface proxied to vendor-service
type BrandingConfig struct {
	LogoURL     *string                `json:"logoUrl,omitempty"`
	FaviconURL  *string                `json:"faviconUrl,omitempty"`
	ThemeConfig map[string]interface{} `json:"themeConfig,omitempty"`
	MetaTitle   *string                `json:"metaTitle,omitempty"`
	MetaDesc    *string                `json:"metaDescription,omitempty"`
}

// BrandingResponse wraps branding in the standard envelope
type BrandingResponse struct {
	Success bool            `json:"success"`
	Data    *BrandingConfig `json:"data"`
	Message *string         `json:"message,omitempty"`
}
