package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/middleware"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/repository"
)

// SettingsHandler proxies storefront settings and branding to vendor-service.
// Field names differ between the admin UI and vendor-service; translation
// happens here at the boundary, in both directions.
type SettingsHandler struct {
	repo             *repository.SessionsRepository
	storefrontClient *clients.StorefrontClient
	logger           *logrus.Entry
}

func NewSettingsHandler(repo *repository.SessionsRepository, logger *logrus.Logger) *SettingsHandler {
	return &SettingsHandler{
		repo:             repo,
		storefrontClient: clients.NewStorefrontClient(),
		logger:           logger.WithField("component", "settings"),
	}
}

// GetSettings returns the storefront settings in admin field names. When
// vendor-service is unreachable the hard-coded defaults are served instead so
// the settings screen still renders; the failure is logged, not surfaced.
// @Summary Get storefront settings
// @Tags Settings
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Success 200 {object} models.StorefrontSettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /storefront/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	storefrontID := middleware.GetStorefrontID(c)
	claims := claimsFrom(c)

	var settings models.StorefrontSettings
	cacheKey := "settings:" + storefrontID
	err := h.repo.GetOrSetCached(c.Request.Context(), cacheKey, &settings, repository.SettingsCacheTTL, func() (interface{}, error) {
		backend, err := h.storefrontClient.GetSettings(claims, storefrontID)
		if err != nil {
			return nil, err
		}
		return backend.ToFrontend(), nil
	})
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"storefrontID": storefrontID,
		}).WithError(err).Warn("Settings fetch failed, serving defaults")
		settings = models.DefaultStorefrontSettings()
	}

	c.JSON(http.StatusOK, models.StorefrontSettingsResponse{Success: true, Data: settings})
}

// SaveSettings replaces the storefront settings
// @Summary Save storefront settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Param settings body models.StorefrontSettings true "Settings"
// @Success 200 {object} models.StorefrontSettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /storefront/settings [post]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	h.writeSettings(c, h.storefrontClient.SaveSettings)
}

// PatchSettings partially updates the storefront settings
// @Summary Update storefront settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Param settings body models.StorefrontSettings true "Settings"
// @Success 200 {object} models.StorefrontSettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /storefront/settings [patch]
func (h *SettingsHandler) PatchSettings(c *gin.Context) {
	h.writeSettings(c, h.storefrontClient.PatchSettings)
}

func (h *SettingsHandler) writeSettings(c *gin.Context, write func(clients.ClaimHeaders, string, models.BackendStorefrontSettings) (*models.BackendStorefrontSettings, error)) {
	storefrontID := middleware.GetStorefrontID(c)

	var req models.StorefrontSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	saved, err := write(claimsFrom(c), storefrontID, req.ToBackend())
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SETTINGS_SAVE_FAILED",
				Message: "Failed to save storefront settings",
			},
		})
		return
	}

	h.repo.InvalidateSettingsCache(c.Request.Context(), storefrontID)

	c.JSON(http.StatusOK, models.StorefrontSettingsResponse{Success: true, Data: saved.ToFrontend()})
}

// DeleteSettings resets the storefront to its default settings
// @Summary Reset storefront settings
// @Tags Settings
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Success 200 {object} models.StorefrontSettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /storefront/settings [delete]
func (h *SettingsHandler) DeleteSettings(c *gin.Context) {
	storefrontID := middleware.GetStorefrontID(c)

	if err := h.storefrontClient.DeleteSettings(claimsFrom(c), storefrontID); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SETTINGS_RESET_FAILED",
				Message: "Failed to reset storefront settings",
			},
		})
		return
	}

	h.repo.InvalidateSettingsCache(c.Request.Context(), storefrontID)

	c.JSON(http.StatusOK, models.StorefrontSettingsResponse{Success: true, Data: models.DefaultStorefrontSettings()})
}

// GetBranding returns the storefront branding configuration
// @Summary Get storefront branding
// @Tags Settings
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Success 200 {object} models.BrandingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /storefront/branding [get]
func (h *SettingsHandler) GetBranding(c *gin.Context) {
	storefrontID := middleware.GetStorefrontID(c)

	branding, err := h.storefrontClient.GetBranding(claimsFrom(c), storefrontID)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "BRANDING_FETCH_FAILED",
				Message: "Failed to fetch storefront branding",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.BrandingResponse{Success: true, Data: branding})
}

// PatchBranding partially updates the storefront branding configuration
// @Summary Update storefront branding
// @Tags Settings
// @Accept json
// @Produce json
// @Param X-Storefront-ID header string true "Storefront ID"
// @Param branding body models.BrandingConfig true "Branding"
// @Success 200 {object} models.BrandingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /storefront/branding [patch]
func (h *SettingsHandler) PatchBranding(c *gin.Context) {
	storefrontID := middleware.GetStorefrontID(c)

	var req models.BrandingConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	branding, err := h.storefrontClient.PatchBranding(claimsFrom(c), storefrontID, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "BRANDING_SAVE_FAILED",
				Message: "Failed to update storefront branding",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.BrandingResponse{Success: true, Data: branding})
}
