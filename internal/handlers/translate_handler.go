package handlers

import (
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/models"
)

// TranslateHandler is a thin passthrough to the translation-service. The
// request body, query string, and response come through untouched; only the
// claim headers and the failure mapping are added here.
type TranslateHandler struct {
	client *clients.TranslateClient
	logger *logrus.Entry
}

func NewTranslateHandler(logger *logrus.Logger) *TranslateHandler {
	return &TranslateHandler{
		client: clients.NewTranslateClient(),
		logger: logger.WithField("component", "translate-proxy"),
	}
}

// Proxy forwards any method to the translation service. A timed-out upstream
// maps to 504, any other transport failure to 503; HTTP-level upstream errors
// relay as-is.
// @Summary Proxy a translation request
// @Tags Translations
// @Router /translations/{path} [get]
// @Router /translations/{path} [post]
// @Router /translations/{path} [put]
// @Router /translations/{path} [delete]
func (h *TranslateHandler) Proxy(c *gin.Context) {
	path := c.Param("path")

	resp, err := h.client.Do(
		c.Request.Context(),
		claimsFrom(c),
		c.Request.Method,
		path,
		c.Request.URL.RawQuery,
		c.Request.Body,
		c.GetHeader("Content-Type"),
	)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			h.logger.WithField("path", path).WithError(err).Warn("Translation request timed out")
			c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TRANSLATION_TIMEOUT",
					Message: "Translation service did not respond in time",
				},
			})
			return
		}

		h.logger.WithField("path", path).WithError(err).Warn("Translation service unreachable")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "TRANSLATION_UNAVAILABLE",
				Message: "Translation service is unavailable",
			},
		})
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}
