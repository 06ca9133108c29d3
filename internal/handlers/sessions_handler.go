package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/events"
	"admin-bff-service/internal/middleware"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/repository"
	"admin-bff-service/internal/session"
)

// SessionsHandler manages server-side product edit sessions: the draft form,
// its validation state, and the session image list
type SessionsHandler struct {
	repo            *repository.SessionsRepository
	productsClient  *clients.ProductsClient
	eventsPublisher *events.Publisher
}

func NewSessionsHandler(repo *repository.SessionsRepository, eventsPublisher *events.Publisher) *SessionsHandler {
	return &SessionsHandler{
		repo:            repo,
		productsClient:  clients.NewProductsClient(),
		eventsPublisher: eventsPublisher,
	}
}

// SessionResponse wraps a session in the standard envelope
type SessionResponse struct {
	Success bool                 `json:"success"`
	Data    *session.EditSession `json:"data"`
	Message *string              `json:"message,omitempty"`
}

// SetFieldRequest updates one form field
type SetFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ValidateRequest names the wizard step to validate; step 0 validates the
// whole form
type ValidateRequest struct {
	Step int `json:"step"`
}

// loadSession fetches a session by key, writing the 404 envelope when absent
func (h *SessionsHandler) loadSession(c *gin.Context, key string) *session.EditSession {
	tenantID := middleware.GetTenantID(c)
	sess, err := h.repo.GetSession(c.Request.Context(), tenantID, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_LOAD_FAILED",
				Message: "Failed to load edit session",
			},
		})
		return nil
	}
	if sess == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_NOT_FOUND",
				Message: "No edit session for this product",
			},
		})
		return nil
	}
	return sess
}

func (h *SessionsHandler) saveSession(c *gin.Context, sess *session.EditSession) bool {
	if err := h.repo.SaveSession(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_SAVE_FAILED",
				Message: "Failed to save edit session",
			},
		})
		return false
	}
	return true
}

// OpenDraftSession starts a blank session for a not-yet-saved product
// @Summary Start a new product draft session
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Router /products/session [post]
func (h *SessionsHandler) OpenDraftSession(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	sess := session.New(tenantID, "")
	if !h.saveSession(c, sess) {
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Success: true, Data: sess})
}

// OpenProductSession starts (or resumes) an edit session for an existing
// product. Reopening returns the stored session rather than resetting it.
// @Summary Open an edit session for a product
// @Tags Sessions
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} SessionResponse
// @Success 201 {object} SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/session [post]
func (h *SessionsHandler) OpenProductSession(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID := c.Param("id")

	existing, err := h.repo.GetSession(c.Request.Context(), tenantID, productID)
	if err == nil && existing != nil {
		c.JSON(http.StatusOK, SessionResponse{Success: true, Data: existing})
		return
	}

	product, err := h.productsClient.GetProduct(claimsFrom(c), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NOT_FOUND",
				Message: "Product not found",
			},
		})
		return
	}

	sess := session.FromProduct(tenantID, product)
	if !h.saveSession(c, sess) {
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Success: true, Data: sess})
}

// GetSession returns the current session state
// @Summary Get edit session
// @Tags Sessions
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/session [get]
func (h *SessionsHandler) GetSession(c *gin.Context) {
	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// SetField updates one form field, revalidating just that field. Unknown
// field names are a client error; validation failures are not, they land in
// the session's error map and still return 200.
// @Summary Update a draft form field
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param field body SetFieldRequest true "Field name and value"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/session/fields [put]
func (h *SessionsHandler) SetField(c *gin.Context) {
	var req SetFieldRequest
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

	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	if !sess.SetField(req.Field, req.Value) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UNKNOWN_FIELD",
				Message: "Unknown form field: " + req.Field,
				Field:   req.Field,
			},
		})
		return
	}

	if !h.saveSession(c, sess) {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// Validate runs step or full-form validation, merging results into the error
// map. The response is 200 either way; callers read the error map.
// @Summary Validate the draft form
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param request body ValidateRequest true "Wizard step (0 for full form)"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/session/validate [post]
func (h *SessionsHandler) Validate(c *gin.Context) {
	var req ValidateRequest
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

	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	switch {
	case req.Step == 0:
		sess.ValidateForm()
	case session.KnownStep(req.Step):
		sess.ValidateStep(req.Step)
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UNKNOWN_STEP",
				Message: "Unknown wizard step: " + strconv.Itoa(req.Step),
			},
		})
		return
	}

	if !h.saveSession(c, sess) {
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// Commit validates the full form and, if clean, saves the product through
// products-service: create for a fresh draft, update for an existing product.
// The payload's image list derives from the session's image list.
// @Summary Commit the draft to products-service
// @Tags Sessions
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Success 200 {object} models.ProductResponse
// @Success 201 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} SessionResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id}/session/commit [post]
func (h *SessionsHandler) Commit(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	vendorID := middleware.GetVendorID(c)

	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	if !sess.ValidateForm() {
		if !h.saveSession(c, sess) {
			return
		}
		msg := "Form validation failed"
		c.JSON(http.StatusUnprocessableEntity, SessionResponse{Success: false, Data: sess, Message: &msg})
		return
	}

	claims := claimsFrom(c)
	created := sess.ProductID == ""

	var product *models.Product
	var err error
	if created {
		product, err = h.productsClient.CreateProduct(claims, sess.Payload(vendorID))
	} else {
		product, err = h.productsClient.UpdateProduct(claims, sess.ProductID, sess.UpdatePayload())
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SAVE_FAILED",
				Message: "Failed to save product",
			},
		})
		return
	}

	if err := h.repo.DeleteSession(c.Request.Context(), tenantID, sess.Key()); err != nil {
		// Session cleanup failure is not worth failing the commit over
		_ = err
	}

	if h.eventsPublisher != nil {
		_ = h.eventsPublisher.PublishProductSaved(c.Request.Context(), product, tenantID, created, nil, actorFrom(c))
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, models.ProductResponse{Success: true, Data: product})
}

// Discard drops the session without saving
// @Summary Discard an edit session
// @Tags Sessions
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Success 200 {object} models.SuccessResponse
// @Router /products/{id}/session [delete]
func (h *SessionsHandler) Discard(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	if err := h.repo.DeleteSession(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_DELETE_FAILED",
				Message: "Failed to discard edit session",
			},
		})
		return
	}

	msg := "Session discarded"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}
