package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/config"
	"admin-bff-service/internal/events"
	"admin-bff-service/internal/middleware"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/repository"
	"admin-bff-service/internal/session"
	"admin-bff-service/internal/uploader"
)

// ImagesHandler covers the session image list: batch uploads through the
// orchestrator and the reorder/remove/primary operations
type ImagesHandler struct {
	cfg             *config.Config
	repo            *repository.SessionsRepository
	orchestrator    *uploader.Orchestrator
	mediaClient     *clients.MediaClient
	eventsPublisher *events.Publisher
}

func NewImagesHandler(cfg *config.Config, repo *repository.SessionsRepository, orchestrator *uploader.Orchestrator, mediaClient *clients.MediaClient, eventsPublisher *events.Publisher) *ImagesHandler {
	return &ImagesHandler{
		cfg:             cfg,
		repo:            repo,
		orchestrator:    orchestrator,
		mediaClient:     mediaClient,
		eventsPublisher: eventsPublisher,
	}
}

// BatchResponse wraps an upload batch in the standard envelope
type BatchResponse struct {
	Success bool            `json:"success"`
	Data    *uploader.Batch `json:"data"`
	Message *string         `json:"message,omitempty"`
}

// MoveImageRequest names the direction for a reorder
type MoveImageRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

func (h *ImagesHandler) loadSession(c *gin.Context, key string) *session.EditSession {
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

// UploadImages runs one upload batch: every file in the multipart "files"
// field, validated and uploaded sequentially. Files that fail validation are
// reported per-file; a product that has never been saved rejects the whole
// batch without contacting the media service.
// @Summary Upload product images
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param files formData file true "Image files"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{id}/images [post]
func (h *ImagesHandler) UploadImages(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_UPLOAD",
				Message: "Multipart form with a 'files' field is required",
			},
		})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_UPLOAD",
				Message: "No files provided",
				Field:   "files",
			},
		})
		return
	}
	if len(fileHeaders) > h.cfg.MaxUploadFiles {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "TOO_MANY_FILES",
				Message: fmt.Sprintf("At most %d files per upload", h.cfg.MaxUploadFiles),
				Field:   "files",
			},
		})
		return
	}

	files := make([]uploader.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		fh := fh
		files = append(files, uploader.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	batch, err := h.orchestrator.Run(c.Request.Context(), claimsFrom(c), sess, files)
	if errors.Is(err, uploader.ErrNoProduct) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PRODUCT_NOT_SAVED",
				Message: "Save the product before uploading images",
			},
		})
		return
	}
	if errors.Is(err, uploader.ErrSessionSave) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_SAVE_FAILED",
				Message: "Images uploaded but the session could not be saved",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UPLOAD_FAILED",
				Message: "Upload batch failed",
			},
		})
		return
	}

	if err := h.repo.SaveBatch(c.Request.Context(), tenantID, batch); err != nil {
		// The batch record is only for later inspection; the upload itself
		// already happened
		_ = err
	}

	if h.eventsPublisher != nil && len(batch.Files) > 0 {
		failed := len(batch.Files) - len(batch.Uploaded)
		_ = h.eventsPublisher.PublishImagesUploaded(c.Request.Context(), sess.ProductID, tenantID, len(batch.Uploaded), failed, actorFrom(c))
	}

	c.JSON(http.StatusOK, BatchResponse{Success: true, Data: batch})
}

// GetBatch returns a stored upload batch record
// @Summary Get upload batch status
// @Tags Images
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} BatchResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /upload-batches/{batchId} [get]
func (h *ImagesHandler) GetBatch(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	batch, err := h.repo.GetBatch(c.Request.Context(), tenantID, c.Param("batchId"))
	if err != nil || batch == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "BATCH_NOT_FOUND",
				Message: "Upload batch not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, BatchResponse{Success: true, Data: batch})
}

// DismissBatch clears a batch's tracking state. Uploads already in flight are
// unaffected; this only drops the record.
// @Summary Dismiss an upload batch
// @Tags Images
// @Produce json
// @Param batchId path string true "Batch ID"
// @Success 200 {object} models.SuccessResponse
// @Router /upload-batches/{batchId} [delete]
func (h *ImagesHandler) DismissBatch(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	if err := h.repo.DeleteBatch(c.Request.Context(), tenantID, c.Param("batchId")); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "BATCH_DELETE_FAILED",
				Message: "Failed to dismiss upload batch",
			},
		})
		return
	}

	msg := "Batch dismissed"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

// RemoveImage drops an image from the session list and deletes it from the
// media service. Positions reindex to stay gapless.
// @Summary Remove a product image
// @Tags Images
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/images/{imageId} [delete]
func (h *ImagesHandler) RemoveImage(c *gin.Context) {
	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	imageID := c.Param("imageId")
	if !sess.RemoveImage(imageID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMAGE_NOT_FOUND",
				Message: "Image not found in session",
			},
		})
		return
	}

	if sess.ProductID != "" {
		if err := h.mediaClient.DeleteProductImage(c.Request.Context(), claimsFrom(c), sess.ProductID, imageID); err != nil {
			// The session list is authoritative; an orphaned media object is
			// cleaned up by the media service's own GC
			_ = err
		}
	}

	if err := h.repo.SaveSession(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_SAVE_FAILED",
				Message: "Failed to save edit session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// MoveImage shifts an image one slot up or down. Moving past either end is a
// no-op, not an error.
// @Summary Reorder a product image
// @Tags Images
// @Accept json
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param imageId path string true "Image ID"
// @Param request body MoveImageRequest true "Direction"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/images/{imageId}/move [post]
func (h *ImagesHandler) MoveImage(c *gin.Context) {
	var req MoveImageRequest
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

	moved := sess.MoveImage(c.Param("imageId"), session.MoveDirection(req.Direction))
	if moved {
		if err := h.repo.SaveSession(c.Request.Context(), sess); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "SESSION_SAVE_FAILED",
					Message: "Failed to save edit session",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// TogglePrimary flips an image's primary flag. Setting a fourth primary is
// silently rejected; unsetting always succeeds.
// @Summary Toggle an image's primary flag
// @Tags Images
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/images/{imageId}/primary [post]
func (h *ImagesHandler) TogglePrimary(c *gin.Context) {
	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	imageID := c.Param("imageId")
	if !sess.HasImage(imageID) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMAGE_NOT_FOUND",
				Message: "Image not found in session",
			},
		})
		return
	}

	if sess.TogglePrimaryImage(imageID) {
		if err := h.repo.SaveSession(c.Request.Context(), sess); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "SESSION_SAVE_FAILED",
					Message: "Failed to save edit session",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}

// SetPrimary moves an image to the front of the list.
//
// Deprecated: kept for older admin clients; TogglePrimary is the current
// behavior.
// @Summary Set an image as the first image
// @Tags Images
// @Produce json
// @Param id path string true "Product ID or draft session ID"
// @Param imageId path string true "Image ID"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/images/{imageId}/primary [put]
func (h *ImagesHandler) SetPrimary(c *gin.Context) {
	sess := h.loadSession(c, c.Param("id"))
	if sess == nil {
		return
	}

	if !sess.SetPrimaryImage(c.Param("imageId")) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "IMAGE_NOT_FOUND",
				Message: "Image not found in session",
			},
		})
		return
	}

	if err := h.repo.SaveSession(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "SESSION_SAVE_FAILED",
				Message: "Failed to save edit session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Success: true, Data: sess})
}
