package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/session"
)

// Status of one file inside an upload batch. Transitions are monotonic:
// pending -> uploading -> success or error. There are no retries and no
// transition back.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// FileUpload is the tracking record for one file in a batch
type FileUpload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Status   Status `json:"status"`
	Progress int    `json:"progress"` // coarse: 0 pending, 50 uploading, 100 success
	Error    string `json:"error,omitempty"`
}

// Rejection records a file that never entered the batch (wrong type or size)
type Rejection struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Batch is the result of one upload pass. It is kept until the admin
// dismisses it, so per-file outcomes stay reviewable after the pass ends.
type Batch struct {
	ID          string                `json:"id"`
	ProductID   string                `json:"productId"`
	Files       []FileUpload          `json:"files"`
	Rejected    []Rejection           `json:"rejected,omitempty"`
	Uploaded    []models.ProductImage `json:"uploaded"`
	StartedAt   time.Time             `json:"startedAt"`
	CompletedAt time.Time             `json:"completedAt"`
}

// File is one selected file handed to the orchestrator. Open is called at most
// once, when the file's turn in the sequential pass arrives.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// MediaService is the slice of the media client the orchestrator needs
type MediaService interface {
	UploadProductImage(ctx context.Context, claims clients.ClaimHeaders, productID string, file io.Reader, fileName, contentType, imageType string, position int) (*models.ProductImage, error)
}

// SessionStore is the slice of the sessions repository the orchestrator needs
// to reload and persist the session inside its per-product critical section
type SessionStore interface {
	GetSession(ctx context.Context, tenantID, id string) (*session.EditSession, error)
	SaveSession(ctx context.Context, sess *session.EditSession) error
}

// ErrNoProduct is returned when an upload is attempted before the product has
// been saved. Media must always be attached to an existing product id.
var ErrNoProduct = errors.New("product must be saved before images can be uploaded")

// ErrSessionSave is returned when the uploads themselves succeeded but the
// updated session could not be persisted
var ErrSessionSave = errors.New("images uploaded but the session could not be saved")

// Orchestrator runs upload batches strictly sequentially: one file at a time
// within a batch, one batch at a time per product. The session is reloaded,
// mutated, and saved inside the per-product lock, so two concurrent batches
// for the same product queue and neither overwrites the other's images.
type Orchestrator struct {
	media  MediaService
	store  SessionStore
	logger *logrus.Entry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an upload orchestrator
func New(media MediaService, store SessionStore, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		media:  media,
		store:  store,
		logger: logger.WithField("component", "uploader"),
		locks:  make(map[string]*sync.Mutex),
	}
}

// Run validates the selected files, uploads the valid ones sequentially, and
// appends the successful images to the session image list in processed order.
// One file's failure never aborts the batch. The session is re-read from the
// store once the product lock is held and saved before it is released.
func (o *Orchestrator) Run(ctx context.Context, claims clients.ClaimHeaders, sess *session.EditSession, files []File) (*Batch, error) {
	if sess.ProductID == "" {
		return nil, ErrNoProduct
	}

	batch := &Batch{
		ID:        uuid.New().String(),
		ProductID: sess.ProductID,
		StartedAt: time.Now().UTC(),
		Uploaded:  []models.ProductImage{},
	}

	var valid []File
	for _, f := range files {
		if !models.AllowedImageTypes[f.ContentType] {
			batch.Rejected = append(batch.Rejected, Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("unsupported file type %q (allowed: jpeg, png, gif, webp)", f.ContentType),
			})
			continue
		}
		if f.Size > models.MediaLimits.MaxImageSizeBytes {
			batch.Rejected = append(batch.Rejected, Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("file exceeds the %dMB size limit", models.MediaLimits.MaxImageSizeBytes/(1024*1024)),
			})
			continue
		}
		valid = append(valid, f)
	}

	// Nothing valid: report the rejections, touch no session state
	if len(valid) == 0 {
		batch.CompletedAt = time.Now().UTC()
		return batch, nil
	}

	lock := o.lockFor(sess.ProductID)
	lock.Lock()
	defer lock.Unlock()

	// A batch that queued behind another one must see that batch's images, so
	// the session state the caller loaded before the lock cannot be trusted
	fresh, err := o.store.GetSession(ctx, sess.TenantID, sess.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload session: %w", err)
	}
	if fresh == nil {
		fresh = sess
	}

	for _, f := range valid {
		batch.Files = append(batch.Files, FileUpload{
			ID:     uuid.New().String(),
			Name:   f.Name,
			Size:   f.Size,
			Type:   f.ContentType,
			Status: StatusPending,
		})
	}

	imagesAtStart := len(fresh.Images)
	for i := range valid {
		rec := &batch.Files[i]
		rec.Status = StatusUploading
		rec.Progress = 50

		imageType := models.ImageTypeGallery
		if imagesAtStart == 0 && i == 0 {
			imageType = models.ImageTypePrimary
		}

		img, err := o.uploadOne(ctx, claims, sess.ProductID, valid[i], imageType, imagesAtStart+i)
		if err != nil {
			rec.Status = StatusError
			rec.Error = err.Error()
			o.logger.WithFields(logrus.Fields{
				"productID": sess.ProductID,
				"file":      valid[i].Name,
			}).WithError(err).Warn("Image upload failed, continuing with remaining files")
			continue
		}

		rec.Status = StatusSuccess
		rec.Progress = 100
		if imageType == models.ImageTypePrimary {
			img.IsPrimary = true
		}
		batch.Uploaded = append(batch.Uploaded, *img)
	}

	fresh.AppendImages(batch.Uploaded)
	batch.CompletedAt = time.Now().UTC()

	if len(batch.Uploaded) > 0 {
		if err := o.store.SaveSession(ctx, fresh); err != nil {
			return batch, fmt.Errorf("%w: %v", ErrSessionSave, err)
		}
	}

	o.logger.WithFields(logrus.Fields{
		"productID": sess.ProductID,
		"batchID":   batch.ID,
		"uploaded":  len(batch.Uploaded),
		"failed":    len(batch.Files) - len(batch.Uploaded),
		"rejected":  len(batch.Rejected),
	}).Info("Upload batch completed")

	return batch, nil
}

func (o *Orchestrator) uploadOne(ctx context.Context, claims clients.ClaimHeaders, productID string, f File, imageType string, position int) (*models.ProductImage, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer rc.Close()

	return o.media.UploadProductImage(ctx, claims, productID, rc, f.Name, f.ContentType, imageType, position)
}

func (o *Orchestrator) lockFor(productID string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	if l, ok := o.locks[productID]; ok {
		return l
	}
	l := &sync.Mutex{}
	o.locks[productID] = l
	return l
}
