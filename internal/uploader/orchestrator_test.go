package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/models"
	"admin-bff-service/internal/session"
)

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadProductImage(ctx context.Context, claims clients.ClaimHeaders, productID string, file io.Reader, fileName, contentType, imageType string, position int) (*models.ProductImage, error) {
	args := m.Called(ctx, claims, productID, fileName, contentType, imageType, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductImage), args.Error(1)
}

// memStore is an in-process SessionStore for orchestrator tests
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.EditSession
}

func newMemStore(seed ...*session.EditSession) *memStore {
	s := &memStore{sessions: make(map[string]*session.EditSession)}
	for _, sess := range seed {
		s.sessions[sess.TenantID+"/"+sess.Key()] = sess
	}
	return s
}

func (s *memStore) GetSession(ctx context.Context, tenantID, id string) (*session.EditSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[tenantID+"/"+id], nil
}

func (s *memStore) SaveSession(ctx context.Context, sess *session.EditSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.TenantID+"/"+sess.Key()] = sess
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testFile(name string) File {
	return File{
		Name:        name,
		Size:        1024,
		ContentType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("jpegdata")), nil
		},
	}
}

func TestRun_NoProductID(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "")
	o := New(media, newMemStore(sess), testLogger())

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess, []File{testFile("a.jpg")})

	assert.ErrorIs(t, err, ErrNoProduct)
	assert.Nil(t, batch)
	assert.Empty(t, media.Calls, "no HTTP call may happen without a product id")
	assert.Empty(t, sess.Images)
}

func TestRun_SequentialSuccess(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "prod-1")
	store := newMemStore(sess)
	o := New(media, store, testLogger())

	// First image of an empty session is the primary, position counts up
	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "a.jpg", "image/jpeg", models.ImageTypePrimary, 0).
		Return(&models.ProductImage{ID: "img-a", URL: "https://cdn/a"}, nil)
	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "b.jpg", "image/jpeg", models.ImageTypeGallery, 1).
		Return(&models.ProductImage{ID: "img-b", URL: "https://cdn/b"}, nil)

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess, []File{testFile("a.jpg"), testFile("b.jpg")})

	assert.NoError(t, err)
	assert.Len(t, batch.Files, 2)
	for _, f := range batch.Files {
		assert.Equal(t, StatusSuccess, f.Status)
		assert.Equal(t, 100, f.Progress)
	}

	saved, _ := store.GetSession(context.Background(), "tenant-1", "prod-1")
	assert.Len(t, saved.Images, 2)
	assert.True(t, saved.Images[0].IsPrimary)
	assert.False(t, saved.Images[1].IsPrimary)
	assert.Equal(t, 0, saved.Images[0].Position)
	assert.Equal(t, 1, saved.Images[1].Position)
	media.AssertExpectations(t)
}

func TestRun_OneFailureDoesNotAbortBatch(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "prod-1")
	sess.AppendImages([]models.ProductImage{{ID: "existing"}})
	store := newMemStore(sess)
	o := New(media, store, testLogger())

	// Session already has an image: everything is gallery, positions continue
	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "a.jpg", "image/jpeg", models.ImageTypeGallery, 1).
		Return(&models.ProductImage{ID: "img-a"}, nil)
	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "b.jpg", "image/jpeg", models.ImageTypeGallery, 2).
		Return(nil, errors.New("upstream 500"))
	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "c.jpg", "image/jpeg", models.ImageTypeGallery, 3).
		Return(&models.ProductImage{ID: "img-c"}, nil)

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess,
		[]File{testFile("a.jpg"), testFile("b.jpg"), testFile("c.jpg")})

	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, batch.Files[0].Status)
	assert.Equal(t, StatusError, batch.Files[1].Status)
	assert.NotEmpty(t, batch.Files[1].Error)
	assert.Equal(t, StatusSuccess, batch.Files[2].Status)

	// Only the successes land in the session, in processed order, reindexed
	saved, _ := store.GetSession(context.Background(), "tenant-1", "prod-1")
	assert.Len(t, saved.Images, 3)
	assert.Equal(t, "existing", saved.Images[0].ID)
	assert.Equal(t, "img-a", saved.Images[1].ID)
	assert.Equal(t, "img-c", saved.Images[2].ID)
	assert.Equal(t, 2, saved.Images[2].Position)
	media.AssertExpectations(t)
}

func TestRun_RejectsInvalidFiles(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "prod-1")
	o := New(media, newMemStore(sess), testLogger())

	bmp := testFile("logo.bmp")
	bmp.ContentType = "image/bmp"
	huge := testFile("huge.jpg")
	huge.Size = models.MediaLimits.MaxImageSizeBytes + 1

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess, []File{bmp, huge})

	assert.NoError(t, err)
	assert.Len(t, batch.Rejected, 2)
	assert.Empty(t, batch.Files)
	assert.Empty(t, sess.Images, "no valid files means no session change")
	assert.Empty(t, media.Calls)
}

func TestRun_MixedRejectedAndValid(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "prod-1")
	store := newMemStore(sess)
	o := New(media, store, testLogger())

	bad := testFile("doc.pdf")
	bad.ContentType = "application/pdf"

	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "a.jpg", "image/jpeg", models.ImageTypePrimary, 0).
		Return(&models.ProductImage{ID: "img-a"}, nil)

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess, []File{bad, testFile("a.jpg")})

	assert.NoError(t, err)
	assert.Len(t, batch.Rejected, 1)
	assert.Equal(t, "doc.pdf", batch.Rejected[0].Name)
	assert.Len(t, batch.Uploaded, 1)

	saved, _ := store.GetSession(context.Background(), "tenant-1", "prod-1")
	assert.Len(t, saved.Images, 1)
	media.AssertExpectations(t)
}

func TestRun_OpenFailureIsPerFile(t *testing.T) {
	media := new(MockMediaService)
	sess := session.New("tenant-1", "prod-1")
	store := newMemStore(sess)
	o := New(media, store, testLogger())

	broken := testFile("a.jpg")
	broken.Open = func() (io.ReadCloser, error) {
		return nil, errors.New("gone")
	}

	media.On("UploadProductImage", mock.Anything, mock.Anything, "prod-1", "b.jpg", "image/jpeg", models.ImageTypeGallery, 1).
		Return(&models.ProductImage{ID: "img-b"}, nil)

	batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, sess, []File{broken, testFile("b.jpg")})

	assert.NoError(t, err)
	assert.Equal(t, StatusError, batch.Files[0].Status)
	assert.Equal(t, StatusSuccess, batch.Files[1].Status)

	saved, _ := store.GetSession(context.Background(), "tenant-1", "prod-1")
	assert.Len(t, saved.Images, 1)
	assert.Equal(t, "img-b", saved.Images[0].ID)
}

// countingMedia returns a distinct image per call without caring about order,
// for tests where interleaving makes per-call expectations impossible
type countingMedia struct {
	mu    sync.Mutex
	calls int
}

func (m *countingMedia) UploadProductImage(ctx context.Context, claims clients.ClaimHeaders, productID string, file io.Reader, fileName, contentType, imageType string, position int) (*models.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return &models.ProductImage{
		ID:       fmt.Sprintf("img-%s", fileName),
		Type:     imageType,
		Position: position,
	}, nil
}

func TestRun_ConcurrentBatchesKeepAllImages(t *testing.T) {
	sess := session.New("tenant-1", "prod-1")
	store := newMemStore(sess)
	media := &countingMedia{}
	o := New(media, store, testLogger())

	// Two admins upload to the same product at once, each request carrying its
	// own stale view of the session loaded before either batch ran
	staleA := *sess
	staleB := *sess

	var wg sync.WaitGroup
	for _, b := range []struct {
		stale *session.EditSession
		names []string
	}{
		{&staleA, []string{"a1.jpg", "a2.jpg"}},
		{&staleB, []string{"b1.jpg", "b2.jpg"}},
	} {
		wg.Add(1)
		go func(stale *session.EditSession, names []string) {
			defer wg.Done()
			files := make([]File, 0, len(names))
			for _, n := range names {
				files = append(files, testFile(n))
			}
			batch, err := o.Run(context.Background(), clients.ClaimHeaders{}, stale, files)
			assert.NoError(t, err)
			assert.Len(t, batch.Uploaded, len(names))
		}(b.stale, b.names)
	}
	wg.Wait()

	final, _ := store.GetSession(context.Background(), "tenant-1", "prod-1")
	assert.Len(t, final.Images, 4, "the later batch must not overwrite the earlier one")

	positions := make([]int, len(final.Images))
	primaries := 0
	for i, img := range final.Images {
		positions[i] = img.Position
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, positions)
	assert.Equal(t, 1, primaries, "only the very first image of the empty session is primary")
	assert.Equal(t, 4, media.calls)
}
