package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"admin-bff-service/internal/models"
)

func sessionWithImages(n int) *EditSession {
	s := New("tenant-1", "prod-1")
	imgs := make([]models.ProductImage, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, models.ProductImage{ID: "img-" + string(rune('a'+i))})
	}
	s.AppendImages(imgs)
	return s
}

func positions(s *EditSession) []int {
	out := make([]int, len(s.Images))
	for i, img := range s.Images {
		out[i] = img.Position
	}
	return out
}

func order(s *EditSession) []string {
	out := make([]string, len(s.Images))
	for i, img := range s.Images {
		out[i] = img.ID
	}
	return out
}

func TestAppendImages_Reindexes(t *testing.T) {
	s := New("tenant-1", "prod-1")
	s.AppendImages([]models.ProductImage{
		{ID: "a", Position: 42},
		{ID: "b", Position: 42},
	})
	assert.Equal(t, []int{0, 1}, positions(s))
}

func TestRemoveImage(t *testing.T) {
	s := sessionWithImages(3)

	assert.True(t, s.RemoveImage("img-b"))
	assert.Equal(t, []string{"img-a", "img-c"}, order(s))
	assert.Equal(t, []int{0, 1}, positions(s), "positions close the gap")

	assert.False(t, s.RemoveImage("missing"))
	assert.Len(t, s.Images, 2)
}

func TestMoveImage(t *testing.T) {
	s := sessionWithImages(3)

	assert.True(t, s.MoveImage("img-b", MoveUp))
	assert.Equal(t, []string{"img-b", "img-a", "img-c"}, order(s))
	assert.Equal(t, []int{0, 1, 2}, positions(s))

	assert.True(t, s.MoveImage("img-a", MoveDown))
	assert.Equal(t, []string{"img-b", "img-c", "img-a"}, order(s))
	assert.Equal(t, []int{0, 1, 2}, positions(s))
}

func TestMoveImage_BoundaryNoOp(t *testing.T) {
	s := sessionWithImages(3)

	assert.False(t, s.MoveImage("img-a", MoveUp), "first image cannot move up")
	assert.False(t, s.MoveImage("img-c", MoveDown), "last image cannot move down")
	assert.Equal(t, []string{"img-a", "img-b", "img-c"}, order(s))

	assert.False(t, s.MoveImage("missing", MoveUp))
	assert.False(t, s.MoveImage("img-b", MoveDirection("sideways")))
}

func TestSetPrimaryImage_MovesToFront(t *testing.T) {
	s := sessionWithImages(4)

	assert.True(t, s.SetPrimaryImage("img-c"))
	assert.Equal(t, []string{"img-c", "img-a", "img-b", "img-d"}, order(s))
	assert.Equal(t, []int{0, 1, 2, 3}, positions(s))

	// Already at front: stays put
	assert.True(t, s.SetPrimaryImage("img-c"))
	assert.Equal(t, []string{"img-c", "img-a", "img-b", "img-d"}, order(s))

	assert.False(t, s.SetPrimaryImage("missing"))
}

func TestTogglePrimaryImage_CapAtThree(t *testing.T) {
	s := sessionWithImages(5)

	assert.True(t, s.TogglePrimaryImage("img-a"))
	assert.True(t, s.TogglePrimaryImage("img-b"))
	assert.True(t, s.TogglePrimaryImage("img-c"))
	assert.Equal(t, 3, s.PrimaryCount())

	// Fourth primary is silently rejected: no error, no change
	assert.False(t, s.TogglePrimaryImage("img-d"))
	assert.Equal(t, 3, s.PrimaryCount())
	assert.False(t, s.Images[3].IsPrimary)

	// Unsetting at the cap is always allowed
	assert.True(t, s.TogglePrimaryImage("img-b"))
	assert.Equal(t, 2, s.PrimaryCount())

	// And frees a slot
	assert.True(t, s.TogglePrimaryImage("img-d"))
	assert.Equal(t, 3, s.PrimaryCount())
}

func TestTogglePrimaryImage_DoesNotReorder(t *testing.T) {
	s := sessionWithImages(3)

	assert.True(t, s.TogglePrimaryImage("img-c"))
	assert.Equal(t, []string{"img-a", "img-b", "img-c"}, order(s))
	assert.Equal(t, []int{0, 1, 2}, positions(s))
}
