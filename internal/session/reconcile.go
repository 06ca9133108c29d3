package session

import "admin-bff-service/internal/models"

// Image list reconciliation. After every structural change positions are
// recomputed as the 0-based index, so the list always carries positions
// 0..n-1 with no gaps or duplicates.

// AppendImages adds uploaded images in processed order and reindexes
func (s *EditSession) AppendImages(imgs []models.ProductImage) {
	s.Images = append(s.Images, imgs...)
	s.reindex()
	s.touch()
}

// RemoveImage deletes one image from the list. Returns false if the id is unknown.
func (s *EditSession) RemoveImage(imageID string) bool {
	idx := s.imageIndex(imageID)
	if idx < 0 {
		return false
	}
	s.Images = append(s.Images[:idx], s.Images[idx+1:]...)
	s.reindex()
	s.touch()
	return true
}

// MoveImage swaps the image with its immediate neighbor in the given
// direction. A move past either end of the list is a no-op.
func (s *EditSession) MoveImage(imageID string, dir MoveDirection) bool {
	idx := s.imageIndex(imageID)
	if idx < 0 {
		return false
	}
	switch dir {
	case MoveUp:
		if idx == 0 {
			return false
		}
		s.Images[idx-1], s.Images[idx] = s.Images[idx], s.Images[idx-1]
	case MoveDown:
		if idx == len(s.Images)-1 {
			return false
		}
		s.Images[idx], s.Images[idx+1] = s.Images[idx+1], s.Images[idx]
	default:
		return false
	}
	s.reindex()
	s.touch()
	return true
}

// SetPrimaryImage moves the image to the front of the list and reindexes.
//
// Deprecated: superseded by TogglePrimaryImage; retained because older admin
// builds still call the reorder-based endpoint.
func (s *EditSession) SetPrimaryImage(imageID string) bool {
	idx := s.imageIndex(imageID)
	if idx < 0 {
		return false
	}
	img := s.Images[idx]
	s.Images = append(s.Images[:idx], s.Images[idx+1:]...)
	s.Images = append([]models.ProductImage{img}, s.Images...)
	s.reindex()
	s.touch()
	return true
}

// TogglePrimaryImage flips the isPrimary flag on one image. At most
// MaxPrimaryImages images may be primary at once; a toggle that would exceed
// the cap is silently rejected. Unsetting is always permitted.
func (s *EditSession) TogglePrimaryImage(imageID string) bool {
	idx := s.imageIndex(imageID)
	if idx < 0 {
		return false
	}
	if !s.Images[idx].IsPrimary && s.PrimaryCount() >= models.MediaLimits.MaxPrimaryImages {
		return false
	}
	s.Images[idx].IsPrimary = !s.Images[idx].IsPrimary
	s.touch()
	return true
}

// HasImage reports whether an image with the given id is in the list
func (s *EditSession) HasImage(imageID string) bool {
	return s.imageIndex(imageID) >= 0
}

// PrimaryCount returns the number of images currently flagged primary
func (s *EditSession) PrimaryCount() int {
	n := 0
	for _, img := range s.Images {
		if img.IsPrimary {
			n++
		}
	}
	return n
}

func (s *EditSession) imageIndex(imageID string) int {
	for i, img := range s.Images {
		if img.ID == imageID {
			return i
		}
	}
	return -1
}

func (s *EditSession) reindex() {
	for i := range s.Images {
		s.Images[i].Position = i
	}
}
