// Package selling implements the auction-authoring workflow: image-set
// management, fee estimation, draft persistence, and submission.
package selling

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	// Preview probing needs the common formats registered.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"auctionhub/internal/notify"
)

// Image-set limits, matching the production form.
const (
	MaxImages     = 10
	MaxImageBytes = 16 * 1024 * 1024
)

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Candidate is a file offered to the image set.
type Candidate struct {
	Name    string
	MIME    string
	Size    int64
	Content []byte
}

// SelectedImage is an accepted image. Width/Height hold the decoded preview
// dimensions when the content could be probed, zero otherwise.
type SelectedImage struct {
	Name    string
	MIME    string
	Size    int64
	Content []byte
	Width   int
	Height  int
}

// ImageSet is the ordered set of images attached to a draft. Index 0 is the
// primary image. Mutations happen one user action at a time.
type ImageSet struct {
	mu       sync.Mutex
	images   []SelectedImage
	notifier *notify.Surface
}

// NewImageSet returns an empty set. notifier may be nil; rejection feedback
// is then dropped.
func NewImageSet(notifier *notify.Surface) *ImageSet {
	return &ImageSet{notifier: notifier}
}

func (s *ImageSet) warn(format string, args ...any) {
	if s.notifier != nil {
		s.notifier.Warning(fmt.Sprintf(format, args...))
	}
}

// Add validates each candidate and appends the acceptable ones in order.
// Rejected files produce a warning notification and are skipped, never
// silently dropped. Returns the number accepted.
func (s *ImageSet) Add(candidates ...Candidate) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := 0
	for _, c := range candidates {
		if !allowedImageMIMEs[c.MIME] {
			s.warn("%s is not a supported image format", c.Name)
			continue
		}
		if c.Size > MaxImageBytes {
			s.warn("%s is too large. Maximum size is 16MB", c.Name)
			continue
		}
		if len(s.images) >= MaxImages {
			s.warn("Maximum %d images allowed", MaxImages)
			continue
		}

		img := SelectedImage{Name: c.Name, MIME: c.MIME, Size: c.Size, Content: c.Content}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(c.Content)); err == nil {
			img.Width = cfg.Width
			img.Height = cfg.Height
		}
		s.images = append(s.images, img)
		accepted++
	}
	return accepted
}

// Remove drops the image at index i; later images shift down.
func (s *ImageSet) Remove(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.images) {
		return
	}
	s.images = append(s.images[:i], s.images[i+1:]...)
}

// SetPrimary moves the image at index i to the front; the rest keep their
// relative order. This is the only reordering operation.
func (s *ImageSet) SetPrimary(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i <= 0 || i >= len(s.images) {
		return
	}
	primary := s.images[i]
	s.images = append(s.images[:i], s.images[i+1:]...)
	s.images = append([]SelectedImage{primary}, s.images...)
}

// Images returns a snapshot of the set in order.
func (s *ImageSet) Images() []SelectedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SelectedImage, len(s.images))
	copy(out, s.images)
	return out
}

// Count reports how many images are selected.
func (s *ImageSet) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}

// Clear empties the set, e.g. after a successful submission.
func (s *ImageSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = nil
}
