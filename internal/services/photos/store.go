package photos

import (
	"errors"
	"time"

	"github.com/arcosplaya/concierge/internal/metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

var ErrHandleNotFound = errors.New("photo handle not found")

// Handle names an image held in memory until it is released or expires.
type Handle string

type Image struct {
	Handle      Handle
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Store holds uploaded images in memory only. Every acquired handle is freed
// exactly once: by Release, by expiry, or by size eviction.
type Store struct {
	images *expirable.LRU[Handle, *Image]
}

func NewStore(maxHandles int, ttl time.Duration) *Store {
	onEvict := func(_ Handle, img *Image) {
		metrics.PhotoHandles.Dec()
		metrics.PhotoBytes.Sub(float64(len(img.Data)))
	}

	return &Store{
		images: expirable.NewLRU[Handle, *Image](maxHandles, onEvict, ttl),
	}
}

// Acquire stores data under a new handle.
func (s *Store) Acquire(data []byte, contentType string) Handle {
	img := &Image{
		Handle:      Handle(uuid.NewString()),
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now(),
	}

	metrics.PhotoHandles.Inc()
	metrics.PhotoBytes.Add(float64(len(data)))
	s.images.Add(img.Handle, img)

	return img.Handle
}

// Release frees the handle and reports whether it was still live.
func (s *Store) Release(h Handle) bool {
	return s.images.Remove(h)
}

func (s *Store) Get(h Handle) (*Image, error) {
	img, ok := s.images.Get(h)
	if !ok {
		return nil, ErrHandleNotFound
	}
	return img, nil
}

func (s *Store) Live(h Handle) bool {
	_, ok := s.images.Peek(h)
	return ok
}

func (s *Store) Len() int {
	return s.images.Len()
}
