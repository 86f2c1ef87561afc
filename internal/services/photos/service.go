package photos

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/arcosplaya/concierge/internal/config"
	"github.com/arcosplaya/concierge/internal/content"
	"github.com/gabriel-vasile/mimetype"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// URLPrefix is where live handles are served.
const URLPrefix = "/v1/photos/"

const (
	uploadedTitle   = "Uploaded Photo"
	firstUploadedID = 1000
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("image exceeds the upload limit")
)

// Overrides is a session's view of its uploads: replaced slots mapped to a
// serving URL, and uploaded gallery items newest first.
type Overrides struct {
	Slots   map[Slot]string
	Gallery []content.GalleryItem
}

type sessionPhotos struct {
	mu       sync.Mutex
	slots    map[Slot]Handle
	gallery  []content.GalleryItem
	handles  map[int]Handle
	nextID   int
	released bool
}

func (sp *sessionPhotos) releaseAll(store *Store) int {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	n := 0
	for _, h := range sp.slots {
		if store.Release(h) {
			n++
		}
	}
	for _, h := range sp.handles {
		if store.Release(h) {
			n++
		}
	}
	sp.slots = nil
	sp.handles = nil
	sp.gallery = nil
	sp.released = true
	return n
}

// Service binds uploaded images to a visitor's page. Nothing is persisted:
// a session's handles go away on ReleaseSession or when the session expires.
type Service struct {
	mu       sync.Mutex
	store    *Store
	maxBytes int64
	sessions *expirable.LRU[string, *sessionPhotos]
	known    map[SlotKind]map[int]bool
}

func NewService(store *Store, cfg config.PhotoConfig) *Service {
	s := &Service{
		store:    store,
		maxBytes: cfg.MaxBytes,
		known:    knownSlots(content.DefaultCatalog()),
	}

	onEvict := func(id string, sp *sessionPhotos) {
		if n := sp.releaseAll(store); n > 0 {
			log.Debug().Str("session_id", id).Int("released", n).Msg("Released session photos")
		}
	}
	s.sessions = expirable.NewLRU[string, *sessionPhotos](0, onEvict, cfg.TTL)

	return s
}

func knownSlots(c content.Catalog) map[SlotKind]map[int]bool {
	known := map[SlotKind]map[int]bool{
		SlotGallery: {},
		SlotFood:    {},
		SlotBlog:    {},
	}
	for _, item := range c.Gallery {
		known[SlotGallery][item.ID] = true
	}
	for _, item := range c.Food {
		known[SlotFood][item.ID] = true
	}
	for _, post := range c.Blog {
		known[SlotBlog][post.ID] = true
	}
	return known
}

// session returns the live, locked photo state of a session.
func (s *Service) session(id string) *sessionPhotos {
	for {
		s.mu.Lock()
		sp, ok := s.sessions.Get(id)
		if ok {
			s.sessions.Add(id, sp)
		} else {
			s.sessions.Remove(id)
			sp = &sessionPhotos{
				slots:   make(map[Slot]Handle),
				handles: make(map[int]Handle),
				nextID:  firstUploadedID,
			}
			s.sessions.Add(id, sp)
		}
		s.mu.Unlock()

		sp.mu.Lock()
		if !sp.released {
			return sp
		}
		sp.mu.Unlock()

		// released by ReleaseSession but not yet dropped from the cache
		s.mu.Lock()
		if cur, ok := s.sessions.Peek(id); ok && cur == sp {
			s.sessions.Remove(id)
		}
		s.mu.Unlock()
	}
}

func (s *Service) check(data []byte) (string, error) {
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), s.maxBytes)
	}

	mtype := mimetype.Detect(data)
	if len(data) == 0 || !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	return mtype.String(), nil
}

// Replace binds a new image to slot and releases the image it replaces.
func (s *Service) Replace(sessionID, slot string, data []byte) (Handle, error) {
	target, err := ParseSlot(slot)
	if err != nil {
		return "", err
	}

	contentType, err := s.check(data)
	if err != nil {
		return "", err
	}

	sp := s.session(sessionID)
	defer sp.mu.Unlock()

	if target.ID != 0 && !s.known[target.Kind][target.ID] {
		if _, uploaded := sp.handles[target.ID]; target.Kind != SlotGallery || !uploaded {
			return "", fmt.Errorf("%w: %s", ErrUnknownSlot, target)
		}
	}

	h := s.store.Acquire(data, contentType)

	if target.Kind == SlotGallery {
		if prev, ok := sp.handles[target.ID]; ok {
			sp.handles[target.ID] = h
			s.store.Release(prev)
			sp.rebindGallery(target.ID, h)
			return h, nil
		}
	}

	if prev, ok := sp.slots[target]; ok {
		s.store.Release(prev)
	}
	sp.slots[target] = h

	log.Debug().
		Str("session_id", sessionID).
		Str("slot", target.String()).
		Str("content_type", contentType).
		Int("bytes", len(data)).
		Msg("Replaced page photo")

	return h, nil
}

func (sp *sessionPhotos) rebindGallery(id int, h Handle) {
	for i := range sp.gallery {
		if sp.gallery[i].ID == id {
			sp.gallery[i].URL = URLPrefix + string(h)
		}
	}
}

// AddGalleryPhoto adds an uploaded image to the front of the session's gallery.
func (s *Service) AddGalleryPhoto(sessionID string, data []byte) (content.GalleryItem, error) {
	contentType, err := s.check(data)
	if err != nil {
		return content.GalleryItem{}, err
	}

	sp := s.session(sessionID)
	defer sp.mu.Unlock()

	h := s.store.Acquire(data, contentType)
	item := content.GalleryItem{
		ID:       sp.nextID,
		URL:      URLPrefix + string(h),
		Category: content.CategoryApartments,
		Title:    uploadedTitle,
	}
	sp.nextID++
	sp.handles[item.ID] = h
	sp.gallery = append([]content.GalleryItem{item}, sp.gallery...)

	return item, nil
}

// ReleaseSession frees every image the session holds and returns how many
// handles were still live.
func (s *Service) ReleaseSession(sessionID string) int {
	s.mu.Lock()
	sp, ok := s.sessions.Peek(sessionID)
	s.mu.Unlock()
	if !ok {
		return 0
	}

	n := sp.releaseAll(s.store)
	s.sessions.Remove(sessionID)
	return n
}

// Overrides returns the session's live replacements. Expired handles are
// left out so the page falls back to its default images.
func (s *Service) Overrides(sessionID string) Overrides {
	out := Overrides{Slots: make(map[Slot]string)}

	s.mu.Lock()
	sp, ok := s.sessions.Get(sessionID)
	s.mu.Unlock()
	if !ok {
		return out
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()

	for slot, h := range sp.slots {
		if s.store.Live(h) {
			out.Slots[slot] = URLPrefix + string(h)
		}
	}
	for _, item := range sp.gallery {
		if s.store.Live(sp.handles[item.ID]) {
			out.Gallery = append(out.Gallery, item)
		}
	}

	return out
}

func (s *Service) Image(h Handle) (*Image, error) {
	return s.store.Get(h)
}
