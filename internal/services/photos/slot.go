package photos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownSlot = errors.New("unknown photo slot")

type SlotKind string

const (
	SlotHero    SlotKind = "hero"
	SlotMap     SlotKind = "map"
	SlotGallery SlotKind = "gallery"
	SlotFood    SlotKind = "food"
	SlotBlog    SlotKind = "blog"
)

// Slot is a replaceable image position on the page: "hero", "map", or
// "<gallery|food|blog>/<id>".
type Slot struct {
	Kind SlotKind
	ID   int
}

func (s Slot) String() string {
	if s.ID == 0 {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s/%d", s.Kind, s.ID)
}

func ParseSlot(s string) (Slot, error) {
	kind, rawID, hasID := strings.Cut(strings.Trim(strings.TrimSpace(s), "/"), "/")

	switch SlotKind(kind) {
	case SlotHero, SlotMap:
		if hasID {
			return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
		}
		return Slot{Kind: SlotKind(kind)}, nil
	case SlotGallery, SlotFood, SlotBlog:
		id, err := strconv.Atoi(rawID)
		if !hasID || err != nil || id <= 0 {
			return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
		}
		return Slot{Kind: SlotKind(kind), ID: id}, nil
	}

	return Slot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, s)
}
