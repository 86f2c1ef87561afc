package site

import (
	"github.com/arcosplaya/concierge/internal/content"
	"github.com/arcosplaya/concierge/internal/services/photos"
)

// OverrideSource supplies a session's uploaded photos.
type OverrideSource interface {
	Overrides(sessionID string) photos.Overrides
}

// Page is everything the single-page site renders for one visitor.
type Page struct {
	Language  content.Language      `json:"language"`
	Languages []content.Language    `json:"languages"`
	Text      content.Translation   `json:"text"`
	Category  content.Category      `json:"category"`
	Catalog   content.Catalog       `json:"catalog"`
	Gallery   []content.GalleryItem `json:"gallery"`
}

type Service struct {
	photos OverrideSource
}

// NewService accepts a nil source, in which case pages carry only the default images.
func NewService(source OverrideSource) *Service {
	return &Service{photos: source}
}

func (s *Service) Page(sessionID string, lang content.Language, category content.Category) Page {
	catalog := content.DefaultCatalog()
	if s.photos != nil && sessionID != "" {
		applyOverrides(&catalog, s.photos.Overrides(sessionID))
	}

	return Page{
		Language:  lang,
		Languages: content.Languages,
		Text:      content.Translate(lang),
		Category:  category,
		Catalog:   catalog,
		Gallery:   content.FilterGallery(catalog.Gallery, category),
	}
}

func applyOverrides(c *content.Catalog, o photos.Overrides) {
	for slot, url := range o.Slots {
		switch slot.Kind {
		case photos.SlotHero:
			c.HeroImage = url
		case photos.SlotMap:
			c.MapImage = url
		case photos.SlotGallery:
			for i := range c.Gallery {
				if c.Gallery[i].ID == slot.ID {
					c.Gallery[i].URL = url
				}
			}
		case photos.SlotFood:
			for i := range c.Food {
				if c.Food[i].ID == slot.ID {
					c.Food[i].Image = url
				}
			}
		case photos.SlotBlog:
			for i := range c.Blog {
				if c.Blog[i].ID == slot.ID {
					c.Blog[i].Image = url
				}
			}
		}
	}

	if len(o.Gallery) > 0 {
		c.Gallery = append(append([]content.GalleryItem(nil), o.Gallery...), c.Gallery...)
	}
}
