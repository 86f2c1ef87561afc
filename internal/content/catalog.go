package content

import (
	"errors"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryAll        Category = "all"
	CategoryApartments Category = "apartments"
	CategoryBeach      Category = "beach"
	CategoryFood       Category = "food"
	CategoryCity       Category = "city"
)

var ErrUnknownCategory = errors.New("unknown gallery category")

// ParseCategory accepts the gallery categories plus "all"; blank means all.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return CategoryAll, nil
	case CategoryAll, CategoryApartments, CategoryBeach, CategoryFood, CategoryCity:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type GalleryItem struct {
	ID       int      `json:"id"`
	URL      string   `json:"url"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
}

type BlogPost struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

type Activity struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type FoodItem struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"desc"`
}

const (
	DefaultHeroImage = "https://picsum.photos/1920/1080?random=100"
	DefaultMapImage  = "https://picsum.photos/1200/400?grayscale"
)

// Catalog is the page's editable data. Callers receive copies and may change them freely.
type Catalog struct {
	HeroImage  string        `json:"hero_image"`
	MapImage   string        `json:"map_image"`
	Gallery    []GalleryItem `json:"gallery"`
	Blog       []BlogPost    `json:"blog"`
	Activities []Activity    `json:"activities"`
	Food       []FoodItem    `json:"food"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		HeroImage:  DefaultHeroImage,
		MapImage:   DefaultMapImage,
		Gallery:    append([]GalleryItem(nil), galleryItems...),
		Blog:       append([]BlogPost(nil), blogPosts...),
		Activities: append([]Activity(nil), activities...),
		Food:       append([]FoodItem(nil), foodItems...),
	}
}

// FilterGallery keeps the items of category c in their original order.
func FilterGallery(items []GalleryItem, c Category) []GalleryItem {
	if c == CategoryAll || c == "" {
		return items
	}

	filtered := make([]GalleryItem, 0, len(items))
	for _, item := range items {
		if item.Category == c {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

var galleryItems = []GalleryItem{
	{ID: 1, URL: "https://picsum.photos/800/600?random=1", Category: CategoryApartments, Title: "Sea View Balcony"},
	{ID: 2, URL: "https://picsum.photos/800/601?random=2", Category: CategoryBeach, Title: "Private Beach Access"},
	{ID: 3, URL: "https://picsum.photos/800/602?random=3", Category: CategoryFood, Title: "Local Paella"},
	{ID: 4, URL: "https://picsum.photos/800/603?random=4", Category: CategoryApartments, Title: "Master Bedroom"},
	{ID: 5, URL: "https://picsum.photos/800/604?random=5", Category: CategoryCity, Title: "Historic Town Center"},
	{ID: 6, URL: "https://picsum.photos/800/605?random=6", Category: CategoryFood, Title: "Fresh Seafood"},
}

var blogPosts = []BlogPost{
	{ID: 1, Title: "Top 5 Hidden Coves Nearby", Excerpt: "Discover the secret beaches that only locals know about...", Date: "June 15, 2024", Image: "https://picsum.photos/600/400?random=10", Category: "Guide"},
	{ID: 2, Title: "A Taste of Local Wine", Excerpt: "Exploring the vineyards just a 30-minute drive from Arcos Playa.", Date: "May 22, 2024", Image: "https://picsum.photos/600/400?random=11", Category: "Culture"},
	{ID: 3, Title: "Summer Festivals 2024", Excerpt: "Don't miss the vibrant nightlife and street festivals this summer.", Date: "April 10, 2024", Image: "https://picsum.photos/600/400?random=12", Category: "Events"},
}

var activities = []Activity{
	{ID: 1, Title: "Beach Yoga", Description: "Morning sessions on the sand.", Icon: "Sun"},
	{ID: 2, Title: "Water Sports", Description: "Kayak and paddle surf rentals.", Icon: "Waves"},
	{ID: 3, Title: "Gastronomy Tours", Description: "Taste the best local tapas.", Icon: "Utensils"},
	{ID: 4, Title: "Hiking Trails", Description: "Explore the coastal paths.", Icon: "MapPin"},
}

var foodItems = []FoodItem{
	{ID: 1, Image: "https://picsum.photos/600/400?random=21", Title: "La Terraza del Mar", Description: "Fresh seafood right on the beach front. Famous for their lobster paella."},
	{ID: 2, Image: "https://picsum.photos/600/400?random=22", Title: "El Olivo", Description: "Authentic Mediterranean tapas in a rustic garden setting."},
	{ID: 3, Image: "https://picsum.photos/600/400?random=23", Title: "Sunset Lounge", Description: "The best cocktails with a panoramic view of the coastline."},
}
