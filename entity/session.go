package entity

import (
	"strings"
	"time"
)

const welcomeKeyPrefix = "ktpl_welcome_spoken_"

// Session is the per-visitor state that the page used to keep in globals
// and browser storage.
type Session struct {
	ID        string          `json:"id" bson:"_id"`
	Language  Language        `json:"lang" bson:"lang"`
	Welcomed  map[string]bool `json:"welcomed" bson:"welcomed"`
	Carousel  map[string]int  `json:"carousel" bson:"carousel"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Language:  English,
		Welcomed:  make(map[string]bool),
		Carousel:  make(map[string]int),
		UpdatedAt: time.Now(),
	}
}

// WelcomeKey is the flag name marking the spoken welcome for a product.
func WelcomeKey(productKey string) string {
	if productKey == "" {
		productKey = "default"
	}
	return welcomeKeyPrefix + fieldKey(productKey)
}

// mongo field names cannot contain dots
func fieldKey(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}

func (s *Session) IsWelcomed(productKey string) bool {
	return s.Welcomed[WelcomeKey(productKey)]
}

func (s *Session) MarkWelcomed(productKey string) {
	if s.Welcomed == nil {
		s.Welcomed = make(map[string]bool)
	}
	s.Welcomed[WelcomeKey(productKey)] = true
}

// CarouselKey is the field name holding a product's slide index.
func CarouselKey(productKey string) string {
	return fieldKey(productKey)
}

func (s *Session) CarouselIndex(productKey string) int {
	return s.Carousel[CarouselKey(productKey)]
}

func (s *Session) SetCarouselIndex(productKey string, idx int) {
	if s.Carousel == nil {
		s.Carousel = make(map[string]int)
	}
	s.Carousel[CarouselKey(productKey)] = idx
}
