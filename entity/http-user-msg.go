package entity

import (
	"Showcase/internal/lib/validate"
	"net/http"
)

// HttpUserMsg is a typed or recorded question from the page.
type HttpUserMsg struct {
	Product        string `json:"product" validate:"max=128"`
	Message        string `json:"message" validate:"required_without=VoiceMsgBase64,max=1000"`
	VoiceMsgBase64 string `json:"voice_base64,omitempty" validate:"omitempty,base64"`
}

func (m *HttpUserMsg) Bind(_ *http.Request) error {
	return validate.Struct(m)
}

type ProductRequest struct {
	Product string `json:"product" validate:"max=128"`
}

func (p *ProductRequest) Bind(_ *http.Request) error {
	return validate.Struct(p)
}

type LanguageRequest struct {
	Lang string `json:"lang" validate:"required,oneof=en gu"`
}

func (l *LanguageRequest) Bind(_ *http.Request) error {
	return validate.Struct(l)
}

type SpeechRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

func (s *SpeechRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

// CarouselMove is a slide change: next, prev, go to Index, or a swipe of
// Dx pixels.
type CarouselMove struct {
	Product string  `json:"product" validate:"max=128"`
	Action  string  `json:"action" validate:"required,oneof=next prev go swipe"`
	Index   int     `json:"index" validate:"min=0"`
	Dx      float64 `json:"dx"`
}

func (c *CarouselMove) Bind(_ *http.Request) error {
	return validate.Struct(c)
}
