package core

import (
	"Showcase/ai/speech"
	"Showcase/entity"
	"Showcase/internal/gallery"
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotSupported  = speech.ErrNotSupported
	ErrNothingHeard  = errors.New("nothing heard")
	ErrUnknownAction = errors.New("unknown carousel action")
)

// Speak renders text in the session language. A newer call for the same
// session cancels this one.
func (c *Core) Speak(ctx context.Context, sessionID, text string) ([]byte, error) {
	if c.speaker == nil {
		return nil, ErrNotSupported
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("nothing to say")
	}
	lang, err := c.Language(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.speaker.Speak(ctx, sessionID, text, lang)
}

// StopSpeaking cancels the session's utterance in flight, if any.
func (c *Core) StopSpeaking(sessionID string) {
	if c.speaker != nil {
		c.speaker.Stop(sessionID)
	}
}

// Text returns the interface string for key in the session language.
func (c *Core) Text(ctx context.Context, sessionID, key string) string {
	lang, _ := c.Language(ctx, sessionID)
	return c.texts.T(lang, key)
}

// MoveCarousel applies a slide move for the product's gallery and stores the
// new position.
func (c *Core) MoveCarousel(ctx context.Context, sessionID, requested, action string, index int, dx float64) (int, error) {
	p, key, _ := c.product(requested)
	if p == nil {
		return 0, ErrEmptyCatalog
	}
	sess, err := c.session(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	slides := len(p.Images)
	if c.gallery != nil {
		slides = len(c.gallery.ResolveAll(ctx, p.Images))
	}
	current := gallery.Carousel{Len: slides}.Go(sess.CarouselIndex(key))
	moved, ok := current.Apply(action, index, dx)
	if !ok {
		return current.Index, ErrUnknownAction
	}
	if moved.Index != sess.CarouselIndex(key) {
		if err = c.sessions.SetCarousel(ctx, sessionID, key, moved.Index); err != nil {
			return current.Index, fmt.Errorf("save session: %w", err)
		}
	}
	return moved.Index, nil
}

// Languages lists the selectable languages.
func (c *Core) Languages() []entity.Language {
	return entity.Languages
}
