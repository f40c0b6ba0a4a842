package core

import (
	"Showcase/entity"
	"Showcase/internal/lib/sl"
	"Showcase/internal/locale"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Ask answers one typed question about the requested product. The user turn
// and the answer are stored together, user first.
func (c *Core) Ask(ctx context.Context, sessionID, requested, text string) (*entity.Exchange, error) {
	p, key, resp := c.product(requested)
	if p == nil {
		return nil, ErrEmptyCatalog
	}
	sess, err := c.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lang := sess.Language

	user := entity.ChatTurn{
		SessionID: sessionID,
		Product:   key,
		Speaker:   entity.SpeakerUser,
		Text:      strings.TrimSpace(text),
		Language:  lang,
		CreatedAt: time.Now(),
	}
	answer := resp.Match(user.Text, lang)
	assistant := entity.ChatTurn{
		SessionID: sessionID,
		Product:   key,
		Speaker:   entity.SpeakerAssistant,
		Text:      answer.Text,
		Intent:    answer.Intent,
		Language:  lang,
		CreatedAt: time.Now(),
	}
	// one append keeps the exchange together in the transcript
	if err = c.sessions.AppendTurns(ctx, user, assistant); err != nil {
		return nil, fmt.Errorf("append exchange: %w", err)
	}
	c.publish(sessionID, user, assistant)

	c.log.With(
		slog.String("session", sessionID),
		slog.String("product", key),
		slog.String("intent", answer.Intent),
	).Debug("question answered")

	return &entity.Exchange{User: user, Assistant: assistant}, nil
}

// AskVoice transcribes a recorded question and answers it like typed text.
// name is the clip's file name; its extension tells the recogniser the
// container. An empty transcript yields no exchange.
func (c *Core) AskVoice(ctx context.Context, sessionID, requested, audio, name string) (*entity.Exchange, error) {
	if c.stt == nil {
		return nil, ErrNotSupported
	}
	lang, err := c.Language(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	text, err := c.stt.TranscribeBase64(ctx, audio, name, lang)
	if err != nil {
		c.log.With(sl.Err(err)).Error("transcribe voice question")
		return nil, err
	}
	if text == "" {
		return nil, ErrNothingHeard
	}
	return c.Ask(ctx, sessionID, requested, text)
}

// Transcript returns the session's conversation about the product, oldest
// first.
func (c *Core) Transcript(ctx context.Context, sessionID, requested string) ([]entity.ChatTurn, error) {
	_, key, _ := c.product(requested)
	if key == "" {
		return []entity.ChatTurn{}, nil
	}
	return c.sessions.Transcript(ctx, sessionID, key)
}

// Greeting is the tip shown when the chat panel first opens.
func (c *Core) Greeting(ctx context.Context, sessionID, requested string) (string, error) {
	lang, err := c.Language(ctx, sessionID)
	if err != nil {
		return "", err
	}
	p, _, _ := c.product(requested)
	if p == nil {
		return c.texts.T(lang, locale.ProductNotFound), nil
	}
	return c.texts.Format(lang, locale.Greeting, map[string]string{"title": c.title(p, lang)}), nil
}

// Welcome returns the spoken welcome. Speak is true only for the call that
// first sets the session's flag for the product.
func (c *Core) Welcome(ctx context.Context, sessionID, requested string) (*entity.Welcome, error) {
	p, key, _ := c.product(requested)
	if p == nil {
		return nil, ErrEmptyCatalog
	}
	sess, err := c.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lang := sess.Language

	first, err := c.sessions.MarkWelcomed(ctx, sessionID, key)
	if err != nil {
		return nil, fmt.Errorf("mark welcomed: %w", err)
	}
	return &entity.Welcome{
		Text: c.texts.Format(lang, locale.Welcome, map[string]string{
			"store": c.storeName(lang),
			"title": c.title(p, lang),
		}),
		Speak:     first,
		SpeechTag: lang.SpeechTag(),
	}, nil
}

func (c *Core) publish(sessionID string, turns ...entity.ChatTurn) {
	if c.hub != nil {
		c.hub.PublishTurns(sessionID, turns...)
	}
}
