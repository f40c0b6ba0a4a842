package core

import (
	"Showcase/entity"
	"context"
	"fmt"
)

func (c *Core) Language(ctx context.Context, sessionID string) (entity.Language, error) {
	sess, err := c.session(ctx, sessionID)
	if err != nil {
		return entity.English, err
	}
	return sess.Language, nil
}

// SetLanguage stores the visitor's language; unknown codes select English.
func (c *Core) SetLanguage(ctx context.Context, sessionID string, lang entity.Language) (entity.Language, error) {
	lang = entity.ParseLanguage(string(lang))
	if err := c.sessions.SetLanguage(ctx, sessionID, lang); err != nil {
		return entity.English, fmt.Errorf("save session: %w", err)
	}
	if c.hub != nil {
		c.hub.PublishLanguage(sessionID, lang)
	}
	return lang, nil
}
