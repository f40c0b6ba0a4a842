package cont

import (
	"Showcase/entity"
	"context"
	"errors"
)

type ctxKey string

const (
	sessionKey  ctxKey = "session_id"
	languageKey ctxKey = "language"
)

func PutSessionID(c context.Context, id string) context.Context {
	return context.WithValue(c, sessionKey, id)
}

func GetSessionID(c context.Context) (string, error) {
	id, ok := c.Value(sessionKey).(string)
	if !ok || id == "" {
		return "", errors.New("session not found in context")
	}
	return id, nil
}

// PutLanguage stores the language the client last chose, if it sent one.
func PutLanguage(c context.Context, lang entity.Language) context.Context {
	return context.WithValue(c, languageKey, lang)
}

// GetLanguage returns "" when the request carried no language.
func GetLanguage(c context.Context) entity.Language {
	lang, _ := c.Value(languageKey).(entity.Language)
	return lang
}
