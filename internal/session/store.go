// Package session keeps per-visitor state and chat transcripts.
package session

import (
	"Showcase/entity"
	"context"
	"fmt"
)

// Store persists sessions and transcripts. Load returns nil, nil for an
// unknown id. Each setter changes one field and creates the session when
// it does not exist yet, so concurrent updates of different fields never
// overwrite each other.
type Store interface {
	Load(ctx context.Context, id string) (*entity.Session, error)
	SetLanguage(ctx context.Context, id string, lang entity.Language) error
	// MarkWelcomed reports true only for the call that set the flag.
	MarkWelcomed(ctx context.Context, id, productKey string) (bool, error)
	SetCarousel(ctx context.Context, id, productKey string, index int) error
	AppendTurns(ctx context.Context, turns ...entity.ChatTurn) error
	Transcript(ctx context.Context, sessionID, product string) ([]entity.ChatTurn, error)
}

// LoadOrCreate returns the stored session or a fresh one with defaults.
// fallback is the language used while the session has none of its own;
// anything unsupported means English.
func LoadOrCreate(ctx context.Context, store Store, id string, fallback entity.Language) (*entity.Session, error) {
	if !fallback.Valid() {
		fallback = entity.English
	}
	s, err := store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		s = entity.NewSession(id)
		s.Language = fallback
		return s, nil
	}
	if !s.Language.Valid() {
		s.Language = fallback
	}
	return s, nil
}
