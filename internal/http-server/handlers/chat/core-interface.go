package chat

import (
	"Showcase/entity"
	"context"
)

type Core interface {
	Ask(ctx context.Context, sessionID, requested, text string) (*entity.Exchange, error)
	AskVoice(ctx context.Context, sessionID, requested, audio, name string) (*entity.Exchange, error)
	Welcome(ctx context.Context, sessionID, requested string) (*entity.Welcome, error)
	Greeting(ctx context.Context, sessionID, requested string) (string, error)
	Transcript(ctx context.Context, sessionID, requested string) ([]entity.ChatTurn, error)
	Text(ctx context.Context, sessionID, key string) string
}
