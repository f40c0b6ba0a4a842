package session

import (
	"Showcase/entity"
	"context"
)

// Repository defines the database operations for sessions and transcripts.
type Repository interface {
	LoadSession(ctx context.Context, id string) (*entity.Session, error)
	SetSessionLanguage(ctx context.Context, id string, lang entity.Language) error
	MarkSessionWelcomed(ctx context.Context, id, productKey string) (bool, error)
	SetSessionCarousel(ctx context.Context, id, productKey string, index int) error
	SaveChatTurns(ctx context.Context, turns []entity.ChatTurn) error
	GetChatTurns(ctx context.Context, sessionID, product string) ([]entity.ChatTurn, error)
}

// MongoStore adapts the database repository to the Store interface.
type MongoStore struct {
	repo Repository
}

func NewMongoStore(repo Repository) *MongoStore {
	return &MongoStore{repo: repo}
}

func (s *MongoStore) Load(ctx context.Context, id string) (*entity.Session, error) {
	return s.repo.LoadSession(ctx, id)
}

func (s *MongoStore) SetLanguage(ctx context.Context, id string, lang entity.Language) error {
	return s.repo.SetSessionLanguage(ctx, id, lang)
}

func (s *MongoStore) MarkWelcomed(ctx context.Context, id, productKey string) (bool, error) {
	return s.repo.MarkSessionWelcomed(ctx, id, productKey)
}

func (s *MongoStore) SetCarousel(ctx context.Context, id, productKey string, index int) error {
	return s.repo.SetSessionCarousel(ctx, id, productKey, index)
}

// AppendTurns writes each transcript's turns in one batch.
func (s *MongoStore) AppendTurns(ctx context.Context, turns ...entity.ChatTurn) error {
	start := 0
	for i := 1; i <= len(turns); i++ {
		if i == len(turns) || turns[i].SessionID != turns[start].SessionID || turns[i].Product != turns[start].Product {
			if err := s.repo.SaveChatTurns(ctx, turns[start:i]); err != nil {
				return err
			}
			start = i
		}
	}
	return nil
}

func (s *MongoStore) Transcript(ctx context.Context, sessionID, product string) ([]entity.ChatTurn, error) {
	return s.repo.GetChatTurns(ctx, sessionID, product)
}
