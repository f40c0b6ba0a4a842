package session

import (
	"Showcase/entity"
	"context"
	"maps"
	"sync"
	"time"
)

type transcriptKey struct {
	session string
	product string
}

// MemoryStore keeps everything in process. It is the default when no
// database is configured.
type MemoryStore struct {
	mutex    sync.Mutex
	sessions map[string]entity.Session
	turns    map[transcriptKey][]entity.ChatTurn
	maxTurns int
}

func NewMemoryStore(maxTurns int) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entity.Session),
		turns:    make(map[transcriptKey][]entity.ChatTurn),
		maxTurns: maxTurns,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*entity.Session, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return clone(s), nil
}

func (m *MemoryStore) SetLanguage(_ context.Context, id string, lang entity.Language) error {
	m.update(id, func(s *entity.Session) {
		s.Language = lang
	})
	return nil
}

func (m *MemoryStore) MarkWelcomed(_ context.Context, id, productKey string) (bool, error) {
	first := false
	m.update(id, func(s *entity.Session) {
		if !s.IsWelcomed(productKey) {
			s.MarkWelcomed(productKey)
			first = true
		}
	})
	return first, nil
}

func (m *MemoryStore) SetCarousel(_ context.Context, id, productKey string, index int) error {
	m.update(id, func(s *entity.Session) {
		s.SetCarouselIndex(productKey, index)
	})
	return nil
}

// update applies fn to the stored session under the store lock. A new
// session has no language until one is set.
func (m *MemoryStore) update(id string, fn func(s *entity.Session)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = entity.Session{ID: id}
	}
	updated := clone(s)
	fn(updated)
	updated.UpdatedAt = time.Now()
	m.sessions[id] = *updated
}

func (m *MemoryStore) AppendTurns(_ context.Context, turns ...entity.ChatTurn) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, turn := range turns {
		key := transcriptKey{session: turn.SessionID, product: turn.Product}
		list := append(m.turns[key], turn)
		if m.maxTurns > 0 && len(list) > m.maxTurns {
			list = append([]entity.ChatTurn(nil), list[len(list)-m.maxTurns:]...)
		}
		m.turns[key] = list
	}
	return nil
}

func (m *MemoryStore) Transcript(_ context.Context, sessionID, product string) ([]entity.ChatTurn, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	list := m.turns[transcriptKey{session: sessionID, product: product}]
	out := make([]entity.ChatTurn, len(list))
	copy(out, list)
	return out, nil
}

func clone(s entity.Session) *entity.Session {
	s.Welcomed = maps.Clone(s.Welcomed)
	s.Carousel = maps.Clone(s.Carousel)
	if s.Welcomed == nil {
		s.Welcomed = make(map[string]bool)
	}
	if s.Carousel == nil {
		s.Carousel = make(map[string]int)
	}
	return &s
}
