package session

import (
	"Showcase/entity"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateDefaults(t *testing.T) {
	store := NewMemoryStore(10)

	s, err := LoadOrCreate(context.Background(), store, "abc", "")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, entity.English, s.Language)
	assert.False(t, s.IsWelcomed("led42"))

	s, err = LoadOrCreate(context.Background(), store, "abc", entity.Gujarati)
	require.NoError(t, err)
	assert.Equal(t, entity.Gujarati, s.Language)

	s, err = LoadOrCreate(context.Background(), store, "abc", "fr")
	require.NoError(t, err)
	assert.Equal(t, entity.English, s.Language)
}

func TestStoredLanguageWinsOverFallback(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	// a session created by another field has no language yet
	require.NoError(t, store.SetCarousel(ctx, "abc", "led42", 1))
	s, err := LoadOrCreate(ctx, store, "abc", entity.Gujarati)
	require.NoError(t, err)
	assert.Equal(t, entity.Gujarati, s.Language)

	require.NoError(t, store.SetLanguage(ctx, "abc", entity.English))
	s, err = LoadOrCreate(ctx, store, "abc", entity.Gujarati)
	require.NoError(t, err)
	assert.Equal(t, entity.English, s.Language)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	require.NoError(t, store.SetLanguage(ctx, "abc", entity.Gujarati))
	first, err := store.MarkWelcomed(ctx, "abc", "led42")
	require.NoError(t, err)
	assert.True(t, first)
	require.NoError(t, store.SetCarousel(ctx, "abc", "led42", 2))

	loaded, err := LoadOrCreate(ctx, store, "abc", "")
	require.NoError(t, err)
	// mutating a loaded copy must not leak into the store
	loaded.MarkWelcomed("fridge")

	loaded, err = LoadOrCreate(ctx, store, "abc", "")
	require.NoError(t, err)
	assert.Equal(t, entity.Gujarati, loaded.Language)
	assert.True(t, loaded.IsWelcomed("led42"))
	assert.False(t, loaded.IsWelcomed("fridge"))
	assert.Equal(t, 2, loaded.CarouselIndex("led42"))
}

func TestMemoryStoreMarkWelcomedOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	var wg sync.WaitGroup
	var mutex sync.Mutex
	firsts := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := store.MarkWelcomed(ctx, "abc", "led42")
			assert.NoError(t, err)
			if first {
				mutex.Lock()
				firsts++
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, firsts)
}

func TestMemoryStoreFieldUpdatesDoNotClobber(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		assert.NoError(t, store.SetLanguage(ctx, "abc", entity.Gujarati))
	}()
	go func() {
		defer wg.Done()
		_, err := store.MarkWelcomed(ctx, "abc", "led42")
		assert.NoError(t, err)
	}()
	wg.Wait()

	s, err := LoadOrCreate(ctx, store, "abc", "")
	require.NoError(t, err)
	assert.Equal(t, entity.Gujarati, s.Language)
	assert.True(t, s.IsWelcomed("led42"))
}

func TestMemoryStoreTranscriptOrderAndTrim(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	for _, text := range []string{"one", "two", "three", "four"} {
		require.NoError(t, store.AppendTurns(ctx, entity.ChatTurn{SessionID: "s1", Product: "led42", Text: text}))
	}
	require.NoError(t, store.AppendTurns(ctx, entity.ChatTurn{SessionID: "s1", Product: "fridge", Text: "other"}))

	turns, err := store.Transcript(ctx, "s1", "led42")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, []string{"two", "three", "four"}, []string{turns[0].Text, turns[1].Text, turns[2].Text})

	turns, err = store.Transcript(ctx, "s2", "led42")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

type fakeRepo struct {
	batches [][]entity.ChatTurn
	err     error
}

func (f *fakeRepo) SetSessionLanguage(context.Context, string, entity.Language) error { return f.err }

func (f *fakeRepo) MarkSessionWelcomed(context.Context, string, string) (bool, error) {
	return f.err == nil, f.err
}

func (f *fakeRepo) SetSessionCarousel(context.Context, string, string, int) error { return f.err }

func (f *fakeRepo) LoadSession(context.Context, string) (*entity.Session, error) { return nil, f.err }

func (f *fakeRepo) SaveChatTurns(_ context.Context, turns []entity.ChatTurn) error {
	f.batches = append(f.batches, turns)
	return f.err
}

func (f *fakeRepo) GetChatTurns(context.Context, string, string) ([]entity.ChatTurn, error) {
	return nil, f.err
}

func TestMongoStoreBatchesPerTranscript(t *testing.T) {
	repo := &fakeRepo{}
	store := NewMongoStore(repo)

	err := store.AppendTurns(context.Background(),
		entity.ChatTurn{SessionID: "s1", Product: "a", Text: "q"},
		entity.ChatTurn{SessionID: "s1", Product: "a", Text: "r"},
		entity.ChatTurn{SessionID: "s1", Product: "b", Text: "q"},
	)
	require.NoError(t, err)
	require.Len(t, repo.batches, 2)
	assert.Len(t, repo.batches[0], 2)
	assert.Len(t, repo.batches[1], 1)

	repo.err = errors.New("down")
	_, err = LoadOrCreate(context.Background(), store, "s1", "")
	assert.ErrorContains(t, err, "down")
}
