package speech

import (
	"Showcase/entity"
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned to an utterance cancelled by a newer one in the
// same session.
var ErrSuperseded = errors.New("utterance superseded")

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, lang entity.Language) ([]byte, error)
}

type utterance struct {
	cancel context.CancelCauseFunc
}

// Speaker keeps at most one utterance in flight per session: starting a new
// one cancels whatever that session was still saying.
type Speaker struct {
	synth  Synthesizer
	mutex  sync.Mutex
	active map[string]*utterance
}

func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{
		synth:  synth,
		active: make(map[string]*utterance),
	}
}

func (s *Speaker) Speak(ctx context.Context, sessionID, text string, lang entity.Language) ([]byte, error) {
	if s.synth == nil {
		return nil, ErrNotSupported
	}
	ctx, cancel := context.WithCancelCause(ctx)
	current := &utterance{cancel: cancel}

	s.mutex.Lock()
	if prev, ok := s.active[sessionID]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.active[sessionID] = current
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		if s.active[sessionID] == current {
			delete(s.active, sessionID)
		}
		s.mutex.Unlock()
		cancel(nil)
	}()

	audio, err := s.synth.Synthesize(ctx, text, lang)
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrSuperseded) {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	return audio, nil
}

// Stop cancels the session's current utterance, if any.
func (s *Speaker) Stop(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if prev, ok := s.active[sessionID]; ok {
		prev.cancel(ErrSuperseded)
		delete(s.active, sessionID)
	}
}
