package speech

import (
	"Showcase/entity"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	audioReq  openai.AudioRequest
	speechReq openai.CreateSpeechRequest
	heard     string
	err       error
}

func (f *fakeBackend) CreateTranscription(_ context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.audioReq = req
	if f.err != nil {
		return openai.AudioResponse{}, f.err
	}
	data, _ := io.ReadAll(req.Reader)
	return openai.AudioResponse{Text: f.heard + " (" + string(data) + ")\n"}, nil
}

func (f *fakeBackend) CreateSpeech(_ context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	f.speechReq = req
	if f.err != nil {
		return openai.RawResponse{}, f.err
	}
	return openai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader("mp3:" + req.Input))}, nil
}

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTranscribeBase64(t *testing.T) {
	backend := &fakeBackend{heard: "price"}
	s := New(backend, "tts-1", "alloy", quietLog())

	clip := base64.StdEncoding.EncodeToString([]byte("clip"))
	text, err := s.TranscribeBase64(context.Background(), clip, "", entity.Gujarati)
	require.NoError(t, err)
	assert.Equal(t, "price (clip)", text)
	assert.Equal(t, openai.Whisper1, backend.audioReq.Model)
	assert.Equal(t, "gu", backend.audioReq.Language)
	assert.Equal(t, "voice.webm", backend.audioReq.FilePath)

	_, err = s.TranscribeBase64(context.Background(), clip, "voice.ogg", entity.English)
	require.NoError(t, err)
	assert.Equal(t, "voice.ogg", backend.audioReq.FilePath)

	_, err = s.TranscribeBase64(context.Background(), "not base64!", "", entity.English)
	assert.Error(t, err)
}

func TestSynthesize(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, "tts-1", "alloy", quietLog())

	audio, err := s.Synthesize(context.Background(), "hello", entity.English)
	require.NoError(t, err)
	assert.Equal(t, "mp3:hello", string(audio))
	assert.Equal(t, openai.SpeechVoice("alloy"), backend.speechReq.Voice)

	backend.err = errors.New("quota")
	_, err = s.Synthesize(context.Background(), "hello", entity.English)
	assert.ErrorContains(t, err, "quota")
}

func TestNilServiceIsNotSupported(t *testing.T) {
	var s *Service

	_, err := s.Synthesize(context.Background(), "hello", entity.English)
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = s.TranscribeBase64(context.Background(), "", "", entity.English)
	assert.ErrorIs(t, err, ErrNotSupported)

	_, err = NewSpeaker(nil).Speak(context.Background(), "s1", "hi", entity.English)
	assert.ErrorIs(t, err, ErrNotSupported)
}

type blockingSynth struct {
	calls   atomic.Int32
	started chan struct{}
}

func (b *blockingSynth) Synthesize(ctx context.Context, text string, _ entity.Language) ([]byte, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(text), nil
}

func TestSpeakerCancelsPreviousUtterance(t *testing.T) {
	synth := &blockingSynth{started: make(chan struct{})}
	speaker := NewSpeaker(synth)

	first := make(chan error, 1)
	go func() {
		_, err := speaker.Speak(context.Background(), "s1", "welcome", entity.English)
		first <- err
	}()
	<-synth.started

	audio, err := speaker.Speak(context.Background(), "s1", "price", entity.English)
	require.NoError(t, err)
	assert.Equal(t, "price", string(audio))

	select {
	case err = <-first:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("first utterance was not cancelled")
	}
}

func TestSpeakerSessionsAreIndependent(t *testing.T) {
	synth := &blockingSynth{started: make(chan struct{})}
	speaker := NewSpeaker(synth)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := speaker.Speak(ctx, "s1", "welcome", entity.English)
		first <- err
	}()
	<-synth.started

	_, err := speaker.Speak(context.Background(), "s2", "price", entity.English)
	require.NoError(t, err)

	select {
	case <-first:
		t.Fatal("other session's utterance was cancelled")
	case <-time.After(50 * time.Millisecond):
	}

	speaker.Stop("s1")
	select {
	case err = <-first:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel")
	}
	cancel()
}
