package speech

import (
	"Showcase/entity"
	"Showcase/internal/config"
	"Showcase/internal/lib/sl"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/sashabaranov/go-openai"
	"io"
	"log/slog"
	"strings"
)

// ErrNotSupported is returned when no speech backend is configured.
var ErrNotSupported = errors.New("speech not supported")

// Backend is the part of the OpenAI client used for voice.
type Backend interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

type Service struct {
	backend  Backend
	ttsModel string
	voice    string
	log      *slog.Logger
}

// NewService returns nil when no OpenAI key is configured; a nil *Service
// reports ErrNotSupported from every call.
func NewService(conf *config.Config, logger *slog.Logger) *Service {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	client := openai.NewClient(conf.OpenAI.ApiKey)
	return New(client, conf.OpenAI.TtsModel, conf.OpenAI.Voice, logger)
}

func New(backend Backend, ttsModel, voice string, logger *slog.Logger) *Service {
	return &Service{
		backend:  backend,
		ttsModel: ttsModel,
		voice:    voice,
		log:      logger.With(sl.Module("speech")),
	}
}

// TranscribeBase64 decodes a base64 audio clip and transcribes it. name
// defaults to voice.webm, the format browsers record.
func (s *Service) TranscribeBase64(ctx context.Context, audio, name string, lang entity.Language) (string, error) {
	if s == nil {
		return "", ErrNotSupported
	}
	decoded, err := base64.StdEncoding.DecodeString(audio)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 audio: %w", err)
	}
	if name == "" {
		name = "voice.webm"
	}
	return s.Transcribe(ctx, bytes.NewReader(decoded), name, lang)
}

// Transcribe turns recorded speech into text. The language is a hint for
// the recogniser; name only tells it the container format.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, name string, lang entity.Language) (string, error) {
	if s == nil {
		return "", ErrNotSupported
	}
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: name,
		Reader:   audio,
		Language: string(lang),
		Format:   openai.AudioResponseFormatText,
	}
	resp, err := s.backend.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Synthesize renders text as mp3 audio.
func (s *Service) Synthesize(ctx context.Context, text string, lang entity.Language) ([]byte, error) {
	if s == nil {
		return nil, ErrNotSupported
	}
	resp, err := s.backend.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.ttsModel),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer func(resp openai.RawResponse) {
		_ = resp.Close()
	}(resp)

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech: %w", err)
	}
	s.log.With(
		slog.String("lang", string(lang)),
		slog.Int("bytes", len(audio)),
	).Debug("speech synthesized")
	return audio, nil
}
