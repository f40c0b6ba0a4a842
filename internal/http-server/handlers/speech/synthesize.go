package speech

import (
	tts "Showcase/ai/speech"
	"Showcase/entity"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/api/response"
	"Showcase/internal/lib/sl"
	"Showcase/internal/lib/validate"
	"Showcase/internal/locale"
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

type Core interface {
	Speak(ctx context.Context, sessionID, text string) ([]byte, error)
	StopSpeaking(sessionID string)
	Text(ctx context.Context, sessionID, key string) string
}

// Synthesize answers with mp3 audio of the posted text.
func Synthesize(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.speech"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		var req entity.SpeechRequest
		if err = render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validate.Message(err)))
			return
		}

		audio, err := handler.Speak(r.Context(), sessionID, req.Text)
		switch {
		case err == nil:
		case errors.Is(err, tts.ErrNotSupported):
			render.Status(r, http.StatusNotImplemented)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.SpeechUnsupported)))
			return
		case errors.Is(err, tts.ErrSuperseded):
			logger.Debug("speech superseded")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("Superseded by a newer utterance"))
			return
		default:
			logger.Error("synthesize speech", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.SpeechUnsupported)))
			return
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(audio)
	}
}
