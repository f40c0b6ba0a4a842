package chat

import (
	"Showcase/entity"
	"Showcase/impl/core"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/api/response"
	"Showcase/internal/lib/sl"
	"Showcase/internal/lib/validate"
	"Showcase/internal/locale"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// browsers record voice questions as webm
const pageVoiceName = "voice.webm"

func Voice(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.chat")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		var req entity.HttpUserMsg
		if err = render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validate.Message(err)))
			return
		}
		if req.VoiceMsgBase64 == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("voice_base64 is required"))
			return
		}

		exchange, err := handler.AskVoice(r.Context(), sessionID, req.Product, req.VoiceMsgBase64, pageVoiceName)
		switch {
		case err == nil:
		case errors.Is(err, core.ErrNotSupported):
			render.Status(r, http.StatusNotImplemented)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.RecognitionUnsupported)))
			return
		case errors.Is(err, core.ErrNothingHeard):
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.HeardNothing)))
			return
		case errors.Is(err, core.ErrEmptyCatalog):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.ProductNotFound)))
			return
		default:
			logger.Error("voice question", sl.Err(err))
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.HeardNothing)))
			return
		}
		logger.With(
			slog.String("product", exchange.User.Product),
			slog.String("heard", exchange.User.Text),
		).Debug("voice question answered")

		render.JSON(w, r, response.Ok(exchange))
	}
}
