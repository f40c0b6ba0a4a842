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

func Ask(log *slog.Logger, handler Core) http.HandlerFunc {
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

		logger = logger.With(
			slog.String("product", req.Product),
			slog.String("message", req.Message),
		)

		exchange, err := handler.Ask(r.Context(), sessionID, req.Product, req.Message)
		if err != nil {
			logger.Error("answer question", sl.Err(err))
			if errors.Is(err, core.ErrEmptyCatalog) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.ProductNotFound)))
				return
			}
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Answer not available"))
			return
		}
		logger.Debug("question answered", slog.String("intent", exchange.Assistant.Intent))

		render.JSON(w, r, response.Ok(exchange))
	}
}
