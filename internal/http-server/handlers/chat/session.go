package chat

import (
	"Showcase/entity"
	"Showcase/impl/core"
	"Showcase/internal/http-server/handlers/product"
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

type greetingResponse struct {
	Text string `json:"text"`
}

func Welcome(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		var req entity.ProductRequest
		if err = render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validate.Message(err)))
			return
		}

		welcome, err := handler.Welcome(r.Context(), sessionID, req.Product)
		if err != nil {
			logger.Error("welcome", sl.Err(err))
			if errors.Is(err, core.ErrEmptyCatalog) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(handler.Text(r.Context(), sessionID, locale.ProductNotFound)))
				return
			}
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Welcome not available"))
			return
		}

		render.JSON(w, r, response.Ok(welcome))
	}
}

func Greeting(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		text, err := handler.Greeting(r.Context(), sessionID, product.RequestedKey(r))
		if err != nil {
			logger.Error("greeting", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Greeting not available"))
			return
		}

		render.JSON(w, r, response.Ok(greetingResponse{Text: text}))
	}
}

func Transcript(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		turns, err := handler.Transcript(r.Context(), sessionID, product.RequestedKey(r))
		if err != nil {
			logger.Error("transcript", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Transcript not available"))
			return
		}

		render.JSON(w, r, response.Ok(turns))
	}
}
