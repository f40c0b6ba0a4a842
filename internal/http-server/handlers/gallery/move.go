package gallery

import (
	"Showcase/entity"
	"Showcase/impl/core"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/api/response"
	"Showcase/internal/lib/sl"
	"Showcase/internal/lib/validate"
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

type Core interface {
	MoveCarousel(ctx context.Context, sessionID, requested, action string, index int, dx float64) (int, error)
}

type moveResponse struct {
	Index int `json:"index"`
}

func Move(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.gallery"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		var req entity.CarouselMove
		if err = render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validate.Message(err)))
			return
		}

		idx, err := handler.MoveCarousel(r.Context(), sessionID, req.Product, req.Action, req.Index, req.Dx)
		if err != nil {
			logger.Error("move carousel", sl.Err(err))
			if errors.Is(err, core.ErrEmptyCatalog) {
				render.Status(r, http.StatusNotFound)
			} else {
				render.Status(r, http.StatusBadRequest)
			}
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		render.JSON(w, r, response.Ok(moveResponse{Index: idx}))
	}
}
