package product

import (
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/api/response"
	"Showcase/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
)

// RequestedKey reads the product key from the query; id is the legacy name.
func RequestedKey(r *http.Request) string {
	q := r.URL.Query()
	if key := q.Get("product"); key != "" {
		return key
	}
	return q.Get("id")
}

func Page(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

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

		requested := RequestedKey(r)
		logger = logger.With(slog.String("requested", requested))

		view, err := handler.Page(r.Context(), sessionID, requested)
		if err != nil {
			logger.Error("build page", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Page not available"))
			return
		}
		logger.With(
			slog.String("product", view.Key),
			slog.Bool("found", view.Found),
		).Debug("page built")

		render.JSON(w, r, response.Ok(view))
	}
}
