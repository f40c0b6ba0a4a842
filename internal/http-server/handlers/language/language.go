package language

import (
	"Showcase/entity"
	"Showcase/internal/http-server/middleware/session"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/api/response"
	"Showcase/internal/lib/sl"
	"Showcase/internal/lib/validate"
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"time"
)

// CookieName keeps the chosen language across sessions.
const CookieName = session.LanguageCookie

type Core interface {
	Language(ctx context.Context, sessionID string) (entity.Language, error)
	SetLanguage(ctx context.Context, sessionID string, lang entity.Language) (entity.Language, error)
	Languages() []entity.Language
}

type languageResponse struct {
	Lang      entity.Language   `json:"lang"`
	SpeechTag string            `json:"speech_tag"`
	Available []entity.Language `json:"available"`
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.language"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		lang, err := handler.Language(r.Context(), sessionID)
		if err != nil {
			logger.Error("get language", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Language not available"))
			return
		}

		render.JSON(w, r, response.Ok(languageResponse{
			Lang:      lang,
			SpeechTag: lang.SpeechTag(),
			Available: handler.Languages(),
		}))
	}
}

func Set(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.language"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sessionID, err := cont.GetSessionID(r.Context())
		if err != nil {
			logger.Error("get session", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}

		var req entity.LanguageRequest
		if err = render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(validate.Message(err)))
			return
		}

		lang, err := handler.SetLanguage(r.Context(), sessionID, entity.Language(req.Lang))
		if err != nil {
			logger.Error("set language", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Language not saved"))
			return
		}
		logger.Debug("language set", slog.String("lang", string(lang)))

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    string(lang),
			Path:     "/",
			Expires:  time.Now().AddDate(1, 0, 0),
			SameSite: http.SameSiteLaxMode,
		})
		render.JSON(w, r, response.Ok(languageResponse{
			Lang:      lang,
			SpeechTag: lang.SpeechTag(),
			Available: handler.Languages(),
		}))
	}
}
