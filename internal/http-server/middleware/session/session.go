package session

import (
	"Showcase/entity"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
	"time"
)

// LanguageCookie holds the visitor's last language choice. It outlives the
// session cookie and seeds the language of a session that has none.
const LanguageCookie = "ktpl_lang"

// New identifies the visitor by a session cookie, issuing one when missing or
// malformed, and logs every request.
func New(log *slog.Logger, cookieName string, maxAge time.Duration) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.session")
	log.With(mod).Info("session middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				if parsed, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = parsed.String()
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(ww, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger = logger.With(slog.Bool("new_session", true))
			}
			logger = logger.With(sl.Secret("session", sessionID))

			ctx := cont.PutSessionID(r.Context(), sessionID)
			if cookie, err := r.Cookie(LanguageCookie); err == nil {
				if lang := entity.Language(cookie.Value); lang.Valid() {
					ctx = cont.PutLanguage(ctx, lang)
				}
			}

			ww.Header().Set("X-Request-ID", id)
			next.ServeHTTP(ww, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
