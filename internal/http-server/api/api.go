package api

import (
	"Showcase/internal/config"
	"Showcase/internal/http-server/handlers/chat"
	"Showcase/internal/http-server/handlers/errors"
	"Showcase/internal/http-server/handlers/gallery"
	"Showcase/internal/http-server/handlers/language"
	"Showcase/internal/http-server/handlers/product"
	"Showcase/internal/http-server/handlers/speech"
	"Showcase/internal/http-server/middleware/session"
	"Showcase/internal/http-server/middleware/timeout"
	"Showcase/internal/lib/sl"
	"Showcase/internal/ws"
	"context"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	product.Core
	chat.Core
	language.Core
	speech.Core
	gallery.Core
}

// NewRouter wires the page API, the live chat socket and the static assets.
// hub may be nil when live chat is off.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Group(func(r chi.Router) {
		r.Use(session.New(log, conf.Session.Cookie, conf.Session.MaxAge))

		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Use(timeout.Timeout(30))
			v1.Use(render.SetContentType(render.ContentTypeJSON))

			v1.Get("/product", product.Page(log, handler))
			v1.Route("/chat", func(r chi.Router) {
				r.Get("/greeting", chat.Greeting(log, handler))
				r.Post("/ask", chat.Ask(log, handler))
				r.Post("/voice", chat.Voice(log, handler))
				r.Post("/welcome", chat.Welcome(log, handler))
				r.Get("/transcript", chat.Transcript(log, handler))
			})
			v1.Route("/language", func(r chi.Router) {
				r.Get("/", language.Get(log, handler))
				r.Post("/", language.Set(log, handler))
			})
			v1.Route("/speech", func(r chi.Router) {
				r.Post("/synthesize", speech.Synthesize(log, handler))
				r.Post("/stop", speech.Stop(log, handler))
			})
			v1.Route("/gallery", func(r chi.Router) {
				r.Post("/move", gallery.Move(log, handler))
			})
		})

		if hub != nil {
			r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				ws.ServeWs(hub, log, w, r)
			})
		}
	})

	if conf.Assets.Dir != "" {
		fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(conf.Assets.Dir)))
		router.Get("/assets/*", fs.ServeHTTP)
	}

	return router
}

// New serves the router until ctx is done.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(conf, log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.httpServer.Shutdown(shutdownCtx)
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	err = server.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
