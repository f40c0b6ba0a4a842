package main

import (
	"Showcase/ai/speech"
	"Showcase/bot"
	"Showcase/entity"
	"Showcase/impl/core"
	"Showcase/internal/catalog"
	"Showcase/internal/config"
	"Showcase/internal/database"
	"Showcase/internal/gallery"
	"Showcase/internal/http-server/api"
	"Showcase/internal/lib/logger"
	"Showcase/internal/lib/sl"
	"Showcase/internal/session"
	"Showcase/internal/ws"
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting showcase", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := core.New(lg)
	handler.SetStoreName(entity.English, conf.Store.NameEn)
	handler.SetStoreName(entity.Gujarati, conf.Store.NameGu)
	handler.SetCatalogLoader(catalog.NewLoader(lg), conf.Catalog.Source, conf.Catalog.Timeout, conf.Catalog.Refresh)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.Ping(pingCtx)
		cancel()
		if err != nil {
			lg.With(sl.Err(err)).Error("mongo unreachable, keeping sessions in memory")
			db = nil
		}
	}
	if db != nil {
		if err = db.EnsureChatTurnIndexes(ctx); err != nil {
			lg.With(sl.Err(err)).Warn("chat turn indexes")
		}
		handler.SetSessionStore(session.NewMongoStore(db))
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	} else {
		handler.SetSessionStore(session.NewMemoryStore(conf.Session.MaxTurns))
	}

	var prober gallery.Prober = gallery.FileProber{Dir: conf.Assets.Dir}
	if conf.Assets.BaseURL != "" {
		prober = gallery.HTTPProber{BaseURL: conf.Assets.BaseURL, Client: &http.Client{Timeout: conf.Assets.ProbeTimeout}}
	}
	resolver := gallery.NewResolver(prober, "/assets/", conf.Assets.ProbeTimeout, lg)
	handler.SetGallery(resolver, conf.Assets.LogoCandidates, conf.Assets.LogoGrace)

	voice := speech.NewService(conf, lg)
	if voice != nil {
		handler.SetSpeech(voice, speech.NewSpeaker(voice))
		lg.With(
			sl.Secret("openai_key", conf.OpenAI.ApiKey),
			slog.String("tts_model", conf.OpenAI.TtsModel),
		).Info("speech service initialized")
	}

	hub := ws.NewHub(lg)
	hub.SetHandler(handler)
	handler.SetBroadcaster(hub)
	go hub.Run(ctx)

	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			tgBot.SetCore(handler)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
			defer tgBot.Stop()
		}
	}

	handler.Init(ctx)

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
