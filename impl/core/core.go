package core

import (
	"Showcase/entity"
	"Showcase/internal/catalog"
	"Showcase/internal/gallery"
	"Showcase/internal/lib/api/cont"
	"Showcase/internal/lib/sl"
	"Showcase/internal/locale"
	"Showcase/internal/responder"
	"Showcase/internal/session"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var ErrEmptyCatalog = errors.New("catalog is empty")

type CatalogLoader interface {
	Load(ctx context.Context, source string) (*catalog.Catalog, error)
}

type SessionStore interface {
	Load(ctx context.Context, id string) (*entity.Session, error)
	SetLanguage(ctx context.Context, id string, lang entity.Language) error
	MarkWelcomed(ctx context.Context, id, productKey string) (bool, error)
	SetCarousel(ctx context.Context, id, productKey string, index int) error
	AppendTurns(ctx context.Context, turns ...entity.ChatTurn) error
	Transcript(ctx context.Context, sessionID, product string) ([]entity.ChatTurn, error)
}

type Gallery interface {
	ResolveAll(ctx context.Context, names []string) []gallery.Image
	ResolveLogo(ctx context.Context, candidates []string, grace time.Duration) (string, bool)
}

type Transcriber interface {
	TranscribeBase64(ctx context.Context, audio, name string, lang entity.Language) (string, error)
}

type Speaker interface {
	Speak(ctx context.Context, sessionID, text string, lang entity.Language) ([]byte, error)
	Stop(sessionID string)
}

// Broadcaster mirrors chat activity to a session's live connections.
type Broadcaster interface {
	PublishTurns(sessionID string, turns ...entity.ChatTurn)
	PublishLanguage(sessionID string, lang entity.Language)
}

type Core struct {
	mutex      sync.RWMutex
	catalog    *catalog.Catalog
	responders map[string]*responder.Responder
	table      *responder.Table

	loader        CatalogLoader
	source        string
	loadTimeout   time.Duration
	refreshPeriod time.Duration

	sessions  SessionStore
	gallery   Gallery
	logo      []string
	logoGrace time.Duration
	stt       Transcriber
	speaker   Speaker
	hub       Broadcaster
	texts     *locale.Bundle
	stores    map[entity.Language]string
	log       *slog.Logger
}

func New(log *slog.Logger) *Core {
	c := &Core{
		table:      responder.DefaultTable(),
		responders: make(map[string]*responder.Responder),
		sessions:   session.NewMemoryStore(100),
		texts:      locale.MustLoad(),
		stores:     make(map[entity.Language]string),
		log:        log.With(sl.Module("core")),
	}
	c.SetCatalog(catalog.Empty())
	return c
}

// SetCatalog swaps the product catalog and rebuilds the per-product
// responders.
func (c *Core) SetCatalog(cat *catalog.Catalog) {
	responders := make(map[string]*responder.Responder, cat.Len())
	for _, key := range cat.Keys() {
		p, _ := cat.Get(key)
		responders[key] = responder.New(c.table, p, c.log)
	}

	c.mutex.Lock()
	c.catalog = cat
	c.responders = responders
	c.mutex.Unlock()
}

func (c *Core) SetResponderTable(table *responder.Table) {
	c.table = table
	c.mutex.RLock()
	cat := c.catalog
	c.mutex.RUnlock()
	c.SetCatalog(cat)
}

func (c *Core) SetCatalogLoader(loader CatalogLoader, source string, timeout, refresh time.Duration) {
	c.loader = loader
	c.source = source
	c.loadTimeout = timeout
	c.refreshPeriod = refresh
}

func (c *Core) SetSessionStore(store SessionStore) {
	c.sessions = store
}

func (c *Core) SetGallery(g Gallery, logoCandidates []string, logoGrace time.Duration) {
	c.gallery = g
	c.logo = logoCandidates
	c.logoGrace = logoGrace
}

func (c *Core) SetSpeech(stt Transcriber, speaker Speaker) {
	c.stt = stt
	c.speaker = speaker
}

func (c *Core) SetBroadcaster(hub Broadcaster) {
	c.hub = hub
}

func (c *Core) SetStoreName(lang entity.Language, name string) {
	c.stores[lang] = name
}

// LoadCatalog fetches the catalog source. On failure the current catalog is
// kept; at startup that is the empty one.
func (c *Core) LoadCatalog(ctx context.Context) error {
	if c.loader == nil {
		return nil
	}
	if c.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		defer cancel()
	}
	cat, err := c.loader.Load(ctx, c.source)
	if err != nil {
		c.log.With(
			slog.String("source", c.source),
			sl.Err(err),
		).Error("load catalog")
		return err
	}
	c.SetCatalog(cat)
	c.log.With(
		slog.Int("products", cat.Len()),
	).Info("catalog loaded")
	return nil
}

// Init loads the catalog and, when a refresh period is configured, keeps
// reloading it until ctx is done.
func (c *Core) Init(ctx context.Context) {
	_ = c.LoadCatalog(ctx)
	if c.refreshPeriod <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(c.refreshPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = c.LoadCatalog(ctx)
			}
		}
	}()
}

// product resolves requested against the current catalog.
func (c *Core) product(requested string) (*entity.Product, string, *responder.Responder) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p, key := c.catalog.Resolve(requested)
	if p == nil {
		return nil, "", nil
	}
	return p, key, c.responders[key]
}

// session loads the visitor's state. A language carried by the request
// applies while the session has not chosen one.
func (c *Core) session(ctx context.Context, sessionID string) (*entity.Session, error) {
	return session.LoadOrCreate(ctx, c.sessions, sessionID, cont.GetLanguage(ctx))
}

func (c *Core) storeName(lang entity.Language) string {
	if name, ok := c.stores[lang]; ok && name != "" {
		return name
	}
	if name, ok := c.stores[entity.English]; ok && name != "" {
		return name
	}
	return c.texts.T(lang, locale.DefaultStore)
}

func (c *Core) title(p *entity.Product, lang entity.Language) string {
	if p.Title != "" {
		return p.Title
	}
	return c.texts.T(lang, locale.UnnamedProduct)
}

// ProductKeys lists the catalog keys in source order.
func (c *Core) ProductKeys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.catalog.Keys()
}
