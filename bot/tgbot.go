package bot

import (
	"Showcase/entity"
	"Showcase/impl/core"
	"Showcase/internal/lib/sl"
	"Showcase/internal/locale"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	callbackLanguage = "lang:"
	callbackProduct  = "product:"
	maxVoiceBytes    = 10 << 20
	// Telegram voice notes are OGG/Opus
	voiceNoteName = "voice.ogg"
)

type Core interface {
	Ask(ctx context.Context, sessionID, requested, text string) (*entity.Exchange, error)
	AskVoice(ctx context.Context, sessionID, requested, audio, name string) (*entity.Exchange, error)
	Greeting(ctx context.Context, sessionID, requested string) (string, error)
	SetLanguage(ctx context.Context, sessionID string, lang entity.Language) (entity.Language, error)
	Page(ctx context.Context, sessionID, requested string) (*entity.PageView, error)
	ProductKeys() []string
	Text(ctx context.Context, sessionID, key string) string
}

// Sender is the part of the Telegram API the bot replies through.
type Sender interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
}

// TgBot answers product questions in Telegram chats. Every chat is its own
// session, and remembers which product it is asking about.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	sender      Sender
	botUsername string
	core        Core
	client      *http.Client
	mutex       sync.Mutex
	products    map[int64]string
	updater     *ext.Updater
}

func NewTgBot(botName, apiKey string, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
		client:      &http.Client{Timeout: 30 * time.Second},
		products:    make(map[int64]string),
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api
	tgBot.sender = api

	return tgBot, nil
}

func (t *TgBot) SetCore(c Core) {
	t.core = c
}

// Start polls for updates until Stop is called.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	t.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", t.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("lang", t.handleLanguage))
	dispatcher.AddHandler(handlers.NewCommand("products", t.handleProducts))
	dispatcher.AddHandler(handlers.NewCallback(isBotCallback, t.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Voice, t.handleVoice))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, t.handleMessage))

	err := t.updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("telegram bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in, and avoid bot stopping.
	t.updater.Idle()
	return nil
}

func (t *TgBot) Stop() {
	if t.updater != nil {
		_ = t.updater.Stop()
	}
}

func sessionOf(chatId int64) string {
	return "tg:" + strconv.FormatInt(chatId, 10)
}

func isBotCallback(cq *tgbotapi.CallbackQuery) bool {
	return strings.HasPrefix(cq.Data, callbackLanguage) || strings.HasPrefix(cq.Data, callbackProduct)
}

func (t *TgBot) product(chatId int64) string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.products[chatId]
}

func (t *TgBot) setProduct(chatId int64, key string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.products[chatId] = key
}

// ExtractStartParam returns the deep link parameter of a /start command.
func ExtractStartParam(messageText string) string {
	messageText = strings.TrimSpace(messageText)
	if !strings.HasPrefix(messageText, "/start") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(messageText, "/start"))
}

func (t *TgBot) handleStart(_ *tgbotapi.Bot, ctx *ext.Context) error {
	return t.start(context.Background(), ctx.EffectiveChat.Id, ExtractStartParam(ctx.EffectiveMessage.Text))
}

func (t *TgBot) handleLanguage(_ *tgbotapi.Bot, ctx *ext.Context) error {
	arg := strings.TrimSpace(strings.TrimPrefix(ctx.EffectiveMessage.Text, "/lang"))
	return t.language(context.Background(), ctx.EffectiveChat.Id, arg)
}

func (t *TgBot) handleProducts(_ *tgbotapi.Bot, ctx *ext.Context) error {
	return t.listProducts(ctx.EffectiveChat.Id)
}

func (t *TgBot) handleCallback(b *tgbotapi.Bot, ctx *ext.Context) error {
	cq := ctx.CallbackQuery
	_, _ = cq.Answer(b, nil)
	chatId := ctx.EffectiveChat.Id

	switch {
	case strings.HasPrefix(cq.Data, callbackLanguage):
		return t.language(context.Background(), chatId, strings.TrimPrefix(cq.Data, callbackLanguage))
	case strings.HasPrefix(cq.Data, callbackProduct):
		return t.start(context.Background(), chatId, strings.TrimPrefix(cq.Data, callbackProduct))
	}
	return nil
}

func (t *TgBot) handleMessage(_ *tgbotapi.Bot, ctx *ext.Context) error {
	text := ctx.EffectiveMessage.Text
	if strings.HasPrefix(text, "/") {
		return nil
	}
	return t.ask(context.Background(), ctx.EffectiveChat.Id, text)
}

func (t *TgBot) handleVoice(b *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveChat.Id
	voice := ctx.EffectiveMessage.Voice
	if voice == nil || t.core == nil {
		return nil
	}

	audio, err := t.download(b, voice.FileId)
	if err != nil {
		t.log.With(slog.Int64("id", chatId)).Error("download voice", sl.Err(err))
		t.plainResponse(chatId, t.core.Text(context.Background(), sessionOf(chatId), locale.HeardNothing))
		return nil
	}

	return t.askVoice(context.Background(), chatId, audio)
}

// askVoice answers a downloaded voice note, telling the user why when no
// answer comes back.
func (t *TgBot) askVoice(ctx context.Context, chatId int64, audio []byte) error {
	sid := sessionOf(chatId)
	exchange, err := t.core.AskVoice(ctx, sid, t.product(chatId), base64.StdEncoding.EncodeToString(audio), voiceNoteName)
	if err != nil {
		key := locale.HeardNothing
		switch {
		case errors.Is(err, core.ErrNotSupported):
			key = locale.RecognitionUnsupported
		case errors.Is(err, core.ErrNothingHeard):
			t.log.With(slog.Int64("id", chatId)).Debug("voice question", sl.Err(err))
		case errors.Is(err, core.ErrEmptyCatalog):
			key = locale.ProductNotFound
		default:
			t.log.With(slog.Int64("id", chatId)).Error("voice question", sl.Err(err))
		}
		t.plainResponse(chatId, t.core.Text(ctx, sid, key))
		return nil
	}
	t.setProduct(chatId, exchange.Assistant.Product)
	t.plainResponse(chatId, "🎙 "+exchange.User.Text+"\n\n"+exchange.Assistant.Text)
	return nil
}

func (t *TgBot) download(b *tgbotapi.Bot, fileId string) ([]byte, error) {
	file, err := b.GetFile(fileId, nil)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.Token, file.FilePath)
	resp, err := t.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}

// start selects the product for the chat and greets.
func (t *TgBot) start(ctx context.Context, chatId int64, requested string) error {
	if t.core == nil {
		return nil
	}
	sid := sessionOf(chatId)

	view, err := t.core.Page(ctx, sid, requested)
	if err != nil {
		return err
	}
	if !view.Found {
		t.plainResponse(chatId, view.Title)
		return nil
	}
	t.setProduct(chatId, view.Key)

	greeting, err := t.core.Greeting(ctx, sid, view.Key)
	if err != nil {
		return err
	}
	header := view.Title
	if view.SizeText != "" {
		header += "\n" + view.SizeText
	}
	header += " • " + view.PriceLabel
	t.plainResponse(chatId, header+"\n\n"+greeting)
	return nil
}

func (t *TgBot) language(ctx context.Context, chatId int64, arg string) error {
	if t.core == nil {
		return nil
	}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		_, err := t.sender.SendMessage(chatId, "Language / ભાષા", &tgbotapi.SendMessageOpts{
			ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{{
					{Text: "English", CallbackData: callbackLanguage + string(entity.English)},
					{Text: "ગુજરાતી", CallbackData: callbackLanguage + string(entity.Gujarati)},
				}},
			},
		})
		return err
	}

	sid := sessionOf(chatId)
	if _, err := t.core.SetLanguage(ctx, sid, entity.Language(arg)); err != nil {
		return err
	}
	greeting, err := t.core.Greeting(ctx, sid, t.product(chatId))
	if err != nil {
		return err
	}
	t.plainResponse(chatId, greeting)
	return nil
}

func (t *TgBot) listProducts(chatId int64) error {
	if t.core == nil {
		return nil
	}
	keys := t.core.ProductKeys()
	if len(keys) == 0 {
		t.plainResponse(chatId, t.core.Text(context.Background(), sessionOf(chatId), locale.ProductNotFound))
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{{Text: key, CallbackData: callbackProduct + key}})
	}
	_, err := t.sender.SendMessage(chatId, "Products", &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	return err
}

func (t *TgBot) ask(ctx context.Context, chatId int64, text string) error {
	if t.core == nil {
		return nil
	}
	exchange, err := t.core.Ask(ctx, sessionOf(chatId), t.product(chatId), text)
	if err != nil {
		t.log.With(slog.Int64("id", chatId)).Warn("answer question", sl.Err(err))
		t.plainResponse(chatId, t.core.Text(ctx, sessionOf(chatId), locale.ProductNotFound))
		return nil
	}
	t.setProduct(chatId, exchange.Assistant.Product)
	t.plainResponse(chatId, exchange.Assistant.Text)
	return nil
}

func (t *TgBot) plainResponse(chatId int64, text string) {

	sanitized := sanitize(text)

	if sanitized != "" {
		_, err := t.sender.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
			ParseMode: "MarkdownV2",
		})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Warn("sending message", sl.Err(err))
			_, err = t.sender.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
			if err != nil {
				t.log.With(
					slog.Int64("id", chatId),
				).Error("sending safe message", sl.Err(err))
			}
		}
	} else {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
	}
}

// sanitize escapes the characters MarkdownV2 reserves.
func sanitize(input string) string {
	const reservedChars = "\\`_*{}#+-=.!|()[]<>~"

	var b strings.Builder
	b.Grow(len(input))
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
