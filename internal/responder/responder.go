package responder

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Showcase/entity"
	"Showcase/internal/lib/sl"

	"golang.org/x/text/unicode/norm"
)

var ErrEmptyReply = errors.New("reply is empty")

var apology = map[entity.Language]string{
	entity.English:  "Sorry, I could not get that information.",
	entity.Gujarati: "માફ કરશો, હું તે માહિતી મેળવવામાં અસમર્થ હતો.",
}

// Apology is returned when a rule fails to produce its reply.
func Apology(lang entity.Language) string {
	if s, ok := apology[lang]; ok {
		return s
	}
	return apology[entity.English]
}

// Answer is the outcome of matching one question.
type Answer struct {
	Intent string `json:"intent"`
	Text   string `json:"text"`
	Failed bool   `json:"failed,omitempty"`
}

// Responder answers questions about one product. The language is chosen per
// call, so a responder never needs rebuilding when the visitor switches.
type Responder struct {
	table   *Table
	product *entity.Product
	log     *slog.Logger
}

func New(table *Table, product *entity.Product, log *slog.Logger) *Responder {
	if table == nil {
		table = DefaultTable()
	}
	return &Responder{
		table:   table,
		product: product,
		log:     log.With(sl.Module("responder")),
	}
}

func (r *Responder) FindAnswer(text string, lang entity.Language) string {
	return r.Match(text, lang).Text
}

// Match evaluates the rules in order and returns the first match's reply.
func (r *Responder) Match(text string, lang entity.Language) Answer {
	if !lang.Valid() {
		lang = entity.English
	}
	q := Query{
		Language: lang,
		Product:  r.product,
		Text:     norm.NFC.String(text),
	}

	rule := r.table.fallback()
	for _, candidate := range r.table.rules {
		if candidate.Pattern.MatchString(q.Text) {
			rule = candidate
			break
		}
	}

	out, err := produce(rule, q)
	if err != nil {
		r.log.With(
			slog.String("intent", rule.Intent),
			slog.String("lang", string(lang)),
			sl.Err(err),
		).Error("reply handler")
		return Answer{Intent: rule.Intent, Text: Apology(lang), Failed: true}
	}
	return Answer{Intent: rule.Intent, Text: out}
}

func produce(rule Rule, q Query) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", fmt.Errorf("reply %s panicked: %v", rule.Intent, rec)
		}
	}()
	out, err = rule.producer(q.Language)(q)
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyReply
	}
	return out, err
}
