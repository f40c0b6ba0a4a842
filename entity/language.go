package entity

import "strings"

type Language string

const (
	English  Language = "en"
	Gujarati Language = "gu"
)

// Languages lists the supported languages, default first.
var Languages = []Language{English, Gujarati}

// ParseLanguage maps s to a supported language; anything unknown is English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case Gujarati:
		return Gujarati
	default:
		return English
	}
}

func (l Language) Valid() bool {
	return l == English || l == Gujarati
}

// SpeechTag is the BCP 47 tag handed to speech capture and playback.
func (l Language) SpeechTag() string {
	if l == Gujarati {
		return "gu-IN"
	}
	return "en-IN"
}
