package entity

import "time"

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatTurn is one displayed line of the transcript.
type ChatTurn struct {
	SessionID string    `json:"-" bson:"session_id"`
	Product   string    `json:"product" bson:"product"`
	Speaker   Speaker   `json:"speaker" bson:"speaker"`
	Text      string    `json:"text" bson:"text"`
	Intent    string    `json:"intent,omitempty" bson:"intent,omitempty"`
	Language  Language  `json:"lang" bson:"lang"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Exchange is the pair of turns produced by one question.
type Exchange struct {
	User      ChatTurn `json:"user"`
	Assistant ChatTurn `json:"assistant"`
}

// Turns returns the exchange in display order.
func (e Exchange) Turns() []ChatTurn {
	return []ChatTurn{e.User, e.Assistant}
}
