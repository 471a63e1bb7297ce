package domain

import (
	"time"

	"github.com/google/uuid"
)

// Language is a supported target language code.
type Language string

const (
	German  Language = "de"
	Spanish Language = "es"
	French  Language = "fr"
	Italian Language = "it"
)

// Languages lists every supported target language.
var Languages = []Language{German, Spanish, French, Italian}

// Valid reports whether l is one of the supported target languages.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// CardKind distinguishes vocabulary cards from full-sentence cards.
type CardKind string

const (
	KindVocab    CardKind = "vocab"
	KindSentence CardKind = "sentence"
)

// Example is an optional usage example attached to a card.
type Example struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// DefaultEase is the ease assigned to a freshly created card.
const DefaultEase = 2.0

// Card is the reviewable unit: content plus its scheduling state.
// The scheduling fields are only ever changed by the srs package.
type Card struct {
	ID           string     `json:"id"`
	TargetLang   Language   `json:"targetLang"`
	Kind         CardKind   `json:"kind"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Example      *Example   `json:"example,omitempty"`
	Due          time.Time  `json:"due"`
	IntervalDays float64    `json:"intervalDays"`
	Ease         float64    `json:"ease"`
	Lapses       int        `json:"lapses"`
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
}

// NewCard creates a card with fresh scheduling state: due immediately,
// interval zero, default ease, no lapses.
func NewCard(lang Language, kind CardKind, front, back string, example *Example, now time.Time) Card {
	return Card{
		ID:           uuid.NewString(),
		TargetLang:   lang,
		Kind:         kind,
		Front:        front,
		Back:         back,
		Example:      example,
		Due:          now,
		IntervalDays: 0,
		Ease:         DefaultEase,
		Lapses:       0,
	}
}

// Clone returns a deep copy of the card. Pointer fields are copied by value.
func (c Card) Clone() Card {
	out := c
	if c.Example != nil {
		v := *c.Example
		out.Example = &v
	}
	if c.LastReviewed != nil {
		v := *c.LastReviewed
		out.LastReviewed = &v
	}
	return out
}
