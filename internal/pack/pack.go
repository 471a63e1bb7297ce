// Package pack turns language-pack content into deck cards.
package pack

import (
	"strings"
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// Entry is one vocabulary or sentence pair from a pack source.
type Entry struct {
	Source  string `validate:"required"`
	Target  string `validate:"required"`
	Example *domain.Example
}

// Pack is the complete content of one language pack.
type Pack struct {
	Lang      domain.Language
	Vocab     []Entry
	Sentences []Entry
}

// Empty reports whether the pack carries no entries at all.
func (p Pack) Empty() bool {
	return len(p.Vocab) == 0 && len(p.Sentences) == 0
}

// Merge builds cards for every entry of the pack and returns only those whose
// (language, front) pair is not already present in the deck. The existing
// deck is never modified; calling Merge twice with the same pack yields an
// empty delta the second time.
func Merge(existing []domain.Card, p Pack, now time.Time) []domain.Card {
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		if c.TargetLang == p.Lang {
			seen[dedupKey(c.Front)] = true
		}
	}

	var delta []domain.Card
	add := func(kind domain.CardKind, entries []Entry) {
		for _, e := range entries {
			key := dedupKey(e.Source)
			if seen[key] {
				continue
			}
			seen[key] = true
			delta = append(delta, domain.NewCard(p.Lang, kind, e.Source, e.Target, e.Example, now))
		}
	}
	add(domain.KindVocab, p.Vocab)
	add(domain.KindSentence, p.Sentences)

	return delta
}

// dedupKey normalizes front text so that duplicates differing only in case,
// surrounding whitespace or line endings collapse to one deck entry.
func dedupKey(front string) string {
	k := strings.ToLower(front)
	k = strings.TrimSpace(k)
	k = strings.ReplaceAll(k, "\r\n", "\n")
	return k
}
