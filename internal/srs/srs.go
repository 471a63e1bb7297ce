package srs

import (
	"math"
	"sort"
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// Params holds the tunables of the review scheduler.
type Params struct {
	EaseGain    float64 // ease increase after a correct answer
	EasePenalty float64 // ease decrease after a wrong answer
	MinEase     float64 // lower ease bound, inclusive
	MaxEase     float64 // upper ease bound, inclusive
	RelearnDays float64 // fractional-day delay before a failed card comes back
}

// DefaultParams provides the scheduler settings the app ships with.
func DefaultParams() *Params {
	return &Params{
		EaseGain:    0.1,
		EasePenalty: 0.2,
		MinEase:     1.3,
		MaxEase:     2.8,
		RelearnDays: 0.1, // ~2.4 hours
	}
}

// Review applies one review outcome to a card and returns the updated card.
// The input card is not mutated; the same inputs always yield the same output.
//
// A correct answer raises the ease and grows the interval (0 -> 1 day, then
// interval * ease rounded to whole days). A wrong answer lowers the ease,
// counts a lapse and resets the interval to zero, with the card coming back
// after a short relearn delay.
func (p *Params) Review(card domain.Card, correct bool, now time.Time) domain.Card {
	c := card.Clone()

	if correct {
		c.Ease = clamp(card.Ease+p.EaseGain, p.MinEase, p.MaxEase)
		if card.IntervalDays == 0 {
			c.IntervalDays = 1
		} else {
			c.IntervalDays = math.Round(card.IntervalDays * c.Ease)
		}
		c.Due = now.Add(interval(c.IntervalDays))
	} else {
		// The interval resets to 0 so the next correct answer restarts the
		// 0 -> 1 day progression; only the due date gets the relearn delay.
		c.Ease = clamp(card.Ease-p.EasePenalty, p.MinEase, p.MaxEase)
		c.IntervalDays = 0
		c.Lapses = card.Lapses + 1
		c.Due = now.Add(interval(p.RelearnDays))
	}

	reviewed := now
	c.LastReviewed = &reviewed

	return c
}

// Due returns the cards of one language that are due at or before now,
// earliest due date first.
func Due(cards []domain.Card, lang domain.Language, now time.Time) []domain.Card {
	var due []domain.Card
	for _, c := range cards {
		if c.TargetLang == lang && !c.Due.After(now) {
			due = append(due, c)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].Due.Before(due[j].Due)
	})
	return due
}

// interval converts a possibly fractional day count into a duration.
func interval(days float64) time.Duration {
	return time.Duration(days * float64(24*time.Hour))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
