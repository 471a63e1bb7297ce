package domain

import (
	"testing"
	"time"
)

func TestNewCardDefaults(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	card := NewCard(German, KindVocab, "das Haus", "the house", nil, now)

	if card.ID == "" {
		t.Error("Expected a generated card id")
	}
	if !card.Due.Equal(now) {
		t.Errorf("Expected due=now, got %v", card.Due)
	}
	if card.IntervalDays != 0 || card.Ease != DefaultEase || card.Lapses != 0 {
		t.Errorf("Expected fresh scheduling state, got %+v", card)
	}
	if card.LastReviewed != nil {
		t.Errorf("Expected no lastReviewed on a fresh card, got %v", card.LastReviewed)
	}

	other := NewCard(German, KindVocab, "das Haus", "the house", nil, now)
	if other.ID == card.ID {
		t.Error("Expected distinct ids for distinct cards")
	}
}

func TestLanguageValid(t *testing.T) {
	for _, lang := range Languages {
		if !lang.Valid() {
			t.Errorf("Expected %q to be valid", lang)
		}
	}
	for _, lang := range []Language{"", "en", "ru", "DE"} {
		if lang.Valid() {
			t.Errorf("Expected %q to be invalid", lang)
		}
	}
}

func TestNewAppDataSeedsWelcome(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	app := NewAppData("marcel", "en", French, 15, now)

	if len(app.Achievements) != 1 || app.Achievements[0].ID != "welcome" {
		t.Fatalf("Expected the welcome achievement, got %+v", app.Achievements)
	}
	if app.Achievements[0].UnlockedAt == nil || !app.Achievements[0].UnlockedAt.Equal(now) {
		t.Errorf("Expected welcome unlocked at creation, got %+v", app.Achievements[0])
	}
	if app.Profile.Level != LevelBeginner || app.Profile.XP != 0 || app.Profile.Streak != 0 {
		t.Errorf("Unexpected initial profile: %+v", app.Profile)
	}
	if app.Cards == nil || app.DailyStatsByLang == nil {
		t.Error("Expected initialized collections")
	}
}

func TestAppDataClone(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	app := NewAppData("marcel", "en", German, 20, now)
	app.Cards = append(app.Cards, NewCard(German, KindVocab, "gehen", "to go", &Example{
		Source: "Ich gehe.",
		Target: "I go.",
	}, now))
	app.DailyStatsByLang = DailyStats{German: {"2026-08-29": {Reviewed: 1}}}

	cp := app.Clone()
	cp.Cards[0].Example.Source = "changed"
	cp.Cards[0].Front = "changed"
	cp.DailyStatsByLang[German]["2026-08-29"] = DailyStat{Reviewed: 99}
	*cp.Achievements[0].UnlockedAt = now.Add(time.Hour)

	if app.Cards[0].Example.Source != "Ich gehe." || app.Cards[0].Front != "gehen" {
		t.Errorf("Clone shares card data with the original: %+v", app.Cards[0])
	}
	if app.DailyStatsByLang[German]["2026-08-29"].Reviewed != 1 {
		t.Errorf("Clone shares stats with the original: %+v", app.DailyStatsByLang)
	}
	if !app.Achievements[0].UnlockedAt.Equal(now) {
		t.Errorf("Clone shares achievement timestamps with the original")
	}
}
