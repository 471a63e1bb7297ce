package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "lingu.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadEmpty(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Error("Expected no persisted state in a fresh database")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, time.August, 29, 9, 30, 0, 0, time.UTC)

	app := domain.NewAppData("marcel", "en", domain.French, 15, now)
	app.Cards = append(app.Cards,
		domain.NewCard(domain.French, domain.KindVocab, "le chien", "the dog", nil, now))
	app.DailyStatsByLang = domain.DailyStats{
		domain.French: {"2026-08-29": {Reviewed: 2, Correct: 1, Wrong: 1}},
	}

	if err := db.Save(app, now); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected persisted state after Save")
	}
	if !reflect.DeepEqual(got, app) {
		t.Errorf("Load returned a different value.\n got: %+v\nwant: %+v", got, app)
	}
}

func TestSaveReplaces(t *testing.T) {
	db := openTestDB(t)
	now := time.Date(2026, time.August, 29, 9, 30, 0, 0, time.UTC)

	first := domain.NewAppData("marcel", "en", domain.German, 10, now)
	if err := db.Save(first, now); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := first.Clone()
	second.Profile.XP = 50
	second.Profile.TargetLang = domain.Italian
	if err := db.Save(second, now.Add(time.Hour)); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	got, _, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Profile.XP != 50 || got.Profile.TargetLang != domain.Italian {
		t.Errorf("Expected the second state to replace the first, got %+v", got.Profile)
	}
}
