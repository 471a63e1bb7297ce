// Package backup serializes the whole application state to a transportable
// JSON document and validates documents coming back in.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// Schema tags every exported document so future formats can be told apart.
const Schema = "lingu.backup/v1"

// ErrMalformedBackup is returned when an imported document cannot be parsed
// or is missing a required top-level section. The caller's state is untouched.
var ErrMalformedBackup = errors.New("malformed backup document")

var validate = validator.New()

// document is the wire envelope. The state sections are pointers so that a
// missing section is distinguishable from an empty one.
type document struct {
	Schema           string                `json:"schema"`
	ExportedAt       string                `json:"exportedAt"`
	Cards            *[]domain.Card        `json:"cards" validate:"required"`
	Profile          *domain.Profile       `json:"profile" validate:"required"`
	Achievements     *[]domain.Achievement `json:"achievements" validate:"required"`
	DailyStatsByLang *domain.DailyStats    `json:"dailyStatsByLang" validate:"required"`
}

// Marshal serializes the application state, tagged with the schema id and
// the export date.
func Marshal(app domain.AppData, now time.Time) ([]byte, error) {
	doc := document{
		Schema:           Schema,
		ExportedAt:       now.Format("2006-01-02"),
		Cards:            &app.Cards,
		Profile:          &app.Profile,
		Achievements:     &app.Achievements,
		DailyStatsByLang: &app.DailyStatsByLang,
	}
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return blob, nil
}

// Unmarshal parses and shape-checks a backup document. Any parse failure or
// missing top-level section yields ErrMalformedBackup; partial data is never
// adopted.
func Unmarshal(blob []byte) (domain.AppData, error) {
	var doc document
	if err := json.Unmarshal(blob, &doc); err != nil {
		return domain.AppData{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc.Schema != Schema {
		return domain.AppData{}, fmt.Errorf("%w: unknown schema %q", ErrMalformedBackup, doc.Schema)
	}
	if err := validate.Struct(doc); err != nil {
		return domain.AppData{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	return domain.AppData{
		Cards:            *doc.Cards,
		Profile:          *doc.Profile,
		Achievements:     *doc.Achievements,
		DailyStatsByLang: *doc.DailyStatsByLang,
	}, nil
}

// Filename returns the export file name for the given day,
// e.g. "sprachapp_backup_2026-08-29.json".
func Filename(now time.Time) string {
	return fmt.Sprintf("sprachapp_backup_%s.json", now.Format("2006-01-02"))
}
