// Package web serves the review UI. All state mutations flow through the
// core packages (srs, ledger, pack, backup) and are persisted after every
// change; handlers render HTMX partials the way the rest of the UI expects.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/backup"
	"github.com/Marcel-2025/Lingu-V.2/internal/config"
	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
	"github.com/Marcel-2025/Lingu-V.2/internal/ledger"
	"github.com/Marcel-2025/Lingu-V.2/internal/pack"
	"github.com/Marcel-2025/Lingu-V.2/internal/packsource"
	"github.com/Marcel-2025/Lingu-V.2/internal/srs"
	"github.com/Marcel-2025/Lingu-V.2/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// maxIdleGap caps how much wall time between two reviews counts as study
// time, so a left-open tab doesn't inflate the minutes stat.
const maxIdleGap = 5 * time.Minute

// Server holds the dependencies for the HTTP server.
type Server struct {
	mu        sync.Mutex
	db        *storage.DB
	app       domain.AppData
	cfg       *config.Config
	params    *srs.Params
	router    *http.ServeMux
	templates *template.Template

	lastReview   time.Time
	secondsCarry int

	now func() time.Time
}

// NewServer creates and configures a new server around the given state.
func NewServer(db *storage.DB, app domain.AppData, cfg *config.Config) *Server {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:        db,
		app:       app,
		cfg:       cfg,
		params:    srs.DefaultParams(),
		router:    http.NewServeMux(),
		templates: tpl,
		now:       time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("/static/", http.StripPrefix("/static/", fileServer))
	s.router.Handle("/", fileServer)

	s.router.HandleFunc("/deck", s.handleGetDeck())
	s.router.HandleFunc("/review/next", s.handleGetNextReview())
	s.router.HandleFunc("/review/answer/", s.handleShowAnswer())
	s.router.HandleFunc("/review/", s.handlePostReview())

	s.router.HandleFunc("/stats", s.handleGetStats())
	s.router.HandleFunc("/lang", s.handlePostLanguage())

	s.router.HandleFunc("/backup/export", s.handleExport())
	s.router.HandleFunc("/backup/import", s.handleImport())
	s.router.HandleFunc("/sync", s.handlePostSync())
}

// deckView is the data behind the deck summary partial.
type deckView struct {
	Profile       domain.Profile
	DueCount      int
	HasDueCards   bool
	ReviewedToday int
	Languages     []domain.Language
}

func (s *Server) deckView() deckView {
	now := s.now()
	due := srs.Due(s.app.Cards, s.app.Profile.TargetLang, now)
	today := s.app.DailyStatsByLang[s.app.Profile.TargetLang][ledger.DayKey(now)]
	return deckView{
		Profile:       s.app.Profile,
		DueCount:      len(due),
		HasDueCards:   len(due) > 0,
		ReviewedToday: today.Reviewed,
		Languages:     domain.Languages,
	}
}

func (s *Server) handleGetDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		view := s.deckView()
		s.mu.Unlock()
		s.templates.ExecuteTemplate(w, "deck", view)
	}
}

func (s *Server) handleGetNextReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.renderNextReview(w)
	}
}

// renderNextReview writes the front of the next due card, or the deck
// summary when nothing is due. Callers must hold s.mu.
func (s *Server) renderNextReview(w http.ResponseWriter) {
	due := srs.Due(s.app.Cards, s.app.Profile.TargetLang, s.now())
	if len(due) == 0 {
		s.templates.ExecuteTemplate(w, "deck", s.deckView())
		return
	}
	s.templates.ExecuteTemplate(w, "card_front", due[0])
}

func (s *Server) handleShowAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/review/answer/")

		s.mu.Lock()
		card, ok := s.findCard(id)
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.templates.ExecuteTemplate(w, "card_back", card)
	}
}

func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/review/")
		correct := r.PostFormValue("correct") == "true"

		s.mu.Lock()
		defer s.mu.Unlock()

		idx, ok := s.findCardIndex(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		now := s.now()
		card := s.app.Cards[idx]
		s.app.Cards[idx] = s.params.Review(card, correct, now)

		dayKey := ledger.DayKey(now)
		s.app.DailyStatsByLang, s.app.Profile = ledger.RecordReview(
			s.app.DailyStatsByLang, s.app.Profile, card.TargetLang, dayKey, correct)
		s.trackMinutes(card.TargetLang, dayKey, now)

		s.persist(now)
		s.renderNextReview(w)
	}
}

// trackMinutes accumulates study time from the gaps between reviews.
// Callers must hold s.mu.
func (s *Server) trackMinutes(lang domain.Language, dayKey string, now time.Time) {
	if !s.lastReview.IsZero() {
		gap := now.Sub(s.lastReview)
		if gap > maxIdleGap {
			gap = maxIdleGap
		}
		if gap > 0 {
			s.secondsCarry += int(gap.Seconds())
		}
	}
	s.lastReview = now

	if minutes := s.secondsCarry / 60; minutes > 0 {
		s.secondsCarry %= 60
		s.app.DailyStatsByLang = ledger.AddMinutes(s.app.DailyStatsByLang, lang, dayKey, minutes)
	}
}

// resetStudyClock drops the review-gap tracking so that time spent before an
// import or a language switch is not credited afterwards. Callers must hold
// s.mu.
func (s *Server) resetStudyClock() {
	s.lastReview = time.Time{}
	s.secondsCarry = 0
}

// statsView is the data behind the stats partial.
type statsView struct {
	Lang domain.Language
	Days []dayRow
}

type dayRow struct {
	Day  string
	Stat domain.DailyStat
}

func (s *Server) handleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		lang := s.app.Profile.TargetLang
		view := statsView{Lang: lang}
		for day, stat := range s.app.DailyStatsByLang[lang] {
			view.Days = append(view.Days, dayRow{Day: day, Stat: stat})
		}
		s.mu.Unlock()

		// Newest day first; keys sort lexicographically as dates.
		sort.Slice(view.Days, func(i, j int) bool {
			return view.Days[i].Day > view.Days[j].Day
		})

		s.templates.ExecuteTemplate(w, "stats", view)
	}
}

func (s *Server) handlePostLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		lang := domain.Language(r.PostFormValue("lang"))
		if !lang.Valid() {
			http.Error(w, "Unsupported language", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.app.Profile.TargetLang = lang
		s.resetStudyClock()
		s.persist(s.now())
		view := s.deckView()
		s.mu.Unlock()

		s.templates.ExecuteTemplate(w, "deck", view)
	}
}

func (s *Server) handleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := s.now()

		s.mu.Lock()
		blob, err := backup.Marshal(s.app, now)
		s.mu.Unlock()
		if err != nil {
			slog.Error("Failed to marshal backup", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", backup.Filename(now)))
		w.Write(blob)
	}
}

func (s *Server) handleImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, _, err := r.FormFile("backup")
		if err != nil {
			http.Error(w, "No backup file supplied", http.StatusBadRequest)
			return
		}
		defer file.Close()

		blob, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Failed to read backup file", http.StatusBadRequest)
			return
		}

		restored, err := backup.Unmarshal(blob)
		if err != nil {
			// Existing state is untouched; the user can retry with another file.
			slog.Warn("Rejected backup import", "error", err)
			s.templates.ExecuteTemplate(w, "import_error", err.Error())
			return
		}

		s.mu.Lock()
		s.app = restored
		s.resetStudyClock()
		s.persist(s.now())
		view := s.deckView()
		s.mu.Unlock()

		s.templates.ExecuteTemplate(w, "deck", view)
	}
}

func (s *Server) handlePostSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		now := s.now()
		var added int
		for _, source := range s.cfg.Sources {
			packs, err := packsource.Fetch(r.Context(), source, s.cfg.Repos, nil)
			if err != nil {
				slog.Error("Failed to fetch pack source", "source", source, "error", err)
				continue
			}
			s.mu.Lock()
			for _, p := range packs {
				delta := pack.Merge(s.app.Cards, p, now)
				s.app.Cards = append(s.app.Cards, delta...)
				added += len(delta)
			}
			s.persist(now)
			s.mu.Unlock()
		}

		slog.Info("Pack sync complete", "new_cards", added)
		s.templates.ExecuteTemplate(w, "sync_success", added)

		s.mu.Lock()
		view := s.deckView()
		s.mu.Unlock()
		s.templates.ExecuteTemplate(w, "deck", view)
	}
}

// persist writes the current state through to storage. Callers must hold s.mu.
func (s *Server) persist(now time.Time) {
	if err := s.db.Save(s.app, now); err != nil {
		slog.Error("Failed to persist app state", "error", err)
	}
}

func (s *Server) findCard(id string) (domain.Card, bool) {
	idx, ok := s.findCardIndex(id)
	if !ok {
		return domain.Card{}, false
	}
	return s.app.Cards[idx], true
}

func (s *Server) findCardIndex(id string) (int, bool) {
	for i, c := range s.app.Cards {
		if c.ID == id {
			return i, true
		}
	}
	return 0, false
}

// Run serves the UI until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
