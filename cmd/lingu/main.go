package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/Marcel-2025/Lingu-V.2/internal/backup"
	"github.com/Marcel-2025/Lingu-V.2/internal/config"
	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
	"github.com/Marcel-2025/Lingu-V.2/internal/pack"
	"github.com/Marcel-2025/Lingu-V.2/internal/packsource"
	"github.com/Marcel-2025/Lingu-V.2/internal/storage"
	"github.com/Marcel-2025/Lingu-V.2/internal/web"
)

func main() {
	flags := config.Flags()
	runSync := flags.Bool("sync", false, "Fetch configured pack sources, merge new cards and exit")
	exportDir := flags.String("export", "", "Write a backup file into the given directory and exit")
	importFile := flags.String("import", "", "Replace all state from the given backup file and exit")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	now := time.Now()
	app, found, err := db.Load()
	if err != nil {
		log.Fatalf("Failed to load app state: %v", err)
	}
	if !found {
		app = domain.NewAppData(cfg.Username, cfg.Native, cfg.TargetLang(), cfg.Goal, now)
		if err := db.Save(app, now); err != nil {
			log.Fatalf("Failed to save initial app state: %v", err)
		}
		slog.Info("Created a fresh profile", "username", cfg.Username, "target", cfg.Target)
	}

	switch {
	case *importFile != "":
		if err := importBackup(db, *importFile, now); err != nil {
			log.Fatalf("Import failed: %v", err)
		}

	case *exportDir != "":
		if err := exportBackup(app, *exportDir, now); err != nil {
			log.Fatalf("Export failed: %v", err)
		}

	case *runSync:
		syncPacks(db, &app, cfg, now)

	default:
		srv := web.NewServer(db, app, cfg)
		slog.Info("Serving", "addr", cfg.Listen)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := srv.Run(ctx, cfg.Listen); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

// importBackup replaces the entire persisted state with the given file.
// A document that fails validation leaves the existing state untouched.
func importBackup(db *storage.DB, path string, now time.Time) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	restored, err := backup.Unmarshal(blob)
	if err != nil {
		return err
	}
	if err := db.Save(restored, now); err != nil {
		return err
	}
	slog.Info("Backup imported", "path", path, "cards", len(restored.Cards))
	return nil
}

func exportBackup(app domain.AppData, dir string, now time.Time) error {
	blob, err := backup.Marshal(app, now)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, backup.Filename(now))
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	slog.Info("Backup written", "path", path)
	return nil
}

// syncPacks fetches every configured pack source and appends the cards the
// deck doesn't have yet.
func syncPacks(db *storage.DB, app *domain.AppData, cfg *config.Config, now time.Time) {
	if len(cfg.Sources) == 0 {
		slog.Info("No pack sources configured. Add one with --sources <path/or/url.git>")
		return
	}

	var added int
	for _, source := range cfg.Sources {
		packs, err := packsource.Fetch(context.Background(), source, cfg.Repos, os.Stdout)
		if err != nil {
			slog.Error("Failed to fetch pack source", "source", source, "error", err)
			continue
		}
		for _, p := range packs {
			delta := pack.Merge(app.Cards, p, now)
			app.Cards = append(app.Cards, delta...)
			added += len(delta)
			slog.Info("Merged pack", "lang", p.Lang, "new_cards", len(delta))
		}
	}

	if err := db.Save(*app, now); err != nil {
		log.Fatalf("Failed to save app state after sync: %v", err)
	}
	slog.Info("Sync complete", "new_cards", added)
}
