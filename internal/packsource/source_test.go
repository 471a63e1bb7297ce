package packsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
	"github.com/Marcel-2025/Lingu-V.2/internal/pack"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestIsGit(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/packs.git": true,
		"git@example.com:packs.git":     true,
		"https://example.com/packs":     true,
		"/home/user/packs":              false,
		"./packs":                       false,
	}
	for source, want := range cases {
		if got := IsGit(source); got != want {
			t.Errorf("IsGit(%q) = %v, want %v", source, got, want)
		}
	}
}

func TestFetchLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "de.pack"), "lang: de\nV: das Haus = the house\n")
	writeFile(t, filepath.Join(dir, "extra", "de-sentences.pack"), "lang: de\nS: Wie geht's? = How is it going?\n")
	writeFile(t, filepath.Join(dir, "es.pack"), "lang: es\nV: la casa = the house\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a pack file")

	packs, err := Fetch(context.Background(), dir, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(packs) != 2 {
		t.Fatalf("Expected 2 language packs, got %d", len(packs))
	}

	var german *pack.Pack
	for i := range packs {
		if packs[i].Lang == domain.German {
			german = &packs[i]
		}
	}
	if german == nil {
		t.Fatal("Expected a German pack")
	}
	if len(german.Vocab) != 1 || len(german.Sentences) != 1 {
		t.Errorf("Expected entries from both files merged, got %+v", german)
	}
}

func TestFetchFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "de.pack"), "lang: de\nV: gut = good\n")
	writeFile(t, filepath.Join(dir, "broken.pack"), "V: no lang header = oops\n")

	packs, err := Fetch(context.Background(), dir, t.TempDir(), nil)
	if !errors.Is(err, pack.ErrNoLanguage) {
		t.Fatalf("Expected ErrNoLanguage, got %v", err)
	}
	if packs != nil {
		t.Errorf("Expected no packs on failure, got %d", len(packs))
	}
}

func TestGitURLToLocalPath(t *testing.T) {
	t.Run("https url", func(t *testing.T) {
		got, err := gitURLToLocalPath("repos", "https://example.com/marcel/packs.git")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := filepath.Join("repos", "example.com", "marcel", "packs"); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("scp-like url", func(t *testing.T) {
		got, err := gitURLToLocalPath("repos", "git@example.com:marcel/packs.git")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if want := filepath.Join("repos", "example.com", "marcel/packs"); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := gitURLToLocalPath("repos", "::::"); err == nil {
			t.Error("Expected an error for an unparseable URL")
		}
	})
}
