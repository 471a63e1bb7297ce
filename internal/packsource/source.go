// Package packsource acquires language-pack content from local directories
// or git repositories. A fetch either delivers complete per-language packs
// or nothing: partially parsed content never leaves this package.
package packsource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
	"github.com/Marcel-2025/Lingu-V.2/internal/pack"
)

const packExtension = ".pack"

// IsGit reports whether a source string refers to a git repository rather
// than a local directory.
func IsGit(source string) bool {
	return strings.HasSuffix(source, ".git") ||
		strings.HasPrefix(source, "git@") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://")
}

// Fetch acquires every pack a source provides and returns them grouped per
// language, entries from multiple files appended in walk order. Git sources
// are cloned into (or pulled inside) reposDir first, streaming transfer
// progress to progress (may be nil). Any error means no packs at all.
func Fetch(ctx context.Context, source, reposDir string, progress io.Writer) ([]pack.Pack, error) {
	dir := source
	if IsGit(source) {
		localPath, err := gitURLToLocalPath(reposDir, source)
		if err != nil {
			return nil, err
		}
		if err := syncRepo(ctx, source, localPath, progress); err != nil {
			return nil, err
		}
		dir = localPath
	}

	byLang := map[domain.Language]*pack.Pack{}
	var order []domain.Language

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), packExtension) {
			return nil
		}

		p, parseErr := pack.ParseFile(path)
		if parseErr != nil {
			return fmt.Errorf("parsing %s: %w", path, parseErr)
		}

		merged, seen := byLang[p.Lang]
		if !seen {
			merged = &pack.Pack{Lang: p.Lang}
			byLang[p.Lang] = merged
			order = append(order, p.Lang)
		}
		merged.Vocab = append(merged.Vocab, p.Vocab...)
		merged.Sentences = append(merged.Sentences, p.Sentences...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan pack source %s: %w", source, err)
	}

	packs := make([]pack.Pack, 0, len(order))
	for _, lang := range order {
		packs = append(packs, *byLang[lang])
	}
	return packs, nil
}

// gitURLToLocalPath maps a repository URL to a stable checkout path under
// baseDir, handling both https and scp-like git@host:path forms.
func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	if parsed, err := url.Parse(repoURL); err == nil && (parsed.Scheme == "https" || parsed.Scheme == "http") {
		return filepath.Join(baseDir, parsed.Host, strings.TrimSuffix(parsed.Path, ".git")), nil
	}

	// scp-like form: user@host:path(.git)
	if userHost, repoPath, ok := strings.Cut(repoURL, ":"); ok {
		if _, host, ok := strings.Cut(userHost, "@"); ok && host != "" {
			return filepath.Join(baseDir, host, strings.TrimSuffix(repoPath, ".git")), nil
		}
	}

	return "", fmt.Errorf("could not parse git URL: %s", repoURL)
}
