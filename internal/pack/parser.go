package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Marcel-2025/Lingu-V.2/internal/domain"
)

// Pack file format, one entry per line:
//
//	lang: de
//	# a comment
//	V: das Haus = the house
//	E: Das Haus ist groß. = The house is big.
//	S: Ich lerne Deutsch. = I am learning German.
//
// V: declares a vocabulary pair, S: a sentence pair, both as "source = target".
// E: attaches an example pair to the vocabulary entry right above it.
const (
	langPrefix     = "lang:"
	vocabPrefix    = "V:"
	sentencePrefix = "S:"
	examplePrefix  = "E:"
	commentPrefix  = "#"
)

// ErrNoLanguage is returned for a pack file without a valid lang header.
var ErrNoLanguage = errors.New("pack file has no valid lang header")

var validate = validator.New()

// ParseFile reads a pack file from the given path.
func ParseFile(path string) (Pack, error) {
	file, err := os.Open(path)
	if err != nil {
		return Pack{}, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a pack from r. Malformed entry lines are skipped rather than
// failing the whole pack; a missing or unsupported language header is an
// error because nothing can be attributed without it.
func Parse(r io.Reader) (Pack, error) {
	scanner := bufio.NewScanner(r)
	var p Pack

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "" || strings.HasPrefix(line, commentPrefix):
			continue

		case strings.HasPrefix(line, langPrefix):
			lang := domain.Language(strings.TrimSpace(line[len(langPrefix):]))
			if !lang.Valid() {
				return Pack{}, fmt.Errorf("%w: unsupported language %q", ErrNoLanguage, lang)
			}
			p.Lang = lang

		case strings.HasPrefix(line, vocabPrefix):
			if entry, ok := parsePair(line[len(vocabPrefix):]); ok {
				p.Vocab = append(p.Vocab, entry)
			}

		case strings.HasPrefix(line, sentencePrefix):
			if entry, ok := parsePair(line[len(sentencePrefix):]); ok {
				p.Sentences = append(p.Sentences, entry)
			}

		case strings.HasPrefix(line, examplePrefix):
			if len(p.Vocab) == 0 {
				continue // example with no vocabulary entry to attach to
			}
			if entry, ok := parsePair(line[len(examplePrefix):]); ok {
				p.Vocab[len(p.Vocab)-1].Example = &domain.Example{
					Source: entry.Source,
					Target: entry.Target,
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Pack{}, err
	}

	if !p.Lang.Valid() {
		return Pack{}, ErrNoLanguage
	}
	return p, nil
}

// parsePair splits "source = target" and validates both sides are present.
func parsePair(s string) (Entry, bool) {
	source, target, found := strings.Cut(s, "=")
	if !found {
		return Entry{}, false
	}
	entry := Entry{
		Source: strings.TrimSpace(source),
		Target: strings.TrimSpace(target),
	}
	if err := validate.Struct(entry); err != nil {
		return Entry{}, false
	}
	return entry, true
}
