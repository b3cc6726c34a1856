// Package corpus turns a raw vocabulary document into a tiered word pool
// and selects the entries eligible for a given difficulty.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultSource labels entries whose group carries no source.
const DefaultSource = "未知来源"

// ErrMalformedCorpus is returned when the corpus cannot be parsed. The pool
// returned alongside it is empty, never nil.
var ErrMalformedCorpus = errors.New("malformed corpus")

// Builder parses corpora into pools.
type Builder struct {
	log logrus.FieldLogger
}

// NewBuilder creates a Builder. A nil logger uses the logrus standard logger.
func NewBuilder(log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{log: log}
}

// Load reads and parses the corpus file at path.
func (b *Builder) Load(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return b.degraded(fmt.Errorf("%w: read %s: %w", ErrMalformedCorpus, path, err))
	}
	return b.Parse(data)
}

// Parse validates raw corpus JSON and builds the pool. Any malformed group
// degrades the whole pool to empty; the failure is logged and returned.
func (b *Builder) Parse(data []byte) (*Pool, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return b.degraded(fmt.Errorf("%w: invalid JSON: %w", ErrMalformedCorpus, err))
	}
	if err := validateCorpus(doc); err != nil {
		return b.degraded(fmt.Errorf("%w: %w", ErrMalformedCorpus, err))
	}

	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return b.degraded(fmt.Errorf("%w: decode: %w", ErrMalformedCorpus, err))
	}
	return b.Build(&c), nil
}

// Build splits an already decoded corpus into tiers. Each item contributes
// up to two entries: its char and its phrase.
func (b *Builder) Build(c *Corpus) *Pool {
	pool := &Pool{}
	if c == nil || c.Characters == nil {
		b.logCounts(pool)
		return pool
	}

	for _, group := range c.Characters.RecognitionList {
		source := group.Source
		if source == "" {
			source = DefaultSource
		}

		for _, item := range group.Items {
			itemSource := source
			if item.Ref != "" {
				itemSource = item.Ref
			}

			if item.Char != "" {
				pool.add(Entry{
					Text:          item.Char,
					Pronunciation: item.Pinyin,
					Source:        itemSource,
					Category:      Classify(item.Char),
				})
			}
			if item.Phrase != "" {
				pool.add(Entry{
					Text:          item.Phrase,
					Pronunciation: item.Pinyin,
					Source:        itemSource,
					Category:      ClassifyPhrase(item.Phrase),
				})
			}
		}
	}

	b.logCounts(pool)
	return pool
}

func (b *Builder) degraded(err error) (*Pool, error) {
	b.log.WithError(err).Error("corpus parse failed, using empty pool")
	return &Pool{}, err
}

func (b *Builder) logCounts(pool *Pool) {
	b.log.WithFields(logrus.Fields{
		"characters":    len(pool.Characters),
		"short_phrases": len(pool.ShortPhrases),
		"long_phrases":  len(pool.LongPhrases),
		"total":         pool.Total(),
	}).Info("corpus parsed")
}

func (p *Pool) add(e Entry) {
	switch e.Category {
	case CategoryChar:
		p.Characters = append(p.Characters, e)
	case CategoryShortPhrase:
		p.ShortPhrases = append(p.ShortPhrases, e)
	default:
		p.LongPhrases = append(p.LongPhrases, e)
	}
}

// Classify categorizes char-style text: one rune is a character, two a short
// phrase, anything longer a long phrase.
func Classify(text string) Category {
	switch utf8.RuneCountInString(text) {
	case 1:
		return CategoryChar
	case 2:
		return CategoryShortPhrase
	default:
		return CategoryLongPhrase
	}
}

// ClassifyPhrase categorizes phrase-style text, which is never a character.
func ClassifyPhrase(text string) Category {
	if utf8.RuneCountInString(text) <= 2 {
		return CategoryShortPhrase
	}
	return CategoryLongPhrase
}
