package wrongwords

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/corpus"
)

// ReviewOutcome is the result of a correct review answer.
type ReviewOutcome string

const (
	ReviewStillActive     ReviewOutcome = "still-active"
	ReviewNowMastered     ReviewOutcome = "now-mastered"
	ReviewAlreadyMastered ReviewOutcome = "already-mastered"
)

// Filter selects records by mastery.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterUnmastered Filter = "unmastered"
	FilterMastered   Filter = "mastered"
)

// SortOrder orders listed records.
type SortOrder string

const (
	// SortByCount lists the most missed words first.
	SortByCount SortOrder = "count"
	// SortByTime lists the most recently missed words first.
	SortByTime SortOrder = "time"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDFunc sets the generator for new record IDs.
func WithIDFunc(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// WithLogger sets the tracker's logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = log }
}

// Tracker owns the wrong-word records of one learner. It is not safe for
// concurrent use.
type Tracker struct {
	words []*Record
	stats Statistics
	now   func() time.Time
	newID func() string
	log   logrus.FieldLogger
}

// NewTracker loads a tracker from a persisted book. Stored statistics are
// ignored and recomputed from the records.
func NewTracker(book Book, opts ...Option) *Tracker {
	t := &Tracker{
		now:   time.Now,
		newID: uuid.NewString,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.words = make([]*Record, 0, len(book.Words))
	for _, w := range book.Words {
		t.words = append(t.words, &w)
	}
	t.refresh()
	return t
}

// RecordMiss notes a fresh (non-review) miss of entry. A new record starts
// Active with one miss; an existing one counts the miss and loses any
// mastery and review progress.
func (t *Tracker) RecordMiss(entry corpus.Entry, difficulty corpus.Difficulty) Record {
	now := t.now()
	if r := t.find(entry.Text, entry.Pronunciation); r != nil {
		r.WrongCount++
		r.LastWrongAt = now
		r.IsMastered = false
		r.MasteredAt = nil
		r.ReviewCorrectStreak = 0
		t.refresh()
		return *r
	}

	source := entry.Source
	if source == "" {
		source = corpus.DefaultSource
	}
	if !difficulty.Valid() {
		difficulty = corpus.DifficultySimple
	}
	r := &Record{
		ID:            t.newID(),
		Text:          entry.Text,
		Pronunciation: entry.Pronunciation,
		WrongCount:    1,
		FirstWrongAt:  now,
		LastWrongAt:   now,
		Source:        source,
		Difficulty:    difficulty,
	}
	t.words = append(t.words, r)
	t.refresh()
	return *r
}

// RecordReviewCorrect counts a correct review answer. The record is mastered
// when its streak reaches ReviewsToMaster. Unknown IDs return false.
func (t *Tracker) RecordReviewCorrect(id string) (ReviewOutcome, bool) {
	r := t.byID(id)
	if r == nil {
		return "", false
	}
	if r.IsMastered {
		return ReviewAlreadyMastered, true
	}
	r.ReviewCorrectStreak++
	if r.ReviewCorrectStreak < ReviewsToMaster {
		return ReviewStillActive, true
	}
	t.master(r)
	t.log.WithFields(logrus.Fields{
		"text":   r.Text,
		"pinyin": r.Pronunciation,
	}).Info("wrong word mastered through review")
	return ReviewNowMastered, true
}

// RecordReviewWrong counts a missed review answer. The streak restarts but
// mastery is left alone. Unknown IDs return false.
func (t *Tracker) RecordReviewWrong(id string) bool {
	r := t.byID(id)
	if r == nil {
		return false
	}
	r.ReviewCorrectStreak = 0
	r.WrongCount++
	r.LastWrongAt = t.now()
	t.refresh()
	return true
}

// MarkMastered masters a record regardless of its streak.
func (t *Tracker) MarkMastered(id string) bool {
	r := t.byID(id)
	if r == nil {
		return false
	}
	if !r.IsMastered {
		t.master(r)
	}
	return true
}

// ClearMastered deletes every mastered record and returns how many went.
func (t *Tracker) ClearMastered() int {
	before := len(t.words)
	t.words = lo.Reject(t.words, func(r *Record, _ int) bool { return r.IsMastered })
	t.refresh()
	return before - len(t.words)
}

// Get returns the record with id.
func (t *Tracker) Get(id string) (Record, bool) {
	if r := t.byID(id); r != nil {
		return *r, true
	}
	return Record{}, false
}

// Lookup returns the record for a text and pronunciation pair.
func (t *Tracker) Lookup(text, pronunciation string) (Record, bool) {
	if r := t.find(text, pronunciation); r != nil {
		return *r, true
	}
	return Record{}, false
}

// List returns copies of the records matching filter in the given order.
// Ties keep insertion order.
func (t *Tracker) List(filter Filter, order SortOrder) []Record {
	out := lo.FilterMap(t.words, func(r *Record, _ int) (Record, bool) {
		switch filter {
		case FilterUnmastered:
			return *r, !r.IsMastered
		case FilterMastered:
			return *r, r.IsMastered
		default:
			return *r, true
		}
	})
	switch order {
	case SortByCount:
		slices.SortStableFunc(out, func(a, b Record) int { return cmp.Compare(b.WrongCount, a.WrongCount) })
	case SortByTime:
		slices.SortStableFunc(out, func(a, b Record) int { return b.LastWrongAt.Compare(a.LastWrongAt) })
	}
	return out
}

// Top returns up to limit unmastered records, most missed first.
func (t *Tracker) Top(limit int) []Record {
	if limit <= 0 {
		limit = 10
	}
	words := t.List(FilterUnmastered, SortByCount)
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Unmastered returns the unmastered records as pool entries.
func (t *Tracker) Unmastered() []corpus.Entry {
	return lo.FilterMap(t.words, func(r *Record, _ int) (corpus.Entry, bool) {
		return r.Entry(), !r.IsMastered
	})
}

// Statistics returns the current derived counts.
func (t *Tracker) Statistics() Statistics {
	return t.stats
}

// Book snapshots the ledger for persistence.
func (t *Tracker) Book() Book {
	return Book{
		Words:      lo.Map(t.words, func(r *Record, _ int) Record { return *r }),
		Statistics: t.stats,
	}
}

func (t *Tracker) master(r *Record) {
	now := t.now()
	r.IsMastered = true
	r.MasteredAt = &now
	t.refresh()
}

func (t *Tracker) refresh() {
	t.stats = ComputeStatistics(lo.Map(t.words, func(r *Record, _ int) Record { return *r }))
}

func (t *Tracker) find(text, pronunciation string) *Record {
	r, _ := lo.Find(t.words, func(r *Record) bool {
		return r.Text == text && r.Pronunciation == pronunciation
	})
	return r
}

func (t *Tracker) byID(id string) *Record {
	if id == "" {
		return nil
	}
	r, _ := lo.Find(t.words, func(r *Record) bool { return r.ID == id })
	return r
}
