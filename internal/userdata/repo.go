// Package userdata reads and writes the learner's documents in the store
// and supplies their defaults.
package userdata

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/progress"
	"github.com/abhisek/hanziquiz/internal/store"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

// Snapshot is every document of one learner.
type Snapshot struct {
	UserProgress progress.UserProgress `json:"userProgress"`
	WrongWords   wrongwords.Book       `json:"wrongWords"`
	GameHistory  progress.History      `json:"gameHistory"`
	Settings     Settings              `json:"settings"`
}

// Export is the document written by the export command.
type Export struct {
	Snapshot
	ExportTime time.Time `json:"exportTime"`
}

// Repo is the typed view over a store.KV.
type Repo struct {
	kv  store.KV
	now func() time.Time
	log logrus.FieldLogger
}

// NewRepo wraps kv. A nil now uses time.Now; a nil log uses the standard
// logger.
func NewRepo(kv store.KV, now func() time.Time, log logrus.FieldLogger) *Repo {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Repo{kv: kv, now: now, log: log}
}

// initKey returns the document under key, writing def() first if the key
// has no value. A stored document that fails to decode is an error and is
// left untouched.
func initKey[T any](ctx context.Context, r *Repo, key store.Key, def func() T) (T, error) {
	var v T
	ok, err := store.GetJSON(ctx, r.kv, key, &v)
	if err != nil {
		return v, fmt.Errorf("load %s: %w", key, err)
	}
	if ok {
		return v, nil
	}
	v = def()
	if err := store.SetJSON(ctx, r.kv, key, v); err != nil {
		return v, fmt.Errorf("init %s: %w", key, err)
	}
	r.log.WithField("key", key).Debug("initialized default document")
	return v, nil
}

// InitUserProgress returns the stored progress, creating it if absent.
func (r *Repo) InitUserProgress(ctx context.Context) (progress.UserProgress, error) {
	return initKey(ctx, r, store.KeyUserProgress, func() progress.UserProgress {
		return progress.NewUserProgress(r.now())
	})
}

// InitWrongWords returns the stored wrong-word book, creating it if absent.
func (r *Repo) InitWrongWords(ctx context.Context) (wrongwords.Book, error) {
	return initKey(ctx, r, store.KeyWrongWords, func() wrongwords.Book {
		return wrongwords.Book{Words: []wrongwords.Record{}}
	})
}

// InitGameHistory returns the stored history, creating it if absent.
func (r *Repo) InitGameHistory(ctx context.Context) (progress.History, error) {
	return initKey(ctx, r, store.KeyGameHistory, func() progress.History {
		return progress.History{History: []progress.SessionResult{}}
	})
}

// InitSettings returns the stored settings, creating them if absent.
// Settings saved before music existed gain the default music setting.
func (r *Repo) InitSettings(ctx context.Context) (Settings, error) {
	s, err := initKey(ctx, r, store.KeySettings, DefaultSettings)
	if err != nil {
		return s, err
	}
	if s.Music == nil {
		s.Music = DefaultMusic()
		if err := r.SaveSettings(ctx, s); err != nil {
			return s, err
		}
		r.log.Info("settings upgraded with music defaults")
	}
	return s, nil
}

// InitAll initializes every document and returns them.
func (r *Repo) InitAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.UserProgress, err = r.InitUserProgress(ctx); err != nil {
		return snap, err
	}
	if snap.WrongWords, err = r.InitWrongWords(ctx); err != nil {
		return snap, err
	}
	if snap.GameHistory, err = r.InitGameHistory(ctx); err != nil {
		return snap, err
	}
	if snap.Settings, err = r.InitSettings(ctx); err != nil {
		return snap, err
	}
	return snap, nil
}

// SaveUserProgress replaces the stored progress.
func (r *Repo) SaveUserProgress(ctx context.Context, p progress.UserProgress) error {
	return r.save(ctx, store.KeyUserProgress, p)
}

// SaveWrongWords replaces the stored wrong-word book.
func (r *Repo) SaveWrongWords(ctx context.Context, b wrongwords.Book) error {
	return r.save(ctx, store.KeyWrongWords, b)
}

// SaveGameHistory replaces the stored history.
func (r *Repo) SaveGameHistory(ctx context.Context, h progress.History) error {
	return r.save(ctx, store.KeyGameHistory, h)
}

// SaveSettings replaces the stored settings.
func (r *Repo) SaveSettings(ctx context.Context, s Settings) error {
	return r.save(ctx, store.KeySettings, s)
}

// Reset deletes all learner data and writes fresh defaults.
func (r *Repo) Reset(ctx context.Context) (Snapshot, error) {
	if err := r.kv.Clear(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("clear store: %w", err)
	}
	r.log.Info("all learner data cleared")
	return r.InitAll(ctx)
}

// Export gathers every document, initializing any that are missing.
func (r *Repo) Export(ctx context.Context) (Export, error) {
	snap, err := r.InitAll(ctx)
	if err != nil {
		return Export{}, err
	}
	return Export{Snapshot: snap, ExportTime: r.now()}, nil
}

func (r *Repo) save(ctx context.Context, key store.Key, v any) error {
	if err := store.SetJSON(ctx, r.kv, key, v); err != nil {
		r.log.WithError(err).WithField("key", key).Error("failed to persist document")
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
