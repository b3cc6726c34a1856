package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/abhisek/hanziquiz/internal/config"
	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/logger"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/session"
	"github.com/abhisek/hanziquiz/internal/store"
	"github.com/abhisek/hanziquiz/internal/userdata"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

// env is what every command needs: config, a logger and the opened store.
type env struct {
	cfg     *config.Config
	log     *logrus.Logger
	kv      store.KV
	repo    *userdata.Repo
	closers []func() error
}

// openEnv loads config and opens the store. With forScreen set the logger
// writes to log.file (or nowhere) so it cannot draw over the TUI.
func openEnv(ctx context.Context, v *viper.Viper, forScreen bool) (*env, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if forScreen {
		l, closeLog, err := logger.ForScreen(cfg.Log)
		if err != nil {
			return nil, err
		}
		e.log = l
		e.closers = append(e.closers, closeLog)
	} else {
		l, err := logger.New(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
		e.log = l
	}

	kv, err := store.Open(ctx, store.Options{Driver: cfg.DB.Driver, Path: cfg.DB.Path, URL: cfg.DB.URL}, e.log)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.kv = kv
	e.closers = append(e.closers, kv.Close)
	e.repo = userdata.NewRepo(kv, nil, e.log)
	return e, nil
}

// Close releases the store and the log file, newest first.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i]())
	}
	return errors.Join(errs...)
}

// loadPool parses the configured corpus, or the built-in sample when no
// path is set.
func (e *env) loadPool() (*corpus.Pool, error) {
	b := corpus.NewBuilder(e.log)
	if e.cfg.Corpus.Path == "" {
		return b.Parse(corpus.Sample())
	}
	return b.Load(e.cfg.Corpus.Path)
}

// tracker loads the wrong-word book into a tracker.
func (e *env) tracker(ctx context.Context) (*wrongwords.Tracker, error) {
	book, err := e.repo.InitWrongWords(ctx)
	if err != nil {
		return nil, err
	}
	return wrongwords.NewTracker(book, wrongwords.WithLogger(e.log)), nil
}

// engine builds a session engine over the corpus and the stored ledger.
func (e *env) engine(ctx context.Context) (*session.Engine, *corpus.Pool, error) {
	pool, err := e.loadPool()
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}
	tracker, err := e.tracker(ctx)
	if err != nil {
		return nil, nil, err
	}

	var gen *quiz.Generator
	if e.cfg.Quiz.Seed != 0 {
		gen = quiz.NewGenerator(quiz.NewRand(e.cfg.Quiz.Seed), e.log)
	}
	return session.NewEngine(session.Config{
		Pool:      pool,
		Generator: gen,
		Tracker:   tracker,
		Repo:      e.repo,
		Log:       e.log,
	}), pool, nil
}

// quizOptions reads the play defaults from config.
func quizOptions(cfg *config.Config) (session.Options, error) {
	d, ok := corpus.ParseDifficulty(cfg.Quiz.Difficulty)
	if !ok {
		return session.Options{}, fmt.Errorf("unknown difficulty %q (want simple, medium or hard)", cfg.Quiz.Difficulty)
	}
	return session.Options{
		Difficulty:   d,
		Mode:         session.ParseMode(cfg.Quiz.Mode),
		QuestionType: quiz.ParseQuestionType(cfg.Quiz.QuestionType),
	}, nil
}
