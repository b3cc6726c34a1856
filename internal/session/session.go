// Package session runs one quiz from question generation to the recorded
// result.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/progress"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/scoring"
	"github.com/abhisek/hanziquiz/internal/store"
	"github.com/abhisek/hanziquiz/internal/userdata"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

var (
	// ErrNoCorpus is returned when the engine has no word pool loaded.
	ErrNoCorpus = errors.New("no corpus loaded")

	// ErrSessionFinished is returned for actions on a finished or
	// abandoned session.
	ErrSessionFinished = errors.New("session already finished")

	// ErrPersist wraps store failures. In-memory state stays valid when it
	// is returned.
	ErrPersist = errors.New("persist learner data")
)

// Config wires an Engine.
type Config struct {
	Pool      *corpus.Pool
	Generator *quiz.Generator
	Tracker   *wrongwords.Tracker
	Repo      *userdata.Repo

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
	Log   logrus.FieldLogger
}

// Engine starts sessions and applies answers to them. It assumes one active
// session at a time and does no locking.
type Engine struct {
	pool    *corpus.Pool
	gen     *quiz.Generator
	tracker *wrongwords.Tracker
	repo    *userdata.Repo
	now     func() time.Time
	newID   func() string
	log     logrus.FieldLogger
}

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		pool:    cfg.Pool,
		gen:     cfg.Generator,
		tracker: cfg.Tracker,
		repo:    cfg.Repo,
		now:     cfg.Now,
		newID:   cfg.NewID,
		log:     cfg.Log,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	if e.gen == nil {
		e.gen = quiz.NewGenerator(nil, e.log)
	}
	if e.repo == nil {
		e.repo = userdata.NewRepo(store.NewMemory(), e.now, e.log)
	}
	if e.tracker == nil {
		e.tracker = wrongwords.NewTracker(wrongwords.Book{}, wrongwords.WithClock(e.now), wrongwords.WithLogger(e.log))
	}
	return e
}

// Tracker returns the engine's wrong-word tracker.
func (e *Engine) Tracker() *wrongwords.Tracker {
	return e.tracker
}

// Start builds a fresh session for opts.
func (e *Engine) Start(ctx context.Context, opts Options) (*State, error) {
	if e.pool == nil {
		return nil, ErrNoCorpus
	}
	if !opts.Difficulty.Valid() {
		opts.Difficulty = corpus.DifficultySimple
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}

	plan := BuildPlan(e.pool, e.tracker, opts)
	fields := logrus.Fields{
		"difficulty": opts.Difficulty,
		"mode":       opts.Mode,
		"source":     opts.Source,
	}
	for _, ev := range plan.Events {
		e.log.WithFields(fields).Warn(ev.Message)
	}

	questions, err := e.gen.Generate(quiz.GenerateInput{
		Pool:         plan.Pool,
		Difficulty:   opts.Difficulty,
		Mode:         string(opts.Mode),
		QuestionType: opts.QuestionType,
	})
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	now := e.now()
	st := &State{
		ID:                e.newID(),
		Difficulty:        opts.Difficulty,
		Mode:              opts.Mode,
		QuestionType:      opts.QuestionType,
		Source:            opts.Source,
		Review:            plan.Review,
		Questions:         questions,
		StartTime:         now,
		QuestionStartTime: now,
		Phase:             PhaseActive,
		Events:            plan.Events,
	}

	fields["questions"] = len(questions)
	e.log.WithFields(fields).Info("session started")
	return st, nil
}

// Outcome is what happened when an answer was submitted.
type Outcome struct {
	// Accepted is false when the current question was already answered.
	Accepted bool

	Correct bool

	// Answer is the correct option for the question.
	Answer quiz.Option

	// Combo is the streak after this answer.
	Combo int

	// Review is set when the answer counted as a wrong-word review.
	Review wrongwords.ReviewOutcome

	// Events raised while handling the answer.
	Events []Event
}

// Submit checks answer against the current question and updates the
// session, the combo and the wrong-word ledger. A store failure is returned
// joined with ErrPersist alongside a valid Outcome.
func (e *Engine) Submit(ctx context.Context, st *State, answer quiz.Option) (Outcome, error) {
	if st.Done() {
		return Outcome{}, ErrSessionFinished
	}
	q := st.Current()
	if q == nil || q.Answered {
		return Outcome{}, nil
	}

	correct := quiz.CheckAnswer(q, &answer)
	elapsed := e.now().Sub(st.QuestionStartTime).Milliseconds()
	q.MarkAnswered(answer, correct, elapsed)

	out := Outcome{Accepted: true, Correct: correct}
	if i := q.CorrectIndex(); i >= 0 {
		out.Answer = q.Options[i]
	}

	if correct {
		st.CorrectCount++
		st.CurrentCombo++
		st.MaxCombo = max(st.MaxCombo, st.CurrentCombo)
	} else {
		st.WrongCount++
		st.CurrentCombo = 0
	}
	out.Combo = st.CurrentCombo
	st.Phase = PhaseFeedback

	changed := e.recordWrongWord(st, q, correct, &out)
	if !changed {
		return out, nil
	}
	if err := e.repo.SaveWrongWords(ctx, e.tracker.Book()); err != nil {
		out.Events = append(out.Events, st.addEvent(EventPersistFailed, "wrong-word book was not saved"))
		return out, errors.Join(ErrPersist, err)
	}
	return out, nil
}

// recordWrongWord updates the ledger for an answer and reports whether it
// changed.
func (e *Engine) recordWrongWord(st *State, q *quiz.Question, correct bool, out *Outcome) bool {
	if !st.Review {
		if correct {
			return false
		}
		e.tracker.RecordMiss(q.Correct, st.Difficulty)
		return true
	}

	rec, ok := e.tracker.Lookup(q.Correct.Text, q.Correct.Pronunciation)
	if !ok {
		return false
	}
	if !correct {
		return e.tracker.RecordReviewWrong(rec.ID)
	}
	result, ok := e.tracker.RecordReviewCorrect(rec.ID)
	if !ok {
		return false
	}
	out.Review = result
	if result == wrongwords.ReviewNowMastered {
		out.Events = append(out.Events, st.addEvent(EventWordMastered, fmt.Sprintf("%s (%s) mastered", rec.Text, rec.Pronunciation)))
	}
	return true
}

// Next moves to the following question. It returns false on the last
// question; the caller then finishes the session.
func (e *Engine) Next(st *State) bool {
	if st.Done() || st.CurrentIndex >= len(st.Questions)-1 {
		return false
	}
	st.CurrentIndex++
	st.QuestionStartTime = e.now()
	st.Phase = PhaseActive
	return true
}

// Finish scores the session, records it in the game history and folds it
// into the learner's progress. Calling Finish again returns the same
// result. On a store failure the result is still returned, together with an
// error joined with ErrPersist.
func (e *Engine) Finish(ctx context.Context, st *State) (*progress.SessionResult, error) {
	if st.Phase == PhaseAbandoned {
		return nil, ErrSessionFinished
	}
	if st.Result != nil {
		return st.Result, nil
	}

	now := e.now()
	answers := lo.Map(st.Questions, func(q *quiz.Question, _ int) bool { return q.Answered && q.IsCorrect })
	breakdown := scoring.Calculate(st.Difficulty, answers)
	accuracy := st.Accuracy()

	result := &progress.SessionResult{
		ID:             st.ID,
		Difficulty:     st.Difficulty,
		Mode:           string(st.Mode),
		TotalQuestions: len(st.Questions),
		CorrectCount:   st.CorrectCount,
		WrongCount:     st.WrongCount,
		Accuracy:       accuracy,
		MaxCombo:       st.MaxCombo,
		DurationSecs:   int(now.Sub(st.StartTime).Seconds()),
		Score:          breakdown.TotalScore,
		Breakdown:      breakdown,
		Stars:          scoring.Stars(accuracy),
		FinishedAt:     now,
		Questions:      lo.Map(st.Questions, func(q *quiz.Question, _ int) progress.QuestionOutcome { return outcomeOf(q) }),
	}
	st.Result = result
	st.Phase = PhaseFinished

	e.log.WithFields(logrus.Fields{
		"session_id": st.ID,
		"score":      result.Score,
		"correct":    result.CorrectCount,
		"total":      result.TotalQuestions,
		"stars":      result.Stars,
	}).Info("session finished")

	if err := e.record(ctx, *result); err != nil {
		st.addEvent(EventPersistFailed, "session result was not saved")
		return result, errors.Join(ErrPersist, err)
	}
	return result, nil
}

// record appends the result to the history, then applies it to progress.
func (e *Engine) record(ctx context.Context, r progress.SessionResult) error {
	var errs []error

	history, err := e.repo.InitGameHistory(ctx)
	if err == nil {
		err = e.repo.SaveGameHistory(ctx, history.Add(r))
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("game history: %w", err))
	}

	p, err := e.repo.InitUserProgress(ctx)
	if err == nil {
		err = e.repo.SaveUserProgress(ctx, progress.Apply(p, r))
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("user progress: %w", err))
	}

	return errors.Join(errs...)
}

// Abandon discards the session without scoring it.
func (e *Engine) Abandon(st *State) {
	if st.Done() {
		return
	}
	st.Phase = PhaseAbandoned
	e.log.WithField("session_id", st.ID).Info("session abandoned")
}

func outcomeOf(q *quiz.Question) progress.QuestionOutcome {
	o := progress.QuestionOutcome{
		Text:           q.Correct.Text,
		Pronunciation:  q.Correct.Pronunciation,
		DisplayMode:    string(q.DisplayMode),
		Answered:       q.Answered,
		IsCorrect:      q.IsCorrect,
		ResponseTimeMs: q.ResponseTimeMs,
	}
	if q.UserAnswer != nil {
		o.UserAnswer = q.UserAnswer.Label(q.DisplayMode)
	}
	return o
}
