package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/store"
	"github.com/abhisek/hanziquiz/internal/userdata"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type harness struct {
	engine *Engine
	kv     *store.Memory
	repo   *userdata.Repo
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testPool(t *testing.T) *corpus.Pool {
	t.Helper()
	pool, err := corpus.NewBuilder(quietLogger()).Parse(corpus.Sample())
	require.NoError(t, err)
	return pool
}

func newHarness(t *testing.T, pool *corpus.Pool) *harness {
	t.Helper()
	clock := &stepClock{t: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)}
	log := quietLogger()
	kv := store.NewMemory()
	repo := userdata.NewRepo(kv, clock.Now, log)
	n := 0
	tracker := wrongwords.NewTracker(wrongwords.Book{},
		wrongwords.WithClock(clock.Now),
		wrongwords.WithIDFunc(func() string { n++; return fmt.Sprintf("w%d", n) }),
		wrongwords.WithLogger(log),
	)
	engine := NewEngine(Config{
		Pool:      pool,
		Generator: quiz.NewGenerator(quiz.NewRand(7), log),
		Tracker:   tracker,
		Repo:      repo,
		Now:       clock.Now,
		NewID:     func() string { return "session-1" },
		Log:       log,
	})
	return &harness{engine: engine, kv: kv, repo: repo}
}

// pick returns the correct option of the current question, or a wrong one.
func pick(st *State, correct bool) quiz.Option {
	q := st.Current()
	for _, o := range q.Options {
		if o.IsCorrect == correct {
			return o
		}
	}
	panic("no option found")
}

// play answers the session following pattern (x = correct, - = wrong).
func play(t *testing.T, h *harness, st *State, pattern string) {
	t.Helper()
	ctx := context.Background()
	for i, c := range pattern {
		if i > 0 {
			require.True(t, h.engine.Next(st), "Next at %d", i)
		}
		out, err := h.engine.Submit(ctx, st, pick(st, c == 'x'))
		require.NoError(t, err)
		require.True(t, out.Accepted)
		require.Equal(t, c == 'x', out.Correct)
	}
}

func TestStart_QuestionCountPerDifficulty(t *testing.T) {
	pool := testPool(t)
	tests := []struct {
		difficulty corpus.Difficulty
		want       int
	}{
		{corpus.DifficultySimple, 10},
		{corpus.DifficultyMedium, 15},
		{corpus.DifficultyHard, 20},
	}
	for _, tt := range tests {
		h := newHarness(t, pool)
		st, err := h.engine.Start(context.Background(), Options{Difficulty: tt.difficulty})
		require.NoError(t, err)
		assert.Len(t, st.Questions, tt.want)
		assert.Equal(t, PhaseActive, st.Phase)
		assert.Equal(t, ModeAll, st.Mode)
	}
}

func TestStart_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newHarness(t, nil).engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	assert.ErrorIs(t, err, ErrNoCorpus)

	_, err = newHarness(t, &corpus.Pool{}).engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	assert.ErrorIs(t, err, quiz.ErrEmptyPool)

	_, err = newHarness(t, testPool(t)).engine.Start(ctx, Options{
		Difficulty: corpus.DifficultySimple,
		Mode:       ModeUnit,
		Source:     "不存在的课",
	})
	assert.ErrorIs(t, err, quiz.ErrEmptyPool)
}

func TestStart_UnitModeFiltersBySource(t *testing.T) {
	h := newHarness(t, testPool(t))
	st, err := h.engine.Start(context.Background(), Options{
		Difficulty: corpus.DifficultyHard,
		Mode:       ModeUnit,
		Source:     "识字1",
	})
	require.NoError(t, err)
	for _, q := range st.Questions {
		assert.Contains(t, q.Correct.Source, "识字1")
	}
}

func TestSubmit_ComboInvariants(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	pattern := "xxx-xxxx-x"
	wantCombo := []int{1, 2, 3, 0, 1, 2, 3, 4, 0, 1}
	for i, c := range pattern {
		if i > 0 {
			require.True(t, h.engine.Next(st))
		}
		out, err := h.engine.Submit(ctx, st, pick(st, c == 'x'))
		require.NoError(t, err)
		assert.Equal(t, wantCombo[i], out.Combo, "answer %d", i)
		assert.Equal(t, wantCombo[i], st.CurrentCombo)
		assert.GreaterOrEqual(t, st.MaxCombo, st.CurrentCombo)
	}
	assert.Equal(t, 4, st.MaxCombo)
	assert.Equal(t, 8, st.CorrectCount)
	assert.Equal(t, 2, st.WrongCount)
	assert.False(t, h.engine.Next(st), "no question after the last")
}

func TestSubmit_SecondAnswerIgnored(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	_, err = h.engine.Submit(ctx, st, pick(st, true))
	require.NoError(t, err)
	out, err := h.engine.Submit(ctx, st, pick(st, false))
	require.NoError(t, err)

	assert.False(t, out.Accepted)
	assert.Equal(t, 1, st.CorrectCount)
	assert.Equal(t, 0, st.WrongCount)
}

func TestSubmit_MissRecordsWrongWord(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	missed := st.Current().Correct
	out, err := h.engine.Submit(ctx, st, pick(st, false))
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.True(t, out.Answer.IsCorrect)

	rec, ok := h.engine.Tracker().Lookup(missed.Text, missed.Pronunciation)
	require.True(t, ok)
	assert.Equal(t, 1, rec.WrongCount)
	assert.Equal(t, corpus.DifficultySimple, rec.Difficulty)

	book, err := h.repo.InitWrongWords(ctx)
	require.NoError(t, err)
	require.Len(t, book.Words, 1)
	assert.Equal(t, missed.Text, book.Words[0].Text)
	assert.Equal(t, 1, book.Statistics.UnmasteredCount)
}

func TestFinish_ScoresAndRecords(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	play(t, h, st, "xxxxxxxx--")
	result, err := h.engine.Finish(ctx, st)
	require.NoError(t, err)

	assert.Equal(t, 80, result.Breakdown.BaseScore)
	assert.Equal(t, 10, result.Breakdown.ComboBonus)
	assert.Equal(t, 50, result.Breakdown.CompletionBonus)
	assert.Equal(t, 140, result.Score)
	assert.InDelta(t, 0.8, result.Accuracy, 1e-9)
	assert.Equal(t, 3, result.Stars)
	assert.Equal(t, 8, result.MaxCombo)
	assert.Equal(t, "session-1", result.ID)
	assert.Len(t, result.Questions, 10)
	assert.Greater(t, result.DurationSecs, 0)
	assert.Equal(t, PhaseFinished, st.Phase)

	again, err := h.engine.Finish(ctx, st)
	require.NoError(t, err)
	assert.Same(t, result, again)

	history, err := h.repo.InitGameHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history.History, 1, "finishing twice records once")
	assert.Equal(t, 140, history.Statistics.TotalScore)

	p, err := h.repo.InitUserProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 140, p.TotalScore)
	assert.Equal(t, 10, p.TotalQuestions)
	assert.Equal(t, 3, p.Stars)
	assert.Equal(t, 8, p.DifficultyStats[corpus.DifficultySimple].CorrectCount)

	_, err = h.engine.Submit(ctx, st, quiz.Option{})
	assert.ErrorIs(t, err, ErrSessionFinished)

	summary := BuildSummary(st)
	require.NotNil(t, summary)
	assert.Equal(t, 10, summary.Answered)
	assert.Len(t, summary.Missed, 2)
}

func TestFinish_EarlyCountsUnansweredAsBreaks(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	play(t, h, st, "xxx")
	result, err := h.engine.Finish(ctx, st)
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalQuestions)
	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 1.0, result.Accuracy)
	assert.Equal(t, 30+50, result.Score)
}

func TestAbandon(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)
	play(t, h, st, "xx")

	h.engine.Abandon(st)

	assert.Equal(t, PhaseAbandoned, st.Phase)
	_, err = h.engine.Finish(ctx, st)
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.False(t, h.engine.Next(st))

	raw, err := h.kv.Get(ctx, store.KeyUserProgress)
	require.NoError(t, err)
	assert.Nil(t, raw, "abandoned sessions never reach progress")
}

func TestWrongMode_FallsBackWithEvent(t *testing.T) {
	h := newHarness(t, testPool(t))
	st, err := h.engine.Start(context.Background(), Options{Difficulty: corpus.DifficultySimple, Mode: ModeWrong})
	require.NoError(t, err)

	assert.False(t, st.Review)
	assert.Len(t, st.Questions, 10)
	require.Len(t, st.Events, 1)
	assert.Equal(t, EventReviewFallback, st.Events[0].Kind)
}

func TestWrongMode_ReviewMastersAfterThreeCorrect(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	shan := corpus.Entry{Text: "山", Pronunciation: "shān", Source: "识字1"}
	h.engine.Tracker().RecordMiss(shan, corpus.DifficultySimple)

	var last Outcome
	for round := 1; round <= 3; round++ {
		st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple, Mode: ModeWrong})
		require.NoError(t, err)
		require.True(t, st.Review)
		require.Len(t, st.Questions, 1, "review pool is the single unmastered word")
		assert.Equal(t, "山", st.Current().Correct.Text)

		last, err = h.engine.Submit(ctx, st, pick(st, true))
		require.NoError(t, err)
		if round < 3 {
			assert.Equal(t, wrongwords.ReviewStillActive, last.Review)
		}
		_, err = h.engine.Finish(ctx, st)
		require.NoError(t, err)
	}

	assert.Equal(t, wrongwords.ReviewNowMastered, last.Review)
	require.Len(t, last.Events, 1)
	assert.Equal(t, EventWordMastered, last.Events[0].Kind)

	rec, _ := h.engine.Tracker().Lookup("山", "shān")
	assert.True(t, rec.IsMastered)
	assert.Equal(t, 1, rec.WrongCount, "review answers are not fresh misses")

	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple, Mode: ModeWrong})
	require.NoError(t, err)
	assert.False(t, st.Review, "no unmastered words left")
}

func TestWrongMode_ReviewMissRestartsStreak(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	h.engine.Tracker().RecordMiss(corpus.Entry{Text: "山", Pronunciation: "shān"}, corpus.DifficultySimple)

	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple, Mode: ModeWrong})
	require.NoError(t, err)
	_, err = h.engine.Submit(ctx, st, pick(st, false))
	require.NoError(t, err)

	rec, _ := h.engine.Tracker().Lookup("山", "shān")
	assert.Equal(t, 2, rec.WrongCount)
	assert.Equal(t, 0, rec.ReviewCorrectStreak)
	assert.False(t, rec.IsMastered)
}

func TestPersistFailure_KeepsStateValid(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	disk := errors.New("disk full")
	h.kv.FailWrites = disk

	out, err := h.engine.Submit(ctx, st, pick(st, false))
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, disk)
	assert.True(t, out.Accepted)
	assert.Equal(t, 1, st.WrongCount)
	assert.Equal(t, 1, h.engine.Tracker().Statistics().TotalWrongWords)

	result, err := h.engine.Finish(ctx, st)
	assert.ErrorIs(t, err, ErrPersist)
	require.NotNil(t, result)
	assert.Equal(t, PhaseFinished, st.Phase)
	assert.Equal(t, st.Result, result)

	kinds := make([]EventKind, 0, len(st.Events))
	for _, e := range st.Events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{EventPersistFailed, EventPersistFailed}, kinds)
}

func TestStateViews(t *testing.T) {
	h := newHarness(t, testPool(t))
	ctx := context.Background()
	st, err := h.engine.Start(ctx, Options{Difficulty: corpus.DifficultySimple})
	require.NoError(t, err)

	assert.Equal(t, 0, st.ProgressPercent())
	assert.False(t, st.IsLast())
	assert.Equal(t, 0.0, st.Accuracy())

	play(t, h, st, "x-x")
	assert.Equal(t, 20, st.ProgressPercent())
	assert.InDelta(t, 2.0/3.0, st.Accuracy(), 1e-9)

	for h.engine.Next(st) {
	}
	assert.True(t, st.IsLast())
	assert.Equal(t, 90, st.ProgressPercent())
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeWrong, ParseMode("wrong"))
	assert.Equal(t, ModeUnit, ParseMode(" Unit "))
	assert.Equal(t, ModeAll, ParseMode("everything"))
}
