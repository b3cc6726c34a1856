// Package quiz builds multiple-choice questions from a word pool and checks
// submitted answers.
package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/hanziquiz/internal/corpus"
)

// OptionsPerQuestion is the number of options every question carries.
const OptionsPerQuestion = 4

const distractorCount = OptionsPerQuestion - 1

// ErrEmptyPool is returned when there is nothing to build questions from.
var ErrEmptyPool = errors.New("word pool is empty")

// QuestionCount returns the number of questions a session of difficulty d
// asks when the pool is large enough.
func QuestionCount(d corpus.Difficulty) int {
	switch d {
	case corpus.DifficultyMedium:
		return 15
	case corpus.DifficultyHard:
		return 20
	default:
		return 10
	}
}

// GenerateInput holds everything needed to generate one session's questions.
type GenerateInput struct {
	// Pool is the eligible entries. Questions never repeat an entry.
	Pool []corpus.Entry

	// Difficulty sets the target question count.
	Difficulty corpus.Difficulty

	// Mode is the session mode, carried for logging only.
	Mode string

	// QuestionType pins or mixes the display mode.
	QuestionType QuestionType
}

// Generator draws questions and distractors from a pool using an injected
// random source.
type Generator struct {
	rng *rand.Rand
	log logrus.FieldLogger
}

// NewGenerator creates a Generator. A nil rng is seeded from the clock; a nil
// logger uses the logrus standard logger.
func NewGenerator(rng *rand.Rand, log logrus.FieldLogger) *Generator {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{rng: rng, log: log}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds the question sequence for a session. The count is the
// difficulty's target capped to the pool size, and each entry is used as a
// correct answer at most once.
func (g *Generator) Generate(in GenerateInput) ([]*Question, error) {
	fields := logrus.Fields{
		"difficulty": in.Difficulty,
		"mode":       in.Mode,
	}
	if len(in.Pool) == 0 {
		g.log.WithFields(fields).Error("word pool is empty, cannot generate questions")
		return nil, ErrEmptyPool
	}

	count := min(QuestionCount(in.Difficulty), len(in.Pool))
	questions := make([]*Question, 0, count)
	used := make(map[int]bool, count)

	for i := 0; i < count; i++ {
		// Terminates: fewer than len(Pool) indices are used at this point.
		idx := g.rng.IntN(len(in.Pool))
		for used[idx] {
			idx = g.rng.IntN(len(in.Pool))
		}
		used[idx] = true

		correct := in.Pool[idx]
		mode := g.displayMode(in.QuestionType)

		options := make([]Option, 0, OptionsPerQuestion)
		options = append(options, Option{
			Text:          correct.Text,
			Pronunciation: correct.Pronunciation,
			IsCorrect:     true,
		})
		options = append(options, g.distractors(correct, in.Pool, mode)...)
		g.rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		questions = append(questions, &Question{
			ID:          fmt.Sprintf("q_%d", i+1),
			DisplayMode: mode,
			Correct:     correct,
			Options:     options,
		})
	}

	fields["questions"] = len(questions)
	fields["pool"] = len(in.Pool)
	g.log.WithFields(fields).Debug("questions generated")
	return questions, nil
}

func (g *Generator) displayMode(t QuestionType) DisplayMode {
	switch t {
	case TypeShowPronunciation:
		return ModeShowPronunciation
	case TypeShowCharacter:
		return ModeShowCharacter
	}
	if g.rng.IntN(2) == 0 {
		return ModeShowPronunciation
	}
	return ModeShowCharacter
}

// distractors samples up to 3 options whose comparison key differs from the
// correct answer and from each other, trying at most twice the pool size.
// Short pools are topped up with placeholder options.
func (g *Generator) distractors(correct corpus.Entry, pool []corpus.Entry, mode DisplayMode) []Option {
	seen := map[string]bool{
		comparisonKey(mode, correct.Text, correct.Pronunciation): true,
	}
	out := make([]Option, 0, distractorCount)

	maxAttempts := 2 * len(pool)
	for attempts := 0; len(out) < distractorCount && attempts < maxAttempts; attempts++ {
		c := pool[g.rng.IntN(len(pool))]
		key := comparisonKey(mode, c.Text, c.Pronunciation)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Option{Text: c.Text, Pronunciation: c.Pronunciation})
	}

	for n := len(out); len(out) < distractorCount; n++ {
		opt := placeholder(correct, mode, n)
		key := opt.Key(mode)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, opt)
	}
	return out
}

// placeholder pairs the correct answer's non-compared side with a filler
// on the compared side.
func placeholder(correct corpus.Entry, mode DisplayMode, n int) Option {
	if mode == ModeShowCharacter {
		return Option{Text: correct.Text, Pronunciation: fmt.Sprintf("pin%d", n)}
	}
	return Option{Text: fmt.Sprintf("字%d", n), Pronunciation: correct.Pronunciation}
}
