package session

import (
	"strings"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/quiz"
	"github.com/abhisek/hanziquiz/internal/wrongwords"
)

// Mode selects where a session's words come from.
type Mode string

const (
	// ModeAll draws from the difficulty pool.
	ModeAll Mode = "all"
	// ModeUnit draws from the difficulty pool narrowed to one source.
	ModeUnit Mode = "unit"
	// ModeWrong reviews unmastered wrong words.
	ModeWrong Mode = "wrong"
)

// ParseMode maps a string to a Mode. Unknown values are ModeAll.
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeUnit, ModeWrong:
		return m
	default:
		return ModeAll
	}
}

// Options configure a new session.
type Options struct {
	Difficulty   corpus.Difficulty
	Mode         Mode
	QuestionType quiz.QuestionType
	// Source narrows ModeUnit sessions to entries whose source contains it.
	Source string
}

// Plan is the eligible pool chosen for a session.
type Plan struct {
	Pool []corpus.Entry

	// Review is true when the pool is the unmastered wrong-word set and
	// answers count as review attempts.
	Review bool

	// Events describe any fallback taken while choosing the pool.
	Events []Event
}

// BuildPlan chooses the pool for opts. Wrong-word mode uses the tracker's
// unmastered words and falls back to the difficulty pool, with an event,
// when there are none.
func BuildPlan(pool *corpus.Pool, tracker *wrongwords.Tracker, opts Options) Plan {
	difficultyPool := corpus.FilterByDifficulty(pool, opts.Difficulty)

	switch opts.Mode {
	case ModeWrong:
		var review []corpus.Entry
		if tracker != nil {
			review = tracker.Unmastered()
		}
		if len(review) > 0 {
			return Plan{Pool: review, Review: true}
		}
		return Plan{
			Pool: difficultyPool,
			Events: []Event{{
				Kind:    EventReviewFallback,
				Message: "no unmastered wrong words, using the full word pool",
			}},
		}
	case ModeUnit:
		return Plan{Pool: corpus.FilterBySource(difficultyPool, opts.Source)}
	default:
		return Plan{Pool: difficultyPool}
	}
}
