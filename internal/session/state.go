package session

import (
	"time"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/progress"
	"github.com/abhisek/hanziquiz/internal/quiz"
)

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseActive    Phase = iota // Waiting for an answer
	PhaseFeedback               // Current question answered
	PhaseFinished               // Scored and recorded
	PhaseAbandoned              // Discarded without scoring
)

// EventKind names something observable that happened during a session.
type EventKind string

const (
	EventReviewFallback EventKind = "review-fallback"
	EventWordMastered   EventKind = "word-mastered"
	EventPersistFailed  EventKind = "persist-failed"
)

// Event is a notable condition surfaced to the caller.
type Event struct {
	Kind    EventKind
	Message string
}

// State is one quiz run. It is owned by the caller and mutated only through
// the Engine.
type State struct {
	// ID is the UUID for this session.
	ID string

	Difficulty   corpus.Difficulty
	Mode         Mode
	QuestionType quiz.QuestionType
	Source       string

	// Review is true when answers count toward wrong-word review.
	Review bool

	Questions    []*quiz.Question
	CurrentIndex int

	CorrectCount int
	WrongCount   int
	CurrentCombo int
	MaxCombo     int

	// StartTime is when the session began.
	StartTime time.Time

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	Phase Phase

	// Events accumulates fallbacks, masteries and persistence failures.
	Events []Event

	// Result is set by Finish.
	Result *progress.SessionResult
}

// Current returns the question being asked, or nil.
func (s *State) Current() *quiz.Question {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentIndex]
}

// Total returns the number of questions in the session.
func (s *State) Total() int {
	return len(s.Questions)
}

// ProgressPercent is the share of questions already passed, rounded.
func (s *State) ProgressPercent() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return (s.CurrentIndex*100 + len(s.Questions)/2) / len(s.Questions)
}

// IsLast reports whether the current question is the final one.
func (s *State) IsLast() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)-1
}

// Accuracy is correct over answered so far, or 0 before any answer.
func (s *State) Accuracy() float64 {
	answered := s.CorrectCount + s.WrongCount
	if answered == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(answered)
}

// Done reports whether the session has been finished or abandoned.
func (s *State) Done() bool {
	return s.Phase == PhaseFinished || s.Phase == PhaseAbandoned
}

func (s *State) addEvent(kind EventKind, msg string) Event {
	e := Event{Kind: kind, Message: msg}
	s.Events = append(s.Events, e)
	return e
}
