package quiz

import (
	"strings"

	"github.com/abhisek/hanziquiz/internal/corpus"
)

// DisplayMode says which side of an entry a question shows.
type DisplayMode string

const (
	// ModeShowPronunciation shows the pinyin and asks for the character.
	// Options are compared by text.
	ModeShowPronunciation DisplayMode = "A"

	// ModeShowCharacter shows the character and asks for the pinyin.
	// Options are compared by pronunciation.
	ModeShowCharacter DisplayMode = "B"
)

// QuestionType pins the display mode for a whole session, or mixes both.
type QuestionType string

const (
	TypeShowPronunciation QuestionType = "A"
	TypeShowCharacter     QuestionType = "B"
	TypeMixed             QuestionType = "C"
)

// ParseQuestionType maps a string to a QuestionType. Anything unknown is mixed.
func ParseQuestionType(s string) QuestionType {
	switch QuestionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeShowPronunciation:
		return TypeShowPronunciation
	case TypeShowCharacter:
		return TypeShowCharacter
	default:
		return TypeMixed
	}
}

// Option is a candidate answer shown to the learner.
type Option struct {
	Text          string `json:"text"`
	Pronunciation string `json:"pinyin"`
	IsCorrect     bool   `json:"isCorrect"`
}

// Key returns the value options are compared on under mode.
func (o Option) Key(mode DisplayMode) string {
	return comparisonKey(mode, o.Text, o.Pronunciation)
}

// Label returns the side of the option the learner picks from.
func (o Option) Label(mode DisplayMode) string {
	return o.Key(mode)
}

// Question is one multiple-choice item. It is created at generation time
// and mutated exactly once, when the learner answers.
type Question struct {
	// ID identifies the question within its session.
	ID string

	// DisplayMode decides what is shown and what is compared.
	DisplayMode DisplayMode

	// Correct is the entry this question tests.
	Correct corpus.Entry

	// Options holds exactly 4 options in random order, one of them correct.
	Options []Option

	// Answered is set once the learner submits an option.
	Answered bool

	// IsCorrect is meaningful only when Answered is true.
	IsCorrect bool

	// UserAnswer is the submitted option (nil until answered).
	UserAnswer *Option

	// ResponseTimeMs is the time from display to submission.
	ResponseTimeMs int64
}

// Prompt returns the side of the correct entry the question displays.
func (q *Question) Prompt() string {
	if q.DisplayMode == ModeShowCharacter {
		return q.Correct.Text
	}
	return q.Correct.Pronunciation
}

// CorrectIndex returns the position of the correct option, or -1.
func (q *Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// MarkAnswered records the learner's submission. Calls after the first are
// ignored so the question keeps its original outcome.
func (q *Question) MarkAnswered(answer Option, correct bool, responseTimeMs int64) {
	if q.Answered {
		return
	}
	q.Answered = true
	q.IsCorrect = correct
	q.UserAnswer = &answer
	q.ResponseTimeMs = responseTimeMs
}

func comparisonKey(mode DisplayMode, text, pronunciation string) string {
	if mode == ModeShowCharacter {
		return pronunciation
	}
	return text
}
