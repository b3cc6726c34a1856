// Package progress holds session results and folds them into the learner's
// cumulative progress and game history.
package progress

import (
	"time"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/scoring"
)

// QuestionOutcome is the record of one answered (or skipped) question.
type QuestionOutcome struct {
	Text           string `json:"text"`
	Pronunciation  string `json:"pinyin"`
	DisplayMode    string `json:"displayMode"`
	Answered       bool   `json:"answered"`
	IsCorrect      bool   `json:"isCorrect"`
	UserAnswer     string `json:"userAnswer,omitempty"`
	ResponseTimeMs int64  `json:"responseTimeMs"`
}

// SessionResult is the outcome of a finished session. It is not modified
// after it is built.
type SessionResult struct {
	ID             string            `json:"id"`
	Difficulty     corpus.Difficulty `json:"difficulty"`
	Mode           string            `json:"mode"`
	TotalQuestions int               `json:"totalQuestions"`
	CorrectCount   int               `json:"correctCount"`
	WrongCount     int               `json:"wrongCount"`
	Accuracy       float64           `json:"accuracy"`
	MaxCombo       int               `json:"maxCombo"`
	DurationSecs   int               `json:"duration"`
	Score          int               `json:"score"`
	Breakdown      scoring.Breakdown `json:"scoreBreakdown"`
	Stars          int               `json:"stars"`
	FinishedAt     time.Time         `json:"finishTime"`
	Questions      []QuestionOutcome `json:"questions,omitempty"`
}
