// Package wrongwords tracks words the learner has missed and moves them
// through review until they are mastered.
package wrongwords

import (
	"time"

	"github.com/abhisek/hanziquiz/internal/corpus"
)

// ReviewsToMaster is the number of consecutive correct reviews that masters
// a record.
const ReviewsToMaster = 3

// State is a record's position in the review lifecycle.
type State string

const (
	StateNew      State = "new"
	StateActive   State = "active"
	StateMastered State = "mastered"
)

// Record is one missed word, keyed by its text and pronunciation.
type Record struct {
	ID                  string            `json:"id"`
	Text                string            `json:"text"`
	Pronunciation       string            `json:"pinyin"`
	WrongCount          int               `json:"wrongCount"`
	FirstWrongAt        time.Time         `json:"firstWrongAt"`
	LastWrongAt         time.Time         `json:"lastWrongAt"`
	Source              string            `json:"source"`
	Difficulty          corpus.Difficulty `json:"difficulty"`
	IsMastered          bool              `json:"isMastered"`
	MasteredAt          *time.Time        `json:"masteredAt"`
	ReviewCorrectStreak int               `json:"reviewCorrectStreak"`
}

// State derives the lifecycle state from the record's fields.
func (r Record) State() State {
	switch {
	case r.IsMastered:
		return StateMastered
	case r.WrongCount > 0:
		return StateActive
	default:
		return StateNew
	}
}

// Entry maps the record back to a pool entry for review sessions.
func (r Record) Entry() corpus.Entry {
	return corpus.Entry{
		Text:          r.Text,
		Pronunciation: r.Pronunciation,
		Source:        r.Source,
		Category:      corpus.Classify(r.Text),
	}
}

// Statistics are derived from the full record set.
type Statistics struct {
	TotalWrongWords int `json:"totalWrongWords"`
	UnmasteredCount int `json:"unmasteredCount"`
	MasteredCount   int `json:"masteredCount"`
}

// Book is the persisted shape of the wrong-word ledger.
type Book struct {
	Words      []Record   `json:"words"`
	Statistics Statistics `json:"statistics"`
}

// ComputeStatistics counts records by mastery.
func ComputeStatistics(words []Record) Statistics {
	s := Statistics{TotalWrongWords: len(words)}
	for _, w := range words {
		if w.IsMastered {
			s.MasteredCount++
		} else {
			s.UnmasteredCount++
		}
	}
	return s
}
