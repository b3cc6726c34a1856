// Package scoring turns a finished session's answers into points, stars and
// a level.
package scoring

import "github.com/abhisek/hanziquiz/internal/corpus"

// CompletionBonus is awarded to every finished session.
const CompletionBonus = 50

// PointsPerLevel is the cumulative score needed to advance one level.
const PointsPerLevel = 500

// Streak milestones and what crossing each one pays.
const (
	FirstComboThreshold  = 5
	FirstComboBonus      = 10
	SecondComboThreshold = 10
	SecondComboBonus     = 20
)

// BasePoints returns the points a correct answer earns at difficulty d.
// Unknown difficulties score as simple.
func BasePoints(d corpus.Difficulty) int {
	switch d {
	case corpus.DifficultyMedium:
		return 15
	case corpus.DifficultyHard:
		return 20
	default:
		return 10
	}
}

// ComboBonus replays the per-question correctness sequence. Each unbroken
// run pays once when it reaches 5 and once more when it reaches 10; longer
// runs earn nothing further until a miss resets the streak.
func ComboBonus(results []bool) int {
	bonus, streak := 0, 0
	for _, ok := range results {
		if !ok {
			streak = 0
			continue
		}
		streak++
		switch streak {
		case FirstComboThreshold:
			bonus += FirstComboBonus
		case SecondComboThreshold:
			bonus += SecondComboBonus
		}
	}
	return bonus
}

// MaxStreak returns the longest run of consecutive correct answers.
func MaxStreak(results []bool) int {
	longest, streak := 0, 0
	for _, ok := range results {
		if !ok {
			streak = 0
			continue
		}
		streak++
		longest = max(longest, streak)
	}
	return longest
}

// Breakdown is the itemized score of one session.
type Breakdown struct {
	PointsPerQuestion int `json:"pointsPerQuestion"`
	CorrectCount      int `json:"correctCount"`
	BaseScore         int `json:"baseScore"`
	ComboBonus        int `json:"comboBonus"`
	CompletionBonus   int `json:"completionBonus"`
	TotalScore        int `json:"totalScore"`
}

// Calculate scores a finished session from its answers in order.
func Calculate(d corpus.Difficulty, results []bool) Breakdown {
	b := Breakdown{
		PointsPerQuestion: BasePoints(d),
		ComboBonus:        ComboBonus(results),
		CompletionBonus:   CompletionBonus,
	}
	for _, ok := range results {
		if ok {
			b.CorrectCount++
		}
	}
	b.BaseScore = b.CorrectCount * b.PointsPerQuestion
	b.TotalScore = b.BaseScore + b.ComboBonus + b.CompletionBonus
	return b
}

// Stars rates a session accuracy (0.0-1.0) from 1 to 5.
func Stars(accuracy float64) int {
	switch {
	case accuracy >= 0.95:
		return 5
	case accuracy >= 0.85:
		return 4
	case accuracy >= 0.75:
		return 3
	case accuracy >= 0.60:
		return 2
	default:
		return 1
	}
}

// Level derives the learner level from a cumulative score.
func Level(totalScore int) int {
	if totalScore < 0 {
		return 1
	}
	return totalScore/PointsPerLevel + 1
}

// Accuracy returns correct/total, or 0 when total is 0.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
