package progress

import (
	"time"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/scoring"
)

// Default identity for the single local learner.
const (
	DefaultUserID   = "default_user"
	DefaultUserName = "小朋友"
)

// TierStats are the per-difficulty counters.
type TierStats struct {
	TotalQuestions int     `json:"totalQuestions"`
	CorrectCount   int     `json:"correctCount"`
	Accuracy       float64 `json:"accuracy"`
}

// UserProgress is the learner's cumulative record. Only Apply changes it.
type UserProgress struct {
	UserID          string                          `json:"userId"`
	UserName        string                          `json:"userName"`
	TotalScore      int                             `json:"totalScore"`
	TotalQuestions  int                             `json:"totalQuestions"`
	CorrectCount    int                             `json:"correctCount"`
	WrongCount      int                             `json:"wrongCount"`
	Accuracy        float64                         `json:"accuracy"`
	Level           int                             `json:"level"`
	Stars           int                             `json:"stars"`
	TotalStudyTime  int                             `json:"totalStudyTime"`
	LastPlayTime    *time.Time                      `json:"lastPlayTime"`
	CreatedTime     time.Time                       `json:"createdTime"`
	Achievements    []string                        `json:"achievements"`
	DifficultyStats map[corpus.Difficulty]TierStats `json:"difficultyStats"`
}

// NewUserProgress returns the starting progress for a new learner.
func NewUserProgress(now time.Time) UserProgress {
	p := UserProgress{
		UserID:       DefaultUserID,
		UserName:     DefaultUserName,
		Level:        1,
		CreatedTime:  now,
		Achievements: []string{},
	}
	p.ensureTiers()
	return p
}

// Apply folds a finished session into p and returns the updated progress.
// Accuracy and level are recomputed from the counters rather than adjusted
// incrementally. Results with an unknown difficulty count toward simple.
func Apply(p UserProgress, r SessionResult) UserProgress {
	p.ensureTiers()

	p.TotalScore += r.Score
	p.TotalQuestions += r.TotalQuestions
	p.CorrectCount += r.CorrectCount
	p.WrongCount += r.WrongCount
	p.TotalStudyTime += r.DurationSecs
	finished := r.FinishedAt
	p.LastPlayTime = &finished

	p.Accuracy = scoring.Accuracy(p.CorrectCount, p.TotalQuestions)
	p.Level = scoring.Level(p.TotalScore)
	p.Stars += r.Stars

	d := r.Difficulty
	if !d.Valid() {
		d = corpus.DifficultySimple
	}
	tier := p.DifficultyStats[d]
	tier.TotalQuestions += r.TotalQuestions
	tier.CorrectCount += r.CorrectCount
	tier.Accuracy = scoring.Accuracy(tier.CorrectCount, tier.TotalQuestions)
	p.DifficultyStats[d] = tier

	return p
}

// MasteredWordsCount sums correct answers across every difficulty.
func (p UserProgress) MasteredWordsCount() int {
	n := 0
	for _, d := range corpus.AllDifficulties() {
		n += p.DifficultyStats[d].CorrectCount
	}
	return n
}

// ensureTiers fills missing tier entries and copies the map so that Apply
// never writes through to the caller's value.
func (p *UserProgress) ensureTiers() {
	tiers := make(map[corpus.Difficulty]TierStats, len(corpus.AllDifficulties()))
	for d, s := range p.DifficultyStats {
		tiers[d] = s
	}
	for _, d := range corpus.AllDifficulties() {
		if _, ok := tiers[d]; !ok {
			tiers[d] = TierStats{}
		}
	}
	p.DifficultyStats = tiers
	if p.Level == 0 {
		p.Level = scoring.Level(p.TotalScore)
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
}
