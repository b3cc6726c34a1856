package progress

import "github.com/samber/lo"

// MaxHistory is the number of finished sessions kept.
const MaxHistory = 50

// RecentGames is how many entries the recent view shows.
const RecentGames = 7

// HistoryStatistics summarize the kept history.
type HistoryStatistics struct {
	TotalGames      int     `json:"totalGames"`
	TotalScore      int     `json:"totalScore"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

// History is the persisted game history, newest first.
type History struct {
	History    []SessionResult   `json:"history"`
	Statistics HistoryStatistics `json:"statistics"`
}

// Add returns h with r prepended, trimmed to MaxHistory and with fresh
// statistics. h itself is not modified.
func (h History) Add(r SessionResult) History {
	entries := make([]SessionResult, 0, min(len(h.History)+1, MaxHistory))
	entries = append(entries, r)
	for _, e := range h.History {
		if len(entries) == MaxHistory {
			break
		}
		entries = append(entries, e)
	}
	return History{History: entries, Statistics: computeHistoryStats(entries)}
}

// Recent returns up to n newest entries.
func (h History) Recent(n int) []SessionResult {
	if n <= 0 || n > len(h.History) {
		n = len(h.History)
	}
	return h.History[:n]
}

func computeHistoryStats(entries []SessionResult) HistoryStatistics {
	if len(entries) == 0 {
		return HistoryStatistics{}
	}
	return HistoryStatistics{
		TotalGames: len(entries),
		TotalScore: lo.SumBy(entries, func(r SessionResult) int { return r.Score }),
		AverageAccuracy: lo.SumBy(entries, func(r SessionResult) float64 { return r.Accuracy }) /
			float64(len(entries)),
	}
}
