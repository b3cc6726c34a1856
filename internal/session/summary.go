package session

import (
	"time"

	"github.com/abhisek/hanziquiz/internal/corpus"
	"github.com/abhisek/hanziquiz/internal/progress"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Result   progress.SessionResult
	Duration time.Duration
	Answered int
	// Missed lists the entries answered wrongly, in question order.
	Missed []corpus.Entry
	Events []Event
}

// BuildSummary creates a Summary from a finished session, or nil if the
// session has no result.
func BuildSummary(st *State) *Summary {
	if st.Result == nil {
		return nil
	}

	var missed []corpus.Entry
	answered := 0
	for _, q := range st.Questions {
		if !q.Answered {
			continue
		}
		answered++
		if !q.IsCorrect {
			missed = append(missed, q.Correct)
		}
	}

	return &Summary{
		Result:   *st.Result,
		Duration: time.Duration(st.Result.DurationSecs) * time.Second,
		Answered: answered,
		Missed:   missed,
		Events:   st.Events,
	}
}
