package play

import (
	"github.com/abhisek/hanziquiz/internal/session"
)

// startedMsg carries the freshly built session.
type startedMsg struct {
	State *session.State
	Err   error
}

// feedbackDoneMsg ends the feedback pause after an answer.
type feedbackDoneMsg struct {
	// index is the question the pause belongs to, so a stale tick does not
	// skip a question the learner already moved past.
	index int
}
