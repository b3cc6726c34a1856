package quiz

// CheckAnswer reports whether submitted is the correct answer to q. Display
// mode A compares text, mode B compares pronunciation. Missing inputs and
// already answered questions are never correct. CheckAnswer does not modify
// q; callers record the outcome with Question.MarkAnswered.
func CheckAnswer(q *Question, submitted *Option) bool {
	if q == nil || submitted == nil || q.Answered {
		return false
	}
	want := comparisonKey(q.DisplayMode, q.Correct.Text, q.Correct.Pronunciation)
	return submitted.Key(q.DisplayMode) == want
}
