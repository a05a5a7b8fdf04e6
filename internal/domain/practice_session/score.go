package practicesession

import "math"

// NoAnswer is the selected text reported for unanswered questions.
const NoAnswer = "No answer"

// ScoreResult is computed once, when the session is submitted.
type ScoreResult struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

func (s ScoreResult) Total() int {
	return s.Correct + s.Incorrect
}

// Percent is shorthand for ComputeScorePercent(s).
func (s ScoreResult) Percent() float64 {
	return ComputeScorePercent(s)
}

// ComputeScorePercent returns 100*correct/total. It is NaN for an empty
// session; callers must guard against zero-question sessions.
func ComputeScorePercent(score ScoreResult) float64 {
	total := score.Total()
	if total == 0 {
		return math.NaN()
	}
	return 100 * float64(score.Correct) / float64(total)
}

// ReviewEntry explains one wrong or missing answer.
type ReviewEntry struct {
	QuestionNumber int    `json:"question_number"`
	QuestionText   string `json:"question"`
	SelectedText   string `json:"selected_answer"`
	CorrectText    string `json:"correct_answer"`
}
