package console

import (
	"fmt"
	"io"

	practicesession "github.com/remaimber-it/quiz/internal/domain/practice_session"
	"github.com/remaimber-it/quiz/internal/domain/questionbank"
)

// RenderQuestion prints a question with its options in display order. The
// selected option is marked with '*'.
func RenderQuestion(w io.Writer, q practicesession.SessionQuestion, selected questionbank.OptionKey) {
	fmt.Fprintf(w, "%d. %s\n", q.Position, q.Text)
	for i, o := range q.Options {
		mark := " "
		if o.Key == selected {
			mark = "*"
		}
		fmt.Fprintf(w, "  %s %d) %s\n", mark, i+1, o.Text)
	}
}

// RenderResult prints the score and the review of missed questions.
func RenderResult(w io.Writer, score practicesession.ScoreResult, review []practicesession.ReviewEntry) {
	fmt.Fprintln(w, "Quiz Results")
	fmt.Fprintf(w, "Total Questions: %d\n", score.Total())
	fmt.Fprintf(w, "Correct Answers: %d\n", score.Correct)
	fmt.Fprintf(w, "Incorrect Answers: %d\n", score.Incorrect)
	if score.Total() == 0 {
		fmt.Fprintln(w, "Score: n/a")
		return
	}
	fmt.Fprintf(w, "Score: %.2f%%\n", score.Percent())
	fmt.Fprintln(w)

	if len(review) == 0 {
		fmt.Fprintln(w, "Perfect Score!")
		fmt.Fprintln(w, "Congratulations! You answered all questions correctly.")
		return
	}

	fmt.Fprintln(w, "Review Incorrect Answers")
	for _, entry := range review {
		fmt.Fprintf(w, "Question %d: %s\n", entry.QuestionNumber, entry.QuestionText)
		fmt.Fprintf(w, "  Your Answer: %s\n", entry.SelectedText)
		fmt.Fprintf(w, "  Correct Answer: %s\n", entry.CorrectText)
	}
}
