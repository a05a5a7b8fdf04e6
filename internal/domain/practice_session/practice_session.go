package practicesession

import (
	"fmt"
	"maps"
	"slices"

	"github.com/remaimber-it/quiz/internal/domain/questionbank"
	"github.com/remaimber-it/quiz/internal/domain/randomizer"
	"github.com/remaimber-it/quiz/internal/id"
)

// SessionQuestion is a per-session copy of a bank question whose options may
// be in a different display order. Position is 1-based.
type SessionQuestion struct {
	Position int
	questionbank.Question
}

// PracticeSession is the quiz engine for one user going through one bank.
// It is not safe for concurrent use; each session has a single owner.
type PracticeSession struct {
	ID string

	config SessionConfig
	src    randomizer.Source
	state  State

	questions []SessionQuestion
	ids       map[int]struct{}
	answers   map[int]questionbank.OptionKey

	score  ScoreResult
	review []ReviewEntry
}

// New creates a session in the loading state. A nil src uses a freshly
// seeded source.
func New(src randomizer.Source, config SessionConfig) *PracticeSession {
	if src == nil {
		src = randomizer.New()
	}
	return &PracticeSession{
		ID:      id.GenerateID(),
		config:  config,
		src:     src,
		state:   StateLoading,
		answers: make(map[int]questionbank.OptionKey),
	}
}

// Initialize fixes the session's question order: questions are shuffled,
// then the options of each question. Calling it again returns the stored
// order without reshuffling.
func (s *PracticeSession) Initialize(bank []questionbank.Question) []SessionQuestion {
	if s.state != StateLoading {
		return s.Questions()
	}

	shuffled := randomizer.ShuffleSequence(s.src, bank)

	// Apply question limit if set
	if s.config.MaxQuestions != nil && *s.config.MaxQuestions > 0 && *s.config.MaxQuestions < len(shuffled) {
		shuffled = shuffled[:*s.config.MaxQuestions]
	}

	s.questions = make([]SessionQuestion, len(shuffled))
	s.ids = make(map[int]struct{}, len(shuffled))
	for i, q := range shuffled {
		if s.config.ShuffleOptions {
			q.Options = randomizer.ShuffleOptionOrder(s.src, q.Options)
		} else {
			q.Options = q.Options.Clone()
		}
		s.questions[i] = SessionQuestion{Position: i + 1, Question: q}
		s.ids[q.ID] = struct{}{}
	}

	s.state = StateInProgress
	return s.Questions()
}

// SelectAnswer records key for questionID. A later selection for the same
// question replaces the earlier one.
func (s *PracticeSession) SelectAnswer(questionID int, key questionbank.OptionKey) error {
	if s.state != StateInProgress {
		return &InvalidStateError{Op: "select answer", State: s.state}
	}
	if _, ok := s.ids[questionID]; !ok {
		return fmt.Errorf("select answer for question %d: %w", questionID, ErrUnknownQuestion)
	}

	s.answers[questionID] = key
	return nil
}

// Submit scores the session and freezes it. Unanswered questions count as
// incorrect. The review lists every missed question in session order.
func (s *PracticeSession) Submit() (ScoreResult, []ReviewEntry, error) {
	if s.state != StateInProgress {
		return ScoreResult{}, nil, &InvalidStateError{Op: "submit", State: s.state}
	}

	var score ScoreResult
	review := []ReviewEntry{}

	for _, q := range s.questions {
		selected, answered := s.answers[q.ID]
		correctText, hasCorrect := q.CorrectText()

		// A correct key missing from the options never matches.
		if answered && hasCorrect && selected == q.CorrectKey {
			score.Correct++
			continue
		}

		score.Incorrect++

		selectedText := NoAnswer
		if answered {
			if text, ok := q.Options.Text(selected); ok && text != "" {
				selectedText = text
			}
		}

		review = append(review, ReviewEntry{
			QuestionNumber: q.ID,
			QuestionText:   q.Text,
			SelectedText:   selectedText,
			CorrectText:    correctText,
		})
	}

	s.score = score
	s.review = review
	s.state = StateCompleted

	return score, slices.Clone(review), nil
}

func (s *PracticeSession) State() State {
	return s.state
}

// Questions returns a copy of the session questions in their fixed order.
// Changing the copy does not affect scoring.
func (s *PracticeSession) Questions() []SessionQuestion {
	if s.questions == nil {
		return nil
	}
	out := make([]SessionQuestion, len(s.questions))
	for i, q := range s.questions {
		out[i] = q
		out[i].Options = q.Options.Clone()
	}
	return out
}

// Selected returns the key chosen for questionID, if any.
func (s *PracticeSession) Selected(questionID int) (questionbank.OptionKey, bool) {
	key, ok := s.answers[questionID]
	return key, ok
}

// Answers returns a copy of the answer map.
func (s *PracticeSession) Answers() map[int]questionbank.OptionKey {
	return maps.Clone(s.answers)
}

func (s *PracticeSession) AnsweredCount() int {
	return len(s.answers)
}

// Result returns the score and review of a completed session.
func (s *PracticeSession) Result() (ScoreResult, []ReviewEntry, bool) {
	if s.state != StateCompleted {
		return ScoreResult{}, nil, false
	}
	return s.score, slices.Clone(s.review), true
}
