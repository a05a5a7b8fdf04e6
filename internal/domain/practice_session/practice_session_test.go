package practicesession_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	practicesession "github.com/remaimber-it/quiz/internal/domain/practice_session"
	"github.com/remaimber-it/quiz/internal/domain/questionbank"
	"github.com/remaimber-it/quiz/internal/domain/randomizer"
)

func question(id int, correct questionbank.OptionKey) questionbank.Question {
	return questionbank.Question{
		ID:   id,
		Text: fmt.Sprintf("Question %d", id),
		Options: questionbank.OptionSet{
			{Key: "a", Text: fmt.Sprintf("q%d-a", id)},
			{Key: "b", Text: fmt.Sprintf("q%d-b", id)},
			{Key: "c", Text: fmt.Sprintf("q%d-c", id)},
			{Key: "d", Text: fmt.Sprintf("q%d-d", id)},
		},
		CorrectKey: correct,
	}
}

func createBank(n int) []questionbank.Question {
	bank := make([]questionbank.Question, n)
	for i := range bank {
		bank[i] = question(i+1, questionbank.CanonicalKeys[i%4])
	}
	return bank
}

func newSession(t *testing.T, bank []questionbank.Question) *practicesession.PracticeSession {
	t.Helper()
	s := practicesession.New(randomizer.NewSeeded(1), practicesession.DefaultConfig())
	s.Initialize(bank)
	return s
}

func TestNew_StartsLoading(t *testing.T) {
	s := practicesession.New(nil, practicesession.DefaultConfig())

	if s.State() != practicesession.StateLoading {
		t.Errorf("expected state %s, got %s", practicesession.StateLoading, s.State())
	}
	if s.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestInitialize_IncludesAllQuestions(t *testing.T) {
	bank := createBank(10)
	s := practicesession.New(randomizer.NewSeeded(5), practicesession.DefaultConfig())

	questions := s.Initialize(bank)

	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}
	if s.State() != practicesession.StateInProgress {
		t.Errorf("expected state %s, got %s", practicesession.StateInProgress, s.State())
	}

	seen := make(map[int]bool)
	for i, q := range questions {
		if q.Position != i+1 {
			t.Errorf("expected position %d, got %d", i+1, q.Position)
		}
		seen[q.ID] = true
	}
	if len(seen) != 10 {
		t.Errorf("expected 10 distinct ids, got %d", len(seen))
	}
}

func TestInitialize_RandomizesQuestions(t *testing.T) {
	bank := createBank(20)
	first := newSession(t, bank).Questions()

	for seed := uint64(2); seed < 12; seed++ {
		s := practicesession.New(randomizer.NewSeeded(seed), practicesession.DefaultConfig())
		if !sameOrder(first, s.Initialize(bank)) {
			return
		}
	}
	t.Error("expected questions to be randomized across sessions")
}

func TestInitialize_KeepsKeyTextPairs(t *testing.T) {
	bank := createBank(8)
	s := newSession(t, bank)

	for _, q := range s.Questions() {
		original := bank[q.ID-1]
		if q.CorrectKey != original.CorrectKey {
			t.Errorf("question %d: correct key changed from %q to %q", q.ID, original.CorrectKey, q.CorrectKey)
		}
		for _, o := range original.Options {
			if text, _ := q.Options.Text(o.Key); text != o.Text {
				t.Errorf("question %d: key %q maps to %q, expected %q", q.ID, o.Key, text, o.Text)
			}
		}
	}

	if bank[0].Options[0].Key != "a" {
		t.Error("expected bank options untouched")
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	bank := createBank(15)
	s := newSession(t, bank)
	first := s.Questions()

	again := s.Initialize(createBank(3))
	if !sameOrder(first, again) {
		t.Error("expected second Initialize to return the stored order")
	}

	if _, _, err := s.Submit(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameOrder(first, s.Initialize(bank)) {
		t.Error("expected Initialize after completion to return the stored order")
	}
	if s.State() != practicesession.StateCompleted {
		t.Errorf("expected state %s, got %s", practicesession.StateCompleted, s.State())
	}
}

func TestInitialize_MaxQuestions(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		bank  int
		want  int
	}{
		{"limit below bank", 20, 100, 20},
		{"limit above bank", 20, 5, 5},
		{"no limit", 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := practicesession.DefaultConfig().WithMaxQuestions(tt.limit)
			s := practicesession.New(randomizer.NewSeeded(9), config)

			if got := len(s.Initialize(createBank(tt.bank))); got != tt.want {
				t.Errorf("expected %d questions, got %d", tt.want, got)
			}
		})
	}
}

func TestInitialize_WithoutOptionShuffle(t *testing.T) {
	config := practicesession.DefaultConfig()
	config.ShuffleOptions = false
	s := practicesession.New(randomizer.NewSeeded(4), config)

	for _, q := range s.Initialize(createBank(6)) {
		keys := q.Options.Keys()
		for i, k := range questionbank.CanonicalKeys {
			if keys[i] != k {
				t.Fatalf("question %d: expected bank option order, got %v", q.ID, keys)
			}
		}
	}
}

func TestSelectAnswer_BeforeInitialize(t *testing.T) {
	s := practicesession.New(nil, practicesession.DefaultConfig())

	err := s.SelectAnswer(1, "a")
	if !errors.Is(err, practicesession.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}

	var stateErr *practicesession.InvalidStateError
	if !errors.As(err, &stateErr) || stateErr.State != practicesession.StateLoading {
		t.Errorf("expected InvalidStateError in loading state, got %v", err)
	}
}

func TestSelectAnswer_UnknownQuestion(t *testing.T) {
	s := newSession(t, createBank(3))

	if err := s.SelectAnswer(99, "a"); !errors.Is(err, practicesession.ErrUnknownQuestion) {
		t.Errorf("expected ErrUnknownQuestion, got %v", err)
	}
	if s.AnsweredCount() != 0 {
		t.Errorf("expected no answers, got %d", s.AnsweredCount())
	}
}

func TestSelectAnswer_OverwritesPreviousSelection(t *testing.T) {
	bank := createBank(5)
	s := newSession(t, bank)

	for i := 0; i < 50; i++ {
		id := i%5 + 1
		if err := s.SelectAnswer(id, questionbank.CanonicalKeys[i%4]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.AnsweredCount() > len(bank) {
			t.Fatalf("answer map grew to %d entries for %d questions", s.AnsweredCount(), len(bank))
		}
	}

	if s.AnsweredCount() != 5 {
		t.Errorf("expected 5 answers, got %d", s.AnsweredCount())
	}

	answers := s.Answers()
	if len(answers) != 5 {
		t.Errorf("expected answer map of 5 entries, got %v", answers)
	}
	answers[1] = "z"
	if key, _ := s.Selected(1); key == "z" {
		t.Error("expected Answers to return a copy")
	}

	// i=49 was the last write for question 5
	if key, ok := s.Selected(5); !ok || key != questionbank.CanonicalKeys[49%4] {
		t.Errorf("expected last selection %q, got %q", questionbank.CanonicalKeys[49%4], key)
	}
}

func TestSubmit_MixedScenario(t *testing.T) {
	bank := []questionbank.Question{question(1, "b"), question(2, "c")}
	s := newSession(t, bank)

	if err := s.SelectAnswer(1, "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.Correct != 1 || score.Incorrect != 1 {
		t.Errorf("expected 1 correct and 1 incorrect, got %+v", score)
	}

	if len(review) != 1 {
		t.Fatalf("expected 1 review entry, got %d", len(review))
	}

	want := practicesession.ReviewEntry{
		QuestionNumber: 2,
		QuestionText:   "Question 2",
		SelectedText:   practicesession.NoAnswer,
		CorrectText:    "q2-c",
	}
	if review[0] != want {
		t.Errorf("expected %+v, got %+v", want, review[0])
	}
}

func TestSubmit_PerfectScore(t *testing.T) {
	s := newSession(t, []questionbank.Question{question(1, "a")})

	if err := s.SelectAnswer(1, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	score, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.Correct != 1 || score.Incorrect != 0 {
		t.Errorf("expected 1 correct, got %+v", score)
	}
	if got := fmt.Sprintf("%.2f", practicesession.ComputeScorePercent(score)); got != "100.00" {
		t.Errorf("expected 100.00, got %s", got)
	}
	if len(review) != 0 {
		t.Errorf("expected empty review, got %v", review)
	}
}

func TestSubmit_LastSelectionWins(t *testing.T) {
	s := newSession(t, []questionbank.Question{question(1, "d")})

	s.SelectAnswer(1, "a")
	s.SelectAnswer(1, "d")

	score, _, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Correct != 1 {
		t.Errorf("expected question scored with %q, got %+v", "d", score)
	}
}

func TestSubmit_WrongAnswerReview(t *testing.T) {
	s := newSession(t, []questionbank.Question{question(7, "a")})

	s.SelectAnswer(7, "c")

	_, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(review) != 1 || review[0].SelectedText != "q7-c" || review[0].CorrectText != "q7-a" {
		t.Errorf("unexpected review %+v", review)
	}
}

func TestSubmit_TotalsMatchQuestionCount(t *testing.T) {
	bank := createBank(12)

	for answered := 0; answered <= len(bank); answered++ {
		s := newSession(t, bank)
		for _, q := range s.Questions()[:answered] {
			s.SelectAnswer(q.ID, questionbank.CanonicalKeys[(q.ID*3)%4])
		}

		score, review, err := s.Submit()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if score.Total() != len(bank) {
			t.Errorf("answered=%d: expected total %d, got %d", answered, len(bank), score.Total())
		}
		if len(review) != score.Incorrect {
			t.Errorf("answered=%d: expected %d review entries, got %d", answered, score.Incorrect, len(review))
		}
	}
}

func TestSubmit_ReviewFollowsSessionOrder(t *testing.T) {
	s := newSession(t, createBank(10))

	_, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	questions := s.Questions()
	for i, entry := range review {
		if entry.QuestionNumber != questions[i].ID {
			t.Fatalf("review[%d] is question %d, expected %d", i, entry.QuestionNumber, questions[i].ID)
		}
	}
}

func TestQuestions_CallerChangesDoNotLeak(t *testing.T) {
	s := newSession(t, []questionbank.Question{question(1, "b")})
	s.SelectAnswer(1, "a")

	qs := s.Questions()
	for i := range qs[0].Options {
		qs[0].Options[i].Text = "changed"
	}
	qs[0].Options[0], qs[0].Options[1] = qs[0].Options[1], qs[0].Options[0]

	again := s.Questions()
	for _, o := range again[0].Options {
		if o.Text == "changed" {
			t.Fatalf("expected stored options untouched, got %+v", again[0].Options)
		}
	}

	_, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(review) != 1 || review[0].CorrectText != "q1-b" || review[0].SelectedText != "q1-a" {
		t.Errorf("expected review with stored texts, got %+v", review)
	}
}

func TestSubmit_DanglingCorrectKeyAlwaysIncorrect(t *testing.T) {
	q := question(1, "e")
	s := newSession(t, []questionbank.Question{q})

	s.SelectAnswer(1, "e")

	score, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Correct != 0 || score.Incorrect != 1 {
		t.Errorf("expected question scored incorrect, got %+v", score)
	}
	if review[0].SelectedText != practicesession.NoAnswer || review[0].CorrectText != "" {
		t.Errorf("unexpected review %+v", review[0])
	}
}

func TestSubmit_IsTerminal(t *testing.T) {
	s := newSession(t, []questionbank.Question{question(1, "a"), question(2, "b")})
	s.SelectAnswer(1, "a")

	first, _, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SelectAnswer(2, "b"); !errors.Is(err, practicesession.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState from SelectAnswer, got %v", err)
	}
	if _, _, err := s.Submit(); !errors.Is(err, practicesession.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState from Submit, got %v", err)
	}

	score, review, ok := s.Result()
	if !ok {
		t.Fatal("expected result after completion")
	}
	if score != first {
		t.Errorf("expected score %+v unchanged, got %+v", first, score)
	}
	if len(review) != 1 {
		t.Errorf("expected 1 review entry, got %d", len(review))
	}
	if _, answered := s.Selected(2); answered {
		t.Error("expected rejected selection not to be recorded")
	}
}

func TestSubmit_BeforeInitialize(t *testing.T) {
	s := practicesession.New(nil, practicesession.DefaultConfig())

	if _, _, err := s.Submit(); !errors.Is(err, practicesession.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if _, _, ok := s.Result(); ok {
		t.Error("expected no result before completion")
	}
}

func TestComputeScorePercent(t *testing.T) {
	tests := []struct {
		score practicesession.ScoreResult
		want  float64
	}{
		{practicesession.ScoreResult{Correct: 1, Incorrect: 0}, 100},
		{practicesession.ScoreResult{Correct: 1, Incorrect: 3}, 25},
		{practicesession.ScoreResult{Correct: 0, Incorrect: 2}, 0},
	}

	for _, tt := range tests {
		if got := tt.score.Percent(); got != tt.want {
			t.Errorf("%+v: expected %v, got %v", tt.score, tt.want, got)
		}
	}

	if !math.IsNaN(practicesession.ComputeScorePercent(practicesession.ScoreResult{})) {
		t.Error("expected NaN for an empty score")
	}
}

func TestEmptyBank(t *testing.T) {
	s := newSession(t, nil)

	score, review, err := s.Submit()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Total() != 0 || len(review) != 0 {
		t.Errorf("expected empty result, got %+v %v", score, review)
	}
}

// Helper to check if two question slices have the same order
func sameOrder(a, b []practicesession.SessionQuestion) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
