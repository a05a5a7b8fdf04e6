package questionbank

// Question is one multiple-choice item of a bank. It is never mutated once
// loaded; sessions work on copies.
type Question struct {
	ID         int       `json:"id"`
	Text       string    `json:"question"`
	Options    OptionSet `json:"options"`
	CorrectKey OptionKey `json:"answer"`
}

// CorrectText returns the text of the correct option, if the bank has one.
func (q Question) CorrectText() (string, bool) {
	return q.Options.Text(q.CorrectKey)
}

type QuestionBank struct {
	Name      string
	Questions []Question
}

func New(name string) *QuestionBank {
	return &QuestionBank{
		Name:      name,
		Questions: []Question{},
	}
}

// NewWithQuestions wraps already loaded questions.
func NewWithQuestions(name string, questions []Question) *QuestionBank {
	return &QuestionBank{
		Name:      name,
		Questions: questions,
	}
}

func (qb *QuestionBank) Len() int {
	return len(qb.Questions)
}
