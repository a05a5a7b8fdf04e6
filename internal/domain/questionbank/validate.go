package questionbank

import "fmt"

// Problem describes one integrity issue found in a bank.
type Problem struct {
	Index      int // position in the bank
	QuestionID int
	Message    string
}

func (p Problem) String() string {
	return fmt.Sprintf("question #%d (id %d): %s", p.Index+1, p.QuestionID, p.Message)
}

// Validate lints a bank. Sessions run on banks with problems too; a question
// whose answer key is missing simply always scores as incorrect.
func Validate(questions []Question) []Problem {
	var problems []Problem
	seen := make(map[int]int)

	for i, q := range questions {
		report := func(format string, args ...any) {
			problems = append(problems, Problem{
				Index:      i,
				QuestionID: q.ID,
				Message:    fmt.Sprintf(format, args...),
			})
		}

		if first, dup := seen[q.ID]; dup {
			report("duplicate id, first used by question #%d", first+1)
		} else {
			seen[q.ID] = i
		}

		if q.Text == "" {
			report("empty question text")
		}
		if len(q.Options) == 0 {
			report("no options")
		}
		for _, o := range q.Options {
			if o.Text == "" {
				report("option %q has empty text", o.Key)
			}
		}
		if _, ok := q.Options.Text(q.CorrectKey); !ok {
			report("answer %q is not one of the options", q.CorrectKey)
		}
	}

	return problems
}
