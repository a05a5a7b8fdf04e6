// Package console is the terminal presentation layer. It renders the state
// of a quiz session and forwards selections and the submit action to it.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/remaimber-it/quiz/internal/access"
	practicesession "github.com/remaimber-it/quiz/internal/domain/practice_session"
)

var (
	// ErrAborted is returned when the user quits or input ends before submitting.
	ErrAborted = errors.New("quiz aborted before submission")

	// ErrAccessDenied is returned when the passphrase is not accepted.
	ErrAccessDenied = errors.New("access denied")
)

const help = "Enter an option number to answer, n/p to move, s to submit, q to quit."

type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

func New(in io.Reader, out io.Writer, logger *slog.Logger) *Console {
	return &Console{
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Authorize asks for the passphrase up to attempts times.
func (c *Console) Authorize(gate *access.Gate, attempts int) error {
	if gate.Open() {
		return nil
	}

	for i := 0; i < attempts; i++ {
		fmt.Fprint(c.out, "Passphrase: ")
		line, ok := c.readLine()
		if !ok {
			return ErrAccessDenied
		}
		if gate.Allow(line) {
			return nil
		}
		fmt.Fprintln(c.out, "Wrong passphrase.")
		c.logger.Warn("passphrase rejected", "attempt", i+1)
	}
	return ErrAccessDenied
}

// Run drives an initialized session until the user submits or quits.
func (c *Console) Run(session *practicesession.PracticeSession) error {
	questions := session.Questions()
	if session.State() != practicesession.StateInProgress {
		return &practicesession.InvalidStateError{Op: "run console", State: session.State()}
	}

	fmt.Fprintf(c.out, "Quiz App: %d questions\n%s\n", len(questions), help)
	if len(questions) == 0 {
		fmt.Fprintln(c.out, "The question bank is empty.")
	}

	current := 0
	for {
		if len(questions) > 0 {
			q := questions[current]
			selected, _ := session.Selected(q.ID)
			fmt.Fprintln(c.out)
			RenderQuestion(c.out, q, selected)
		}

		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok {
			return ErrAborted
		}
		cmd := strings.ToLower(strings.TrimSpace(line))

		switch cmd {
		case "q", "quit":
			return ErrAborted
		case "s", "submit":
			score, review, err := session.Submit()
			if err != nil {
				fmt.Fprintf(c.out, "Cannot submit: %v\n", err)
				continue
			}
			c.logger.Info("session submitted",
				"session_id", session.ID,
				"correct", score.Correct,
				"incorrect", score.Incorrect,
			)
			fmt.Fprintln(c.out)
			RenderResult(c.out, score, review)
			return nil
		case "n", "":
			if current < len(questions)-1 {
				current++
			}
		case "p":
			if current > 0 {
				current--
			}
		case "?", "h", "help":
			fmt.Fprintln(c.out, help)
		default:
			if len(questions) == 0 {
				fmt.Fprintln(c.out, help)
				continue
			}
			q := questions[current]
			n, err := strconv.Atoi(cmd)
			if err != nil || n < 1 || n > len(q.Options) {
				fmt.Fprintf(c.out, "Unknown input %q. %s\n", cmd, help)
				continue
			}
			if err := session.SelectAnswer(q.ID, q.Options[n-1].Key); err != nil {
				fmt.Fprintf(c.out, "Cannot select: %v\n", err)
				continue
			}
			if current < len(questions)-1 {
				current++
			}
		}
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			c.logger.Error("read input", "error", err)
		}
		return "", false
	}
	return c.in.Text(), true
}
