package practicesession

import (
	"errors"
	"fmt"
)

// State is the lifecycle stage of a session.
type State int

const (
	StateLoading State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrInvalidState matches every *InvalidStateError.
	ErrInvalidState = errors.New("invalid session state")

	// ErrUnknownQuestion is returned when an answer targets a question that
	// is not part of the session.
	ErrUnknownQuestion = errors.New("question not in session")
)

// InvalidStateError is returned when an operation is attempted outside the
// state that allows it.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: session is %s", e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
