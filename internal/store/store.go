package store

import (
	"context"
	"errors"
	"time"

	"github.com/remaimber-it/quiz/internal/domain/questionbank"
)

var (
	ErrNotFound = errors.New("not found")
)

// BankInfo summarizes a stored bank without loading its questions.
type BankInfo struct {
	Name       string
	Questions  int
	ImportedAt time.Time
}

// Store is the question-bank library. Sessions never touch it; the caller
// loads a bank and hands its questions to the engine.
type Store interface {
	SaveBank(ctx context.Context, bank *questionbank.QuestionBank) error
	GetBank(ctx context.Context, name string) (*questionbank.QuestionBank, error)
	ListBanks(ctx context.Context) ([]BankInfo, error)
	DeleteBank(ctx context.Context, name string) error
}
