// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/remaimber-it/quiz/internal/domain/questionbank"
)

const schema = `
CREATE TABLE IF NOT EXISTS banks (
    name TEXT PRIMARY KEY,
    imported_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    bank_name TEXT NOT NULL,
    position INTEGER NOT NULL,
    question_id INTEGER NOT NULL,
    text TEXT NOT NULL,
    answer TEXT NOT NULL,
    PRIMARY KEY (bank_name, position),
    FOREIGN KEY (bank_name) REFERENCES banks(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS question_options (
    bank_name TEXT NOT NULL,
    question_position INTEGER NOT NULL,
    position INTEGER NOT NULL,
    option_key TEXT NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (bank_name, question_position, position),
    FOREIGN KEY (bank_name, question_position) REFERENCES questions(bank_name, position) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBank replaces the bank stored under bank.Name. Question and option
// order are kept.
func (s *SQLiteStore) SaveBank(ctx context.Context, bank *questionbank.QuestionBank) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteBank(ctx, tx, bank.Name); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO banks (name, imported_at) VALUES (?, ?)",
		bank.Name, time.Now().Unix(),
	); err != nil {
		return err
	}

	for pos, q := range bank.Questions {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO questions (bank_name, position, question_id, text, answer) VALUES (?, ?, ?, ?, ?)",
			bank.Name, pos, q.ID, q.Text, string(q.CorrectKey),
		); err != nil {
			return fmt.Errorf("insert question %d: %w", q.ID, err)
		}

		for optPos, o := range q.Options {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO question_options (bank_name, question_position, position, option_key, text) VALUES (?, ?, ?, ?, ?)",
				bank.Name, pos, optPos, string(o.Key), o.Text,
			); err != nil {
				return fmt.Errorf("insert option %q of question %d: %w", o.Key, q.ID, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetBank(ctx context.Context, name string) (*questionbank.QuestionBank, error) {
	var importedAt int64
	err := s.db.QueryRowContext(ctx, "SELECT imported_at FROM banks WHERE name = ?", name).Scan(&importedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT position, question_id, text, answer FROM questions WHERE bank_name = ? ORDER BY position",
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bank := questionbank.New(name)
	positions := make(map[int]int) // stored position → index in bank.Questions
	for rows.Next() {
		var (
			pos    int
			q      questionbank.Question
			answer string
		)
		if err := rows.Scan(&pos, &q.ID, &q.Text, &answer); err != nil {
			return nil, err
		}
		q.CorrectKey = questionbank.OptionKey(answer)
		positions[pos] = len(bank.Questions)
		bank.Questions = append(bank.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	optRows, err := s.db.QueryContext(ctx,
		"SELECT question_position, option_key, text FROM question_options WHERE bank_name = ? ORDER BY question_position, position",
		name,
	)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var (
			qPos int
			key  string
			text string
		)
		if err := optRows.Scan(&qPos, &key, &text); err != nil {
			return nil, err
		}
		i, ok := positions[qPos]
		if !ok {
			continue
		}
		bank.Questions[i].Options = append(bank.Questions[i].Options, questionbank.Option{
			Key:  questionbank.OptionKey(key),
			Text: text,
		})
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *SQLiteStore) ListBanks(ctx context.Context) ([]BankInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.name, b.imported_at, COUNT(q.position)
		FROM banks b
		LEFT JOIN questions q ON q.bank_name = b.name
		GROUP BY b.name, b.imported_at
		ORDER BY b.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banks []BankInfo
	for rows.Next() {
		var (
			info       BankInfo
			importedAt int64
		)
		if err := rows.Scan(&info.Name, &importedAt, &info.Questions); err != nil {
			return nil, err
		}
		info.ImportedAt = time.Unix(importedAt, 0)
		banks = append(banks, info)
	}
	return banks, rows.Err()
}

func (s *SQLiteStore) DeleteBank(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteBank(ctx, tx, name); err != nil {
		return err
	}

	return tx.Commit()
}

// deleteBank removes a bank and its children explicitly; SQLite leaves
// foreign-key enforcement off unless asked.
func deleteBank(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM question_options WHERE bank_name = ?", name); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE bank_name = ?", name); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM banks WHERE name = ?", name)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
