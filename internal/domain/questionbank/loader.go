package questionbank

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parse reads a bank in the JSON asset format:
//
//	[{"id": 1, "question": "...", "options": {"a": "...", ...}, "answer": "b"}]
//
// Integrity (duplicate ids, dangling answers) is not checked here; see Validate.
func Parse(r io.Reader) ([]Question, error) {
	var questions []Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return questions, nil
}

// LoadFile parses the bank at path. The bank is named after the file.
func LoadFile(path string) (*QuestionBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()

	questions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewWithQuestions(name, questions), nil
}

// Write encodes questions in the same format Parse reads, options in
// display order.
func Write(w io.Writer, questions []Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("encode question bank: %w", err)
	}
	return nil
}
