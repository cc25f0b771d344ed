package prompt

import (
	"errors"
	"fmt"
)

// ErrScriptExhausted is returned when a Script runs out of answers.
var ErrScriptExhausted = errors.New("script exhausted")

// Default answers an AskNumber question with its default value.
var Default = defaultAnswer{}

type defaultAnswer struct{}

// Script is a deterministic Decider that replays typed answers in order.
// Answers are bool for Confirm, string for AskText, float64 or Default for
// AskNumber, int (index) or string (option text) for AskChoice, and []int
// (zero-based) for AskSelection.
type Script struct {
	Answers []interface{}
	// Asked records every question in order.
	Asked []string
	pos   int
}

// NewScript creates a Script with the given answers.
func NewScript(answers ...interface{}) *Script {
	return &Script{Answers: answers}
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	return len(s.Answers) - s.pos
}

func (s *Script) next(question string) (interface{}, error) {
	s.Asked = append(s.Asked, question)
	if s.pos >= len(s.Answers) {
		return nil, fmt.Errorf("%w at %q", ErrScriptExhausted, question)
	}
	a := s.Answers[s.pos]
	s.pos++
	return a, nil
}

func mismatch(question string, answer interface{}) error {
	return fmt.Errorf("script answer %v (%T) does not fit question %q", answer, answer, question)
}

// Confirm implements Decider.
func (s *Script) Confirm(question string) (bool, error) {
	a, err := s.next(question)
	if err != nil {
		return false, err
	}
	v, ok := a.(bool)
	if !ok {
		return false, mismatch(question, a)
	}
	return v, nil
}

// AskText implements Decider.
func (s *Script) AskText(question string) (string, error) {
	a, err := s.next(question)
	if err != nil {
		return "", err
	}
	v, ok := a.(string)
	if !ok {
		return "", mismatch(question, a)
	}
	return v, nil
}

// AskNumber implements Decider.
func (s *Script) AskNumber(question string, def float64) (float64, error) {
	a, err := s.next(question)
	if err != nil {
		return 0, err
	}
	switch v := a.(type) {
	case defaultAnswer:
		return def, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, mismatch(question, a)
}

// AskChoice implements Decider.
func (s *Script) AskChoice(question string, options []string) (int, error) {
	a, err := s.next(question)
	if err != nil {
		return 0, err
	}
	switch v := a.(type) {
	case int:
		if v >= 0 && v < len(options) {
			return v, nil
		}
	case string:
		if i, ok := ParseChoice(v, options); ok {
			return i, nil
		}
	}
	return 0, mismatch(question, a)
}

// AskSelection implements Decider.
func (s *Script) AskSelection(question string, count int) ([]int, error) {
	a, err := s.next(question)
	if err != nil {
		return nil, err
	}
	v, ok := a.([]int)
	if !ok {
		return nil, mismatch(question, a)
	}
	var picked []int
	seen := make(map[int]bool)
	for _, i := range v {
		if i < 0 || i >= count || seen[i] {
			continue
		}
		seen[i] = true
		picked = append(picked, i)
	}
	return picked, nil
}

var _ Decider = (*Script)(nil)
