// Package prompt provides the operator decision providers.
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrAborted is returned when the operator ends input (EOF or interrupt).
var ErrAborted = errors.New("input aborted")

// Decider answers the questions the pipeline asks the operator.
// Implementations retry invalid input themselves; callers only see valid
// answers or an error.
type Decider interface {
	// Confirm asks a yes/no question.
	Confirm(question string) (bool, error)
	// AskText asks for free text. Empty answers are allowed.
	AskText(question string) (string, error)
	// AskNumber asks for a real number; an empty answer yields def.
	AskNumber(question string, def float64) (float64, error)
	// AskChoice asks for one of options and returns its index.
	AskChoice(question string, options []string) (int, error)
	// AskSelection asks for numbers 1..count and returns the distinct
	// zero-based indices in the order given. The result may be empty.
	AskSelection(question string, count int) ([]int, error)
}

// ParseYesNo reads a y/n answer.
func ParseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// ParseNumber reads a real number. Empty input yields def.
func ParseNumber(s string, def float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseChoice matches an answer against options by full name, initial or
// 1-based number, ignoring case.
func ParseChoice(s string, options []string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	for i, opt := range options {
		if s == strings.ToLower(opt) {
			return i, true
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
		return n - 1, true
	}
	match := -1
	for i, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), s) {
			if match >= 0 {
				return 0, false
			}
			match = i
		}
	}
	return match, match >= 0
}

// Rejection explains why a selection token was ignored.
type Rejection struct {
	Token  string
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("Number '%s' %s.", r.Token, r.Reason)
}

// ParseSelection reads space-separated 1-based numbers up to count.
// Duplicates are kept once; invalid tokens are returned as rejections.
func ParseSelection(s string, count int) ([]int, []Rejection) {
	var (
		picked   []int
		rejected []Rejection
		seen     = make(map[int]bool)
	)
	for _, tok := range strings.Fields(s) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > count {
			rejected = append(rejected, Rejection{Token: tok, Reason: "is invalid"})
			continue
		}
		if seen[n-1] {
			rejected = append(rejected, Rejection{Token: tok, Reason: "has multiple entries, added only once"})
			continue
		}
		seen[n-1] = true
		picked = append(picked, n-1)
	}
	return picked, rejected
}
