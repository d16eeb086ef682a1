package shuntingyard

import (
	"errors"
	"fmt"
)

// TokensGiven names the source of a conversion started from ConvertTokens.
const TokensGiven = "tokens given"

// ErrorKind classifies a ConversionError.
type ErrorKind int

const (
	// UnmatchedBracket: a separator or close bracket found no open bracket.
	UnmatchedBracket ErrorKind = iota + 1
	// MismatchedBrackets: bracket tokens were left on the stack at the end.
	MismatchedBrackets
)

func (k ErrorKind) String() string {
	switch k {
	case UnmatchedBracket:
		return "unmatched bracket"
	case MismatchedBrackets:
		return "mismatched brackets"
	}
	return "unknown"
}

// Sentinels for errors.Is.
var (
	ErrUnmatchedBracket   = errors.New("unmatched bracket")
	ErrMismatchedBrackets = errors.New("mismatched brackets")
)

// ConversionError is returned when the bracket structure of an expression
// cannot be resolved. No partial RPN accompanies it.
type ConversionError struct {
	Kind    ErrorKind
	Message string
	// Expression is the converted text, or TokensGiven.
	Expression string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s in expression %q", e.Kind, e.Message, e.Expression)
}

// Is reports whether target is the sentinel for e's kind.
func (e *ConversionError) Is(target error) bool {
	switch e.Kind {
	case UnmatchedBracket:
		return target == ErrUnmatchedBracket
	case MismatchedBrackets:
		return target == ErrMismatchedBrackets
	}
	return false
}
