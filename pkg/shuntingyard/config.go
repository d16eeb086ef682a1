package shuntingyard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spicery/shunting-yard/pkg/tokenizer"
)

// Associativity decides how operators of equal precedence group.
type Associativity int

const (
	Left Associativity = iota
	Right
)

func (a Associativity) String() string {
	if a == Right {
		return "right"
	}
	return "left"
}

// MarshalText implements encoding.TextMarshaler, so tables round-trip
// through YAML as "left" / "right".
func (a Associativity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Associativity) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "left":
		*a = Left
	case "right":
		*a = Right
	default:
		return fmt.Errorf("unknown associativity '%s'", text)
	}
	return nil
}

// Config describes a grammar to the converter. Precedence and Associativity
// are keyed by operator literal (or, as a fallback, by tag); the remaining
// fields classify token tags.
type Config struct {
	Precedence    map[string]int
	Associativity map[string]Associativity

	ValueTypes         []tokenizer.TokenType
	FunctionTypes      []tokenizer.TokenType
	OperatorTypes      []tokenizer.TokenType
	ParamSeparatorType tokenizer.TokenType
	OpenBracketType    tokenizer.TokenType
	CloseBracketType   tokenizer.TokenType
}

// ErrConflictingTypes is returned when one tag is given two classifications.
var ErrConflictingTypes = errors.New("conflicting token type classification")

// kind is what the converter does with a token.
type kind int

const (
	kindNone kind = iota
	kindValue
	kindFunction
	kindOperator
	kindSeparator
	kindOpen
	kindClose
)

func (k kind) String() string {
	switch k {
	case kindValue:
		return "value"
	case kindFunction:
		return "function"
	case kindOperator:
		return "operator"
	case kindSeparator:
		return "separator"
	case kindOpen:
		return "open bracket"
	case kindClose:
		return "close bracket"
	}
	return "none"
}

// buildKinds derives the dispatch table from the classification sets.
// Returns an error if a tag is classified twice.
func (c *Config) buildKinds() (map[tokenizer.TokenType]kind, error) {
	kinds := make(map[tokenizer.TokenType]kind)

	add := func(t tokenizer.TokenType, k kind) error {
		if t == "" {
			return nil
		}
		if existing, exists := kinds[t]; exists && existing != k {
			return fmt.Errorf("%w: type '%s' is both %s and %s", ErrConflictingTypes, t, existing, k)
		}
		kinds[t] = k
		return nil
	}

	for _, t := range c.ValueTypes {
		if err := add(t, kindValue); err != nil {
			return nil, err
		}
	}
	for _, t := range c.FunctionTypes {
		if err := add(t, kindFunction); err != nil {
			return nil, err
		}
	}
	for _, t := range c.OperatorTypes {
		if err := add(t, kindOperator); err != nil {
			return nil, err
		}
	}
	if err := add(c.ParamSeparatorType, kindSeparator); err != nil {
		return nil, err
	}
	if err := add(c.OpenBracketType, kindOpen); err != nil {
		return nil, err
	}
	if err := add(c.CloseBracketType, kindClose); err != nil {
		return nil, err
	}
	return kinds, nil
}

// clone copies the tables so later changes by the caller are not observed.
func (c Config) clone() Config {
	out := c
	out.Precedence = make(map[string]int, len(c.Precedence))
	for k, v := range c.Precedence {
		out.Precedence[k] = v
	}
	out.Associativity = make(map[string]Associativity, len(c.Associativity))
	for k, v := range c.Associativity {
		out.Associativity[k] = v
	}
	out.ValueTypes = append([]tokenizer.TokenType(nil), c.ValueTypes...)
	out.FunctionTypes = append([]tokenizer.TokenType(nil), c.FunctionTypes...)
	out.OperatorTypes = append([]tokenizer.TokenType(nil), c.OperatorTypes...)
	return out
}

// precedence looks an operator up by literal, then by tag. Unlisted
// operators bind loosest.
func (c *Config) precedence(t tokenizer.Token) int {
	if p, ok := c.Precedence[t.Value]; ok {
		return p
	}
	return c.Precedence[string(t.Type)]
}

// associativity looks an operator up by literal, then by tag, defaulting to
// Left.
func (c *Config) associativity(t tokenizer.Token) Associativity {
	if a, ok := c.Associativity[t.Value]; ok {
		return a
	}
	return c.Associativity[string(t.Type)]
}

// DefaultConfig returns the classification and tables of the reference
// grammar: % ~ ^ bind tightest and group to the right, then & * /, then
// + -, then comparisons.
func DefaultConfig() Config {
	return Config{
		Precedence: map[string]int{
			"%": 4, "~": 4, "^": 4,
			"&": 3, "*": 3, "/": 3,
			"+": 2, "-": 2,
			">": 1, "<": 1, ">=": 1, "<=": 1, "=": 1, "<>": 1,
		},
		Associativity: map[string]Associativity{
			"%": Right, "~": Right, "^": Right,
			"&": Left, "*": Left, "/": Left,
			"+": Left, "-": Left,
			">": Left, "<": Left, ">=": Left, "<=": Left, "=": Left, "<>": Left,
		},
		ValueTypes:         []tokenizer.TokenType{tokenizer.VariableType, tokenizer.StringType, tokenizer.NumericType},
		FunctionTypes:      []tokenizer.TokenType{tokenizer.FunctionType},
		OperatorTypes:      []tokenizer.TokenType{tokenizer.OperatorType},
		ParamSeparatorType: tokenizer.ParamSeparatorType,
		OpenBracketType:    tokenizer.OpenBracketType,
		CloseBracketType:   tokenizer.CloseBracketType,
	}
}
