package tokenizer

import (
	"fmt"
	"unicode/utf8"
)

// Tokenizer scans strings against an ordered list of rules. It holds no
// per-scan state, so a single Tokenizer may be shared between goroutines.
type Tokenizer struct {
	rules []Rule
}

// LexError reports that no rule recognises the input at Position.
type LexError struct {
	Position int    // byte offset into Input
	Line     int    // 1-based
	Column   int    // 1-based, counted in runes
	Input    string // the text being scanned
}

func (e *LexError) Error() string {
	return fmt.Sprintf("tokenisation error at line %d, column %d: unexpected %q", e.Line, e.Column, e.Near())
}

// Near returns the character at which scanning stopped.
func (e *LexError) Near() string {
	if e.Position >= len(e.Input) {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(e.Input[e.Position:])
	return string(r)
}

// NewTokenizer creates a tokenizer for the given rules. Rules are tried in
// the order given.
func NewTokenizer(rules []Rule) *Tokenizer {
	return &Tokenizer{rules: append([]Rule(nil), rules...)}
}

// NewDefaultTokenizer creates a tokenizer for the reference grammar.
func NewDefaultTokenizer() *Tokenizer {
	return &Tokenizer{rules: DefaultRules()}
}

// Rules returns a copy of the tokenizer's rules.
func (t *Tokenizer) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Scan tokenizes input with a throwaway tokenizer built from rules.
func Scan(input string, rules []Rule) ([]Token, error) {
	return NewTokenizer(rules).Tokenize(input)
}

// Tokenize processes the input and returns a slice of tokens. The first rule
// matching at the cursor wins, even if a later rule would match more text.
func (t *Tokenizer) Tokenize(input string) ([]Token, error) {
	s := scanState{input: input, line: 1, column: 1}
	tokens := make([]Token, 0)
	for s.position < len(s.input) {
		token, keep, err := t.nextToken(&s)
		if err != nil {
			return nil, err
		}
		if keep {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}

// scanState tracks the cursor of a single Tokenize call.
type scanState struct {
	input    string
	position int
	line     int
	column   int
}

// nextToken matches the rules against the text at the cursor and advances
// past the winning match.
func (t *Tokenizer) nextToken(s *scanState) (Token, bool, error) {
	rest := s.input[s.position:]
	for _, rule := range t.rules {
		n := rule.match(rest)
		if n == 0 {
			continue
		}
		text := rest[:n]
		s.advance(n)
		if rule.Transform == nil {
			return NewToken(text, rule.Type), true, nil
		}
		value, keep := rule.Transform(text)
		return NewToken(value, rule.Type), keep, nil
	}
	return Token{}, false, &LexError{
		Position: s.position,
		Line:     s.line,
		Column:   s.column,
		Input:    s.input,
	}
}

// advance moves the position forward and updates line/column tracking.
func (s *scanState) advance(n int) {
	end := s.position + n
	for s.position < end {
		r, size := utf8.DecodeRuneInString(s.input[s.position:])
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.position += size
	}
}
