package shuntingyard

import (
	"errors"
	"testing"

	"github.com/spicery/shunting-yard/pkg/tokenizer"
)

func FuzzConvert(f *testing.F) {
	f.Add(`"azerty" / V1 + V2 * sin(10)`)
	f.Add("max(sin(V1), V2 + 1)")
	f.Add("(1 + 2")
	f.Add("1, 2")
	f.Add(")(")
	sy := NewDefaultConverter()
	tk := tokenizer.NewDefaultTokenizer()
	f.Fuzz(func(t *testing.T, s string) {
		tokens, err := tk.Tokenize(s)
		if err != nil {
			return
		}
		var open, close int
		for _, tok := range tokens {
			switch tok.Type {
			case tokenizer.OpenBracketType:
				open++
			case tokenizer.CloseBracketType:
				close++
			}
		}

		rpn, err := sy.Convert(s)
		if err != nil {
			if !errors.Is(err, ErrUnmatchedBracket) && !errors.Is(err, ErrMismatchedBrackets) {
				t.Fatalf("unexpected error for %q: %v", s, err)
			}
			return
		}
		if open != close {
			t.Fatalf("%q: %d open and %d close brackets converted without error", s, open, close)
		}
		for _, tok := range rpn {
			switch tok.Type {
			case tokenizer.OpenBracketType, tokenizer.CloseBracketType, tokenizer.ParamSeparatorType:
				t.Fatalf("%q: %s left in RPN %v", s, tok.Type, rpn)
			}
		}
	})
}
