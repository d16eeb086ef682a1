package shuntingyard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/spicery/shunting-yard/pkg/tokenizer"
)

// Converter turns infix token sequences into RPN with the shunting-yard
// algorithm. Its configuration is fixed at construction and every
// conversion works on its own stack, so a Converter may be used from
// several goroutines at once.
type Converter struct {
	config    Config
	kinds     map[tokenizer.TokenType]kind
	tokenizer *tokenizer.Tokenizer
	logger    *slog.Logger

	mu   sync.Mutex
	last []tokenizer.Token
}

// Option configures a Converter.
type Option func(*Converter)

// WithRules sets the token rules used by Convert.
func WithRules(rules []tokenizer.Rule) Option {
	return func(c *Converter) {
		c.tokenizer = tokenizer.NewTokenizer(rules)
	}
}

// WithTokenizer sets the tokenizer used by Convert.
func WithTokenizer(t *tokenizer.Tokenizer) Option {
	return func(c *Converter) {
		c.tokenizer = t
	}
}

// WithLogger sets the sink for trace output. Stack and queue movements are
// logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// NewConverter creates a converter for cfg. Without WithRules or
// WithTokenizer, Convert uses the reference grammar rules.
func NewConverter(cfg Config, opts ...Option) (*Converter, error) {
	cfg = cfg.clone()
	kinds, err := cfg.buildKinds()
	if err != nil {
		return nil, err
	}
	c := &Converter{
		config: cfg,
		kinds:  kinds,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokenizer == nil {
		c.tokenizer = tokenizer.NewDefaultTokenizer()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c, nil
}

// NewDefaultConverter creates a converter for the reference grammar.
func NewDefaultConverter(opts ...Option) *Converter {
	c, err := NewConverter(DefaultConfig(), opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Convert tokenizes expression and converts it to RPN. A tokenisation
// failure is returned as *tokenizer.LexError.
func (c *Converter) Convert(expression string) ([]tokenizer.Token, error) {
	tokens, err := c.tokenizer.Tokenize(expression)
	if err != nil {
		return nil, err
	}
	return c.convert(tokens, expression)
}

// ConvertTokens converts a token sequence built by the caller. Errors name
// the source as TokensGiven.
func (c *Converter) ConvertTokens(tokens []tokenizer.Token) ([]tokenizer.Token, error) {
	return c.convert(tokens, TokensGiven)
}

// Tokenizer returns the tokenizer used by Convert.
func (c *Converter) Tokenizer() *tokenizer.Tokenizer {
	return c.tokenizer
}

// RPN returns the result of the last successful conversion, or nil if
// there has been none.
func (c *Converter) RPN() []tokenizer.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	return append([]tokenizer.Token(nil), c.last...)
}

func (c *Converter) convert(tokens []tokenizer.Token, expression string) ([]tokenizer.Token, error) {
	r := &run{
		Converter:  c,
		expression: expression,
		output:     make([]tokenizer.Token, 0, len(tokens)),
	}
	if err := r.process(tokens); err != nil {
		c.logger.Debug("conversion failed", "expression", expression, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.last = r.output
	c.mu.Unlock()
	return append([]tokenizer.Token(nil), r.output...), nil
}

// run is the state of a single conversion.
type run struct {
	*Converter
	expression string
	stack      []tokenizer.Token
	output     []tokenizer.Token
}

func (r *run) process(tokens []tokenizer.Token) error {
	for _, token := range tokens {
		switch r.kinds[token.Type] {
		case kindValue:
			r.emit(token)

		case kindFunction:
			r.push(token)

		case kindOperator:
			r.pushOperator(token)

		case kindSeparator:
			// Flush the current argument, leaving the open bracket in place.
			for {
				top, ok := r.peek()
				if !ok {
					return r.fail(UnmatchedBracket, "separator "+token.Value+" outside of brackets")
				}
				if r.kinds[top.Type] == kindOpen {
					break
				}
				r.emit(r.pop())
			}

		case kindOpen:
			r.push(token)

		case kindClose:
			for {
				if len(r.stack) == 0 {
					return r.fail(UnmatchedBracket, "close bracket "+token.Value+" without open bracket")
				}
				top := r.pop()
				if r.kinds[top.Type] == kindOpen {
					break
				}
				r.emit(top)
			}
			// A function directly below the bracket owns this argument list.
			if top, ok := r.peek(); ok && r.kinds[top.Type] == kindFunction {
				r.emit(r.pop())
			}

		default:
			r.debug("ignore", token)
		}
	}

	for len(r.stack) > 0 {
		top := r.pop()
		if k := r.kinds[top.Type]; k == kindOpen || k == kindClose {
			return r.fail(MismatchedBrackets, "bracket "+top.Value+" is never closed")
		}
		r.emit(top)
	}
	return nil
}

// pushOperator pops operators that bind at least as tightly (strictly
// tighter for right-associative op) before pushing op.
func (r *run) pushOperator(op tokenizer.Token) {
	prec := r.config.precedence(op)
	assoc := r.config.associativity(op)
	for {
		top, ok := r.peek()
		if !ok || r.kinds[top.Type] != kindOperator {
			break
		}
		topPrec := r.config.precedence(top)
		if (assoc == Left && prec <= topPrec) || (assoc == Right && prec < topPrec) {
			r.emit(r.pop())
			continue
		}
		break
	}
	r.push(op)
}

func (r *run) push(t tokenizer.Token) {
	r.debug("push", t)
	r.stack = append(r.stack, t)
}

func (r *run) pop() tokenizer.Token {
	t := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.debug("pop", t)
	return t
}

func (r *run) peek() (tokenizer.Token, bool) {
	if len(r.stack) == 0 {
		return tokenizer.Token{}, false
	}
	return r.stack[len(r.stack)-1], true
}

func (r *run) emit(t tokenizer.Token) {
	r.debug("output", t)
	r.output = append(r.output, t)
}

func (r *run) fail(k ErrorKind, message string) error {
	return &ConversionError{Kind: k, Message: message, Expression: r.expression}
}

func (r *run) debug(action string, t tokenizer.Token) {
	if !r.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	r.logger.Debug(action, "type", string(t.Type), "value", t.Value, "depth", len(r.stack))
}
