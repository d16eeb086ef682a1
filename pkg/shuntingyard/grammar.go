package shuntingyard

import (
	"fmt"
	"os"

	"github.com/spicery/shunting-yard/pkg/tokenizer"
	"gopkg.in/yaml.v3"
)

// Grammar is the YAML form of a complete expression grammar: token rules,
// operator tables and type classification.
type Grammar struct {
	Rules         []tokenizer.RuleSpec     `yaml:"rules"`
	Precedence    map[string]int           `yaml:"precedence"`
	Associativity map[string]Associativity `yaml:"associativity"`
	Types         TypeClasses              `yaml:"types"`
}

// TypeClasses maps token tags to converter roles.
type TypeClasses struct {
	Values         []tokenizer.TokenType `yaml:"values"`
	Functions      []tokenizer.TokenType `yaml:"functions"`
	Operators      []tokenizer.TokenType `yaml:"operators"`
	ParamSeparator tokenizer.TokenType   `yaml:"separator"`
	OpenBracket    tokenizer.TokenType   `yaml:"open"`
	CloseBracket   tokenizer.TokenType   `yaml:"close"`
}

// DefaultGrammar returns the reference grammar.
func DefaultGrammar() *Grammar {
	cfg := DefaultConfig()
	return &Grammar{
		Rules:         tokenizer.DefaultRuleSpecs(),
		Precedence:    cfg.Precedence,
		Associativity: cfg.Associativity,
		Types: TypeClasses{
			Values:         cfg.ValueTypes,
			Functions:      cfg.FunctionTypes,
			Operators:      cfg.OperatorTypes,
			ParamSeparator: cfg.ParamSeparatorType,
			OpenBracket:    cfg.OpenBracketType,
			CloseBracket:   cfg.CloseBracketType,
		},
	}
}

// LoadGrammarFile loads and parses a YAML grammar file
func LoadGrammarFile(filename string) (*Grammar, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar file '%s': %w", filename, err)
	}

	g, err := ParseGrammar(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in grammar file '%s': %w", filename, err)
	}
	return g, nil
}

// ParseGrammar parses a YAML grammar from memory.
func ParseGrammar(data []byte) (*Grammar, error) {
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Marshal renders the grammar as YAML.
func (g *Grammar) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

// Config returns the converter configuration described by the grammar.
func (g *Grammar) Config() Config {
	return Config{
		Precedence:         g.Precedence,
		Associativity:      g.Associativity,
		ValueTypes:         g.Types.Values,
		FunctionTypes:      g.Types.Functions,
		OperatorTypes:      g.Types.Operators,
		ParamSeparatorType: g.Types.ParamSeparator,
		OpenBracketType:    g.Types.OpenBracket,
		CloseBracketType:   g.Types.CloseBracket,
	}
}

// Converter compiles the grammar's rules and builds a converter for it.
// Options given here are applied after the grammar's own rules.
func (g *Grammar) Converter(opts ...Option) (*Converter, error) {
	if len(g.Rules) == 0 {
		return nil, fmt.Errorf("grammar has no token rules")
	}
	rules, err := tokenizer.CompileSpecs(g.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile token rules: %w", err)
	}
	return NewConverter(g.Config(), append([]Option{WithRules(rules)}, opts...)...)
}
