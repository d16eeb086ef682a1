package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Transform rewrites the raw text matched by a rule. The boolean result
// reports whether the token is kept; returning false drops the match from
// the token sequence while the scan still advances past it.
type Transform func(match string) (string, bool)

// Discard drops every match. It is how whitespace is elided.
func Discard(string) (string, bool) { return "", false }

// Transforms holds the built-in transforms that rules files refer to by name.
var Transforms = map[string]Transform{
	"discard": Discard,
	"trim":    func(s string) (string, bool) { return strings.TrimSpace(s), true },
	"lower":   func(s string) (string, bool) { return strings.ToLower(s), true },
	"upper":   func(s string) (string, bool) { return strings.ToUpper(s), true },
}

// ErrEmptyMatch is returned for a pattern that can match the empty string.
// Such a rule would never advance the scan.
var ErrEmptyMatch = errors.New("pattern matches the empty string")

// Rule pairs an anchored pattern with the tag of the tokens it produces.
type Rule struct {
	Pattern   *regexp.Regexp
	Type      TokenType
	Transform Transform // optional
}

// NewRule compiles pattern so that it only matches at the scan cursor.
func NewRule(pattern string, tokenType TokenType, transform Transform) (Rule, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid pattern for %s rule: %w", tokenType, err)
	}
	if re.MatchString("") {
		return Rule{}, fmt.Errorf("%s rule %q: %w", tokenType, pattern, ErrEmptyMatch)
	}
	return Rule{Pattern: re, Type: tokenType, Transform: transform}, nil
}

// MustRule is like NewRule but panics on error. It is meant for grammars
// declared as package-level literals.
func MustRule(pattern string, tokenType TokenType, transform Transform) Rule {
	rule, err := NewRule(pattern, tokenType, transform)
	if err != nil {
		panic(err)
	}
	return rule
}

// match returns the length of the text the rule matches at the start of s,
// or 0 when it does not match. Zero-length matches count as no match.
func (r Rule) match(s string) int {
	loc := r.Pattern.FindStringIndex(s)
	if loc == nil {
		return 0
	}
	return loc[1]
}

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is the serialised form of a Rule. Pattern is written unanchored.
type RuleSpec struct {
	Pattern   string    `yaml:"pattern"`
	Type      TokenType `yaml:"type"`
	Transform string    `yaml:"transform,omitempty"`
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules parses YAML rules from memory.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// Compile turns the rule specs into rules, keeping their order.
func (f *RulesFile) Compile() ([]Rule, error) {
	return CompileSpecs(f.Rules)
}

// Marshal renders the rules file as YAML.
func (f *RulesFile) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// CompileSpecs compiles an ordered list of rule specs.
func CompileSpecs(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, spec := range specs {
		if spec.Type == "" {
			return nil, fmt.Errorf("rule %d (%q) has no type", i+1, spec.Pattern)
		}
		var transform Transform
		if spec.Transform != "" {
			var ok bool
			transform, ok = Transforms[spec.Transform]
			if !ok {
				return nil, fmt.Errorf("rule %d (%s): unknown transform '%s'", i+1, spec.Type, spec.Transform)
			}
		}
		rule, err := NewRule(spec.Pattern, spec.Type, transform)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// DefaultRuleSpecs returns the reference expression grammar: quoted strings,
// V-numbered variables, lower-case function names, integers, comma
// separators, parentheses and the usual arithmetic and comparison operators.
// Whitespace is discarded.
func DefaultRuleSpecs() []RuleSpec {
	return []RuleSpec{
		{Pattern: `"(?:[^"\\]|\\["\\])+"`, Type: StringType},
		{Pattern: `V\d+`, Type: VariableType},
		{Pattern: `[a-z_]+[0-9]*`, Type: FunctionType},
		{Pattern: `\d+`, Type: NumericType},
		{Pattern: `,`, Type: ParamSeparatorType},
		{Pattern: `\(`, Type: OpenBracketType},
		{Pattern: `\)`, Type: CloseBracketType},
		{Pattern: `(<>|~|%|\+|\-|\*|/|\^|>=|<=|>|<|=|&)`, Type: OperatorType},
		{Pattern: `\s+`, Type: SpaceType, Transform: "discard"},
	}
}

// DefaultRules returns the compiled reference grammar.
// Note: the default specs are fixed, so we panic if they fail to compile
func DefaultRules() []Rule {
	rules, err := CompileSpecs(DefaultRuleSpecs())
	if err != nil {
		panic(fmt.Sprintf("Invalid default rules: %v", err))
	}
	return rules
}
