package tokenizer

// TokenType is the tag a rule attaches to the text it matches. The set of
// tags is defined by the grammar, not by this package.
type TokenType string

// Tags used by the reference expression grammar returned by DefaultRules.
const (
	StringType         TokenType = "STRING"
	VariableType       TokenType = "VARIABLE"
	FunctionType       TokenType = "FUNCTION"
	NumericType        TokenType = "NUMERIC"
	ParamSeparatorType TokenType = "PARAM_SEPARATOR"
	OpenBracketType    TokenType = "OPEN_BRACKET"
	CloseBracketType   TokenType = "CLOSE_BRACKET"
	OperatorType       TokenType = "OPERATOR"
	SpaceType          TokenType = "SPACE"
)

// Token is a single lexeme: the (possibly transformed) matched text and the
// tag of the rule that matched it. Tokens are plain values and are copied
// freely between sequences.
type Token struct {
	Value string    `json:"value"`
	Type  TokenType `json:"type"`
}

// NewToken creates a new token.
func NewToken(value string, tokenType TokenType) Token {
	return Token{Value: value, Type: tokenType}
}

// String renders the token as "TYPE VALUE".
func (t Token) String() string {
	return string(t.Type) + " " + t.Value
}
