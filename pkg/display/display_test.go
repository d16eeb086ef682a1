package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spicery/shunting-yard/pkg/tokenizer"
	"github.com/stretchr/testify/require"
)

var rpn = []tokenizer.Token{
	{Value: `"azerty"`, Type: tokenizer.StringType},
	{Value: "V1", Type: tokenizer.VariableType},
	{Value: "/", Type: tokenizer.OperatorType},
	{Value: "10", Type: tokenizer.NumericType},
	{Value: "sin", Type: tokenizer.FunctionType},
}

func TestDump(t *testing.T) {
	expect := strings.Join([]string{
		"  STRING \"azerty\"",
		"VARIABLE V1",
		"OPERATOR /",
		" NUMERIC 10",
		"FUNCTION sin",
	}, "\n")
	require.Equal(t, expect, Dump(rpn))
	require.Equal(t, "", Dump(nil))
}

func TestExpression(t *testing.T) {
	require.Equal(t, `"azerty" V1 / 10 sin`, Expression(rpn))
	require.Equal(t, "", Expression(nil))
}

func TestWriteJSONLines(t *testing.T) {
	out := &bytes.Buffer{}
	err := WriteJSONLines(out, rpn[:2])
	require.NoError(t, err)
	require.Equal(t,
		`{"value":"\"azerty\"","type":"STRING"}`+"\n"+
			`{"value":"V1","type":"VARIABLE"}`+"\n",
		out.String())
}

func TestWriteTable(t *testing.T) {
	out := &bytes.Buffer{}
	WriteTable(out, rpn, "simple")
	text := out.String()
	require.Contains(t, text, "TYPE")
	require.Contains(t, text, "VALUE")
	require.Contains(t, text, "FUNCTION")
	require.Contains(t, text, "sin")
	// header, separators and one line per token
	require.GreaterOrEqual(t, strings.Count(text, "\n"), len(rpn)+1)

	out.Reset()
	WriteTable(out, rpn, "no-such-style")
	require.Contains(t, out.String(), "┌")
}
