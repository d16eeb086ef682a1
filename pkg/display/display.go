// Package display renders token sequences for people: aligned type/value
// listings, JSON lines and tables.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spicery/shunting-yard/pkg/tokenizer"
)

// Dump renders one "TYPE VALUE" line per token, with the type column
// right-aligned to the widest type.
func Dump(tokens []tokenizer.Token) string {
	width := 0
	for _, t := range tokens {
		if len(t.Type) > width {
			width = len(t.Type)
		}
	}

	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = fmt.Sprintf("%*s %s", width, t.Type, t.Value)
	}
	return strings.Join(lines, "\n")
}

// Expression joins the token values with spaces, e.g. "a b c * +".
func Expression(tokens []tokenizer.Token) string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return strings.Join(values, " ")
}

// WriteJSONLines writes one JSON token object per line.
func WriteJSONLines(w io.Writer, tokens []tokenizer.Token) error {
	enc := json.NewEncoder(w)
	for _, t := range tokens {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

var tableStyles = map[string]table.Style{
	"LIGHT":   table.StyleLight,
	"DOUBLE":  table.StyleDouble,
	"BOLD":    table.StyleBold,
	"ROUNDED": table.StyleRounded,
	"SIMPLE":  table.StyleDefault,
}

// TableStyles lists the accepted style names for WriteTable.
func TableStyles() []string {
	return []string{"LIGHT", "DOUBLE", "BOLD", "ROUNDED", "SIMPLE"}
}

// WriteTable writes the tokens as a numbered table. An empty or unknown
// style name selects LIGHT.
func WriteTable(w io.Writer, tokens []tokenizer.Token, style string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if s, ok := tableStyles[strings.ToUpper(style)]; ok {
		tw.SetStyle(s)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	tw.AppendHeader(table.Row{"#", "TYPE", "VALUE"})
	for i, t := range tokens {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), string(t.Type), t.Value})
	}
	tw.Render()
}
