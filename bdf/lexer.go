package bdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	propertyLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "String", Pattern: `"(?:[^"]|"")*"`},
		{Name: "Int", Pattern: `[-+]?\d+\b`},
		{Name: "Word", Pattern: `\S+`},
	})

	propertyParser = participle.MustBuild[PropertyLine](
		participle.Lexer(propertyLexer),
		participle.Elide("Whitespace"),
	)
)

// PropertyLine is one "KEY v1 v2 ..." line of a BDF file.
type PropertyLine struct {
	Key    string           `parser:"@Word"`
	Values []*PropertyValue `parser:"@@*"`
}

// PropertyValue is a single token following a key.
type PropertyValue struct {
	Int    *int    `parser:"  @Int"`
	String *Quoted `parser:"| @String"`
	Word   *string `parser:"| @Word"`
}

// Quoted unquotes a BDF string, where a doubled quote escapes a quote.
type Quoted string

// Capture implements participle.Capture.
func (q *Quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string capture requires value")
	}
	raw := values[0]
	if len(raw) < 2 {
		return fmt.Errorf("malformed string %s", raw)
	}
	*q = Quoted(strings.ReplaceAll(raw[1:len(raw)-1], `""`, `"`))
	return nil
}

// Text returns the token as it should be stored in a string property.
func (v *PropertyValue) Text() string {
	switch {
	case v.Int != nil:
		return strconv.Itoa(*v.Int)
	case v.String != nil:
		return string(*v.String)
	case v.Word != nil:
		return *v.Word
	default:
		return ""
	}
}

// Ints returns the integer values of the line, failing on the first
// non-integer token.
func (p *PropertyLine) Ints() ([]int, error) {
	ints := make([]int, 0, len(p.Values))
	for _, v := range p.Values {
		if v.Int == nil {
			return nil, glyphError(KindInvalidValue, "%s: %q is not an integer", p.Key, v.Text())
		}
		ints = append(ints, *v.Int)
	}
	return ints, nil
}

// Text joins the values back into a single string.
func (p *PropertyLine) Text() string {
	parts := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		parts = append(parts, v.Text())
	}
	return strings.Join(parts, " ")
}

// ParsePropertyLine tokenises a single property line.
func ParsePropertyLine(line string) (*PropertyLine, error) {
	return propertyParser.ParseString("", line)
}
