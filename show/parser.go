// Package show parses show scripts, the small DSL describing what a marquee
// plays, and compiles them into animation steps.
package show

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	showLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})\b`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Duration", Pattern: `\d+(?:ms|s|m)\b`},
		{Name: "Number", Pattern: `-?\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `;`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(showLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Document is the root of a show script.
type Document struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Name       string         `parser:"Newline* 'show' @Ident"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Statement is one line of the show body.
type Statement struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Set    *Setting       `parser:"  @@"`
	Scroll *Scroll        `parser:"| @@"`
	Text   *Text          `parser:"| @@"`
	Image  *Image         `parser:"| @@"`
	Fill   *Fill          `parser:"| @@"`
	Clear  *Clear         `parser:"| @@"`
}

// Kind returns the statement keyword.
func (s *Statement) Kind() string {
	switch {
	case s == nil:
		return "unknown"
	case s.Set != nil:
		return "set"
	case s.Scroll != nil:
		return "scroll"
	case s.Text != nil:
		return "text"
	case s.Image != nil:
		return "image"
	case s.Fill != nil:
		return "fill"
	case s.Clear != nil:
		return "clear"
	default:
		return "unknown"
	}
}

// Setting changes a default for the statements that follow it.
type Setting struct {
	Key   string `parser:"'set' @Ident"`
	Value *Value `parser:"@@"`
}

// Value is a setting value.
type Value struct {
	Duration *Duration      `parser:"  @Duration"`
	Color    *string        `parser:"| @Color"`
	Point    *Point         `parser:"| @@"`
	String   *StringLiteral `parser:"| @String"`
}

// Point is an "x y" pixel position.
type Point struct {
	X int `parser:"@Number"`
	Y int `parser:"@Number"`
}

// Scroll scrolls a message across the frame.
type Scroll struct {
	Message StringLiteral `parser:"'scroll' @String"`
	Options []*Option     `parser:"@@*"`
}

// Text shows a static message.
type Text struct {
	Message StringLiteral `parser:"'text' @String"`
	Options []*Option     `parser:"@@*"`
}

// Image shows a picture loaded from a file.
type Image struct {
	Path    StringLiteral `parser:"'image' @String"`
	Options []*Option     `parser:"@@*"`
}

// Fill paints the whole frame.
type Fill struct {
	Color   string    `parser:"'fill' @Color"`
	Options []*Option `parser:"@@*"`
}

// Clear blanks the frame.
type Clear struct {
	Options []*Option `parser:"'clear' @@*"`
}

// Option is a trailing modifier. Which options a statement accepts is
// checked by Build.
type Option struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Every *Duration      `parser:"  'every' @Duration"`
	At    *Point         `parser:"| 'at' @@"`
	Color *string        `parser:"| 'color' @Color"`
	For   *Duration      `parser:"| 'for' @Duration"`
	Wrap  bool           `parser:"| @'wrap'"`
}

// Name returns the option keyword.
func (o *Option) Name() string {
	switch {
	case o.Every != nil:
		return "every"
	case o.At != nil:
		return "at"
	case o.Color != nil:
		return "color"
	case o.For != nil:
		return "for"
	case o.Wrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Duration captures 70ms / 5s / 1m tokens.
type Duration time.Duration

// Capture implements participle.Capture.
func (d *Duration) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("duration capture requires value")
	}
	v, err := time.ParseDuration(values[0])
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Parse parses a show script from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses a show script from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
