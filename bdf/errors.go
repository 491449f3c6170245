package bdf

import (
	"errors"
	"fmt"
)

// Sentinel errors; every *Error matches exactly one of them with errors.Is.
var (
	// ErrMalformedGlyph groups all per-glyph parse failures.
	ErrMalformedGlyph = errors.New("bdf: malformed glyph")

	// ErrEmptyFont is returned when no glyph survived parsing.
	ErrEmptyFont = errors.New("bdf: no glyphs found for font")

	// ErrUnresolvedCharacter is returned when a code has no glyph.
	ErrUnresolvedCharacter = errors.New("bdf: character encoding not present")

	// ErrMisconfiguredDefault is returned when the substitution glyph itself
	// does not exist in the font.
	ErrMisconfiguredDefault = errors.New("bdf: default character does not exist in font")
)

// Kind classifies an *Error.
type Kind int

const (
	KindMissingSection      Kind = iota + 1 // properties or bitmap block missing
	KindInvalidKey                          // BBX built from another key
	KindArgumentCount                       // wrong number of values for a key
	KindMissingProperty                     // required key absent
	KindInvalidValue                        // value not an integer / out of range
	KindRowCountMismatch                    // bitmap rows != bbx height
	KindEmptyFont
	KindUnresolvedCharacter
	KindMisconfiguredDefault
)

var kindNames = map[Kind]string{
	KindMissingSection:       "missing section",
	KindInvalidKey:           "invalid key",
	KindArgumentCount:        "argument count",
	KindMissingProperty:      "missing property",
	KindInvalidValue:         "invalid value",
	KindRowCountMismatch:     "row count mismatch",
	KindEmptyFont:            "empty font",
	KindUnresolvedCharacter:  "unresolved character",
	KindMisconfiguredDefault: "misconfigured default",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Malformed reports whether k is a per-glyph failure. Such glyphs are
// dropped from the font instead of failing the whole parse.
func (k Kind) Malformed() bool {
	return k >= KindMissingSection && k <= KindRowCountMismatch
}

// Error describes a parse or lookup failure.
type Error struct {
	Kind  Kind
	Glyph string // STARTCHAR name, if known
	Line  int    // 1-based line of the glyph block in the source, 0 if unknown
	Code  uint32 // character code for lookup failures
	Msg   string
}

func (e *Error) Error() string {
	switch {
	case e.Kind.Malformed() && e.Glyph != "" && e.Line > 0:
		return fmt.Sprintf("bdf: glyph %q (line %d): %s", e.Glyph, e.Line, e.Msg)
	case e.Kind.Malformed() && e.Glyph != "":
		return fmt.Sprintf("bdf: glyph %q: %s", e.Glyph, e.Msg)
	case e.Kind.Malformed() && e.Line > 0:
		return fmt.Sprintf("bdf: glyph at line %d: %s", e.Line, e.Msg)
	case e.Kind == KindUnresolvedCharacter, e.Kind == KindMisconfiguredDefault:
		return fmt.Sprintf("bdf: %s (code %d)", e.Msg, e.Code)
	default:
		return "bdf: " + e.Msg
	}
}

// Is maps the error kind onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformedGlyph:
		return e.Kind.Malformed()
	case ErrEmptyFont:
		return e.Kind == KindEmptyFont
	case ErrUnresolvedCharacter:
		return e.Kind == KindUnresolvedCharacter
	case ErrMisconfiguredDefault:
		return e.Kind == KindMisconfiguredDefault
	}
	return false
}

func glyphError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
