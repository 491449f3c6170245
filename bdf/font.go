// Package bdf parses Glyph Bitmap Distribution Format fonts into a glyph
// table and maps text onto glyph sequences.
package bdf

import (
	"io"
	"sort"

	"golang.org/x/text/encoding/charmap"

	"github.com/ByLCY/marquee/logging"
	"github.com/ByLCY/marquee/result"
)

// RepresentativeRune is the glyph whose metrics stand for the whole font.
const RepresentativeRune = 'a'

// Font owns the glyphs of one parsed BDF file, keyed by character code.
type Font struct {
	header     Header
	characters map[uint32]Character
	dropped    []error
	charset    *charmap.Charmap
}

// NewFont builds a font from already parsed glyphs. When two glyphs share a
// code the first one wins.
func NewFont(header Header, characters []Character) *Font {
	f := &Font{
		header:     header,
		characters: make(map[uint32]Character, len(characters)),
		charset:    charsetFor(header.CharsetRegistry, header.CharsetEncoding),
	}
	for _, ch := range characters {
		if _, exists := f.characters[ch.Code()]; exists {
			logging.Logger().Debug("duplicate glyph encoding ignored", "glyph", ch.Name, "code", ch.Code())
			continue
		}
		f.characters[ch.Code()] = ch
	}
	return f
}

// Parse reads a whole BDF document from r.
func Parse(r io.Reader) result.Result[*Font] {
	data, err := io.ReadAll(r)
	if err != nil {
		return result.Err[*Font](err)
	}
	return ParseString(string(data))
}

// ParseString parses a whole BDF document. Malformed glyphs are dropped and
// reported through Dropped; the call fails only when no glyph survives.
func ParseString(text string) result.Result[*Font] {
	lines := splitLines(text)
	headerLines, charLines, firstCharLine := splitDocument(lines)
	header := parseHeader(headerLines)

	for i, line := range charLines {
		if hasKeyword(line, "CHARS") {
			if prop, err := ParsePropertyLine(line); err == nil {
				if ints, err := prop.Ints(); err == nil && len(ints) == 1 {
					header.Chars = ints[0]
				}
			}
			charLines[i] = ""
		}
	}

	log := logging.Logger()
	var (
		characters []Character
		dropped    []error
	)
	for _, b := range splitBlocks(charLines, firstCharLine) {
		parseBlock(b).Match(
			func(ch Character) { characters = append(characters, ch) },
			func(err error) {
				log.Debug("glyph dropped", "error", err)
				dropped = append(dropped, err)
			},
		)
	}

	if len(characters) == 0 {
		return result.Err[*Font](&Error{Kind: KindEmptyFont, Msg: "no characters found for font"})
	}
	if len(dropped) > 0 {
		log.Warn("font parsed with malformed glyphs", "font", header.Name, "glyphs", len(characters), "dropped", len(dropped))
	}

	f := NewFont(header, characters)
	f.dropped = dropped
	log.Info("font loaded", "font", header.Name, "glyphs", f.Len())
	return result.Ok(f)
}

// splitDocument separates the properties section from the character
// section. Without an ENDPROPERTIES line, characters start at the first
// STARTCHAR.
func splitDocument(lines []string) (header, chars []string, firstCharLine int) {
	for i, line := range lines {
		if line == markerEndProperties {
			return lines[:i], lines[i+1:], i + 2
		}
	}
	for i, line := range lines {
		if hasKeyword(line, markerStartChar) {
			return lines[:i], lines[i:], i + 1
		}
	}
	return lines, nil, len(lines) + 1
}

// Header returns the global font information.
func (f *Font) Header() Header { return f.header }

// Len returns the number of glyphs.
func (f *Font) Len() int { return len(f.characters) }

// Dropped returns the errors of glyphs that were discarded while parsing.
func (f *Font) Dropped() []error { return f.dropped }

// Codes returns every glyph code in ascending order.
func (f *Font) Codes() []uint32 {
	codes := make([]uint32, 0, len(f.characters))
	for code := range f.characters {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Character looks a glyph up by its code.
func (f *Font) Character(code uint32) result.Result[Character] {
	if ch, ok := f.characters[code]; ok {
		return result.Ok(ch)
	}
	return result.Err[Character](&Error{Kind: KindUnresolvedCharacter, Code: code, Msg: "could not find character encoding"})
}

// CharacterFor looks a glyph up by rune, mapping through the font charset.
func (f *Font) CharacterFor(r rune) result.Result[Character] {
	code, ok := f.codeFor(r)
	if !ok {
		return result.Err[Character](&Error{Kind: KindUnresolvedCharacter, Code: uint32(r), Msg: "rune not representable in font charset"})
	}
	return f.Character(code)
}

// Encode maps every rune of message to a glyph. It fails if any rune has no
// glyph.
func (f *Font) Encode(message string) result.Result[[]Character] {
	glyphs := make([]Character, 0, len(message))
	for _, r := range message {
		res := f.CharacterFor(r)
		if !res.IsOk() {
			return result.Err[[]Character](res.Err())
		}
		glyphs = append(glyphs, res.Value())
	}
	return result.Ok(glyphs)
}

// EncodeWithDefault maps every rune of message to a glyph, substituting def
// for runes the font cannot resolve. The result always has one glyph per
// rune.
func (f *Font) EncodeWithDefault(message string, def Character) []Character {
	glyphs := make([]Character, 0, len(message))
	for _, r := range message {
		glyphs = append(glyphs, f.CharacterFor(r).OrElse(def))
	}
	return glyphs
}

// EncodeWithDefaultCode is EncodeWithDefault with the substitute given as a
// rune. A default that is itself missing is a caller configuration error.
func (f *Font) EncodeWithDefaultCode(message string, def rune) result.Result[[]Character] {
	ch := f.CharacterFor(def)
	if !ch.IsOk() {
		return result.Err[[]Character](&Error{Kind: KindMisconfiguredDefault, Code: uint32(def), Msg: "default character does not exist in the selected font"})
	}
	return result.Ok(f.EncodeWithDefault(message, ch.Value()))
}

// MustEncodeWithDefault is EncodeWithDefaultCode for callers that have
// already validated def. It panics with a KindMisconfiguredDefault error
// otherwise.
func (f *Font) MustEncodeWithDefault(message string, def rune) []Character {
	return f.EncodeWithDefaultCode(message, def).Must()
}

// BoundingBoxOf returns the bounding box of the glyph for r.
func (f *Font) BoundingBoxOf(r rune) (BoundingBox, bool) {
	res := f.CharacterFor(r)
	if !res.IsOk() {
		return BoundingBox{}, false
	}
	return res.Value().Properties.BoundingBox, true
}

// RepresentativeBoundingBox returns the bounding box of 'a', used by callers
// that need one glyph metric for the whole font.
func (f *Font) RepresentativeBoundingBox() (BoundingBox, bool) {
	return f.BoundingBoxOf(RepresentativeRune)
}
