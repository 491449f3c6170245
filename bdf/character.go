package bdf

import (
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/marquee/result"
)

const (
	markerEndProperties = "ENDPROPERTIES"
	markerStartChar     = "STARTCHAR"
	markerEndChar       = "ENDCHAR"
	markerBitmap        = "BITMAP"
	markerEndFont       = "ENDFONT"
	markerComment       = "COMMENT"

	keyEncoding      = "ENCODING"
	keyScalableWidth = "SWIDTH"
	keyDeviceWidth   = "DWIDTH"
	keyBoundingBox   = "BBX"
)

// block is one glyph's lines, as cut from the character section.
type block struct {
	name  string
	line  int // 1-based line of the first line of the block
	lines []string
}

// ParseCharacter parses a single STARTCHAR ... ENDCHAR block.
func ParseCharacter(text string) result.Result[Character] {
	blocks := splitBlocks(splitLines(text), 1)
	if len(blocks) != 1 {
		return result.Err[Character](glyphError(KindMissingSection, "expected one glyph block, got %d", len(blocks)))
	}
	return parseBlock(blocks[0])
}

func parseBlock(b block) result.Result[Character] {
	ch, err := buildCharacter(b)
	if err != nil {
		err.Glyph = b.name
		err.Line = b.line
		return result.Err[Character](err)
	}
	ch.Name = b.name
	return result.Ok(ch)
}

func buildCharacter(b block) (Character, *Error) {
	props, bitmap, err := splitSections(b.lines)
	if err != nil {
		return Character{}, err
	}

	properties, err := parseProperties(props)
	if err != nil {
		return Character{}, err
	}

	rows := make([]uint32, 0, len(bitmap))
	digits := 2 * Character{Properties: properties}.RowBytes()
	for _, line := range bitmap {
		if len(line) > digits {
			return Character{}, glyphError(KindInvalidValue, "bitmap row %q is wider than %d hex digits", line, digits)
		}
		v, perr := strconv.ParseUint(line, 16, 32)
		if perr != nil {
			return Character{}, glyphError(KindInvalidValue, "bitmap row %q is not a 32-bit hex value", line)
		}
		rows = append(rows, uint32(v))
	}
	if len(rows) != properties.BoundingBox.Height {
		return Character{}, glyphError(KindRowCountMismatch, "bitmap has %d rows, bounding box height is %d",
			len(rows), properties.BoundingBox.Height)
	}
	return Character{Properties: properties, Bitmap: rows}, nil
}

// splitSections drops markers and blank lines and splits the remainder on
// the BITMAP line. Exactly one BITMAP line is required.
func splitSections(lines []string) (props, bitmap []string, err *Error) {
	sections := [][]string{nil}
	for _, line := range lines {
		switch {
		case line == "":
		case line == markerEndChar, line == markerEndFont:
		case hasKeyword(line, markerStartChar), hasKeyword(line, markerComment):
		case line == markerBitmap:
			sections = append(sections, nil)
		default:
			sections[len(sections)-1] = append(sections[len(sections)-1], line)
		}
	}
	if len(sections) != 2 {
		return nil, nil, glyphError(KindMissingSection,
			"expected properties and bitmap sections, got %d section(s)", len(sections))
	}
	return sections[0], sections[1], nil
}

func parseProperties(lines []string) (CharacterProperties, *Error) {
	values := make(map[string][]int, len(lines))
	for _, line := range lines {
		prop, err := ParsePropertyLine(line)
		if err != nil {
			return CharacterProperties{}, glyphError(KindInvalidValue, "cannot parse property line %q: %v", line, err)
		}
		if !isRequiredKey(prop.Key) {
			continue
		}
		if _, seen := values[prop.Key]; seen {
			continue
		}
		ints, err := prop.Ints()
		if err != nil {
			return CharacterProperties{}, err.(*Error)
		}
		values[prop.Key] = ints
	}

	need := func(key string, n int) ([]int, *Error) {
		v, ok := values[key]
		if !ok {
			return nil, glyphError(KindMissingProperty, "missing required property %s", key)
		}
		if len(v) < n {
			return nil, glyphError(KindArgumentCount, "%s needs %d value(s), got %d", key, n, len(v))
		}
		return v, nil
	}

	encoding, err := need(keyEncoding, 1)
	if err != nil {
		return CharacterProperties{}, err
	}
	if encoding[0] < 0 {
		return CharacterProperties{}, glyphError(KindInvalidValue, "glyph has no standard encoding (%d)", encoding[0])
	}
	if int64(encoding[0]) > math.MaxUint32 {
		return CharacterProperties{}, glyphError(KindInvalidValue, "encoding %d does not fit in 32 bits", encoding[0])
	}
	swidth, err := need(keyScalableWidth, 2)
	if err != nil {
		return CharacterProperties{}, err
	}
	dwidth, err := need(keyDeviceWidth, 2)
	if err != nil {
		return CharacterProperties{}, err
	}
	bbx, ok := values[keyBoundingBox]
	if !ok {
		return CharacterProperties{}, glyphError(KindMissingProperty, "missing required property %s", keyBoundingBox)
	}
	box, berr := BoundingBoxFromProperty(keyBoundingBox, bbx)
	if berr != nil {
		return CharacterProperties{}, berr.(*Error)
	}

	return CharacterProperties{
		Encoding:      uint32(encoding[0]),
		ScalableWidth: Pair{X: swidth[0], Y: swidth[1]},
		DeviceWidth:   Pair{X: dwidth[0], Y: dwidth[1]},
		BoundingBox:   box,
	}, nil
}

func isRequiredKey(key string) bool {
	switch key {
	case keyEncoding, keyScalableWidth, keyDeviceWidth, keyBoundingBox:
		return true
	}
	return false
}

// splitBlocks cuts the character section into glyph blocks. A block ends at
// an ENDCHAR line, at the next STARTCHAR, or at the end of input. Blocks
// with no content other than ENDFONT are skipped.
func splitBlocks(lines []string, firstLine int) []block {
	var (
		blocks []block
		cur    block
		open   bool
	)
	flush := func() {
		if open && hasContent(cur.lines) {
			blocks = append(blocks, cur)
		}
		cur = block{}
		open = false
	}
	for i, line := range lines {
		lineNo := firstLine + i
		if hasKeyword(line, markerStartChar) {
			flush()
		}
		if !open {
			cur = block{line: lineNo}
			open = true
		}
		if hasKeyword(line, markerStartChar) {
			cur.name = strings.TrimSpace(strings.TrimPrefix(line, markerStartChar))
		}
		cur.lines = append(cur.lines, line)
		if line == markerEndChar {
			flush()
		}
	}
	flush()
	return blocks
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if line != "" && line != markerEndFont && line != markerEndChar {
			return true
		}
	}
	return false
}

func hasKeyword(line, keyword string) bool {
	if !strings.HasPrefix(line, keyword) {
		return false
	}
	rest := line[len(keyword):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// splitLines splits text into trimmed lines, accepting \n and \r\n.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
