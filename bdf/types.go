package bdf

// MaxGlyphWidth is the widest glyph a bitmap row can hold.
const MaxGlyphWidth = 32

// BoundingBox is a glyph's pixel extent and its offset from the origin.
type BoundingBox struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	XOrigin int `json:"xOrigin"`
	YOrigin int `json:"yOrigin"`
}

// BoundingBoxFromProperty builds a BoundingBox from a parsed "BBX w h x y"
// property.
func BoundingBoxFromProperty(key string, values []int) (BoundingBox, error) {
	if key != keyBoundingBox {
		return BoundingBox{}, glyphError(KindInvalidKey, "invalid key %q for bounding box", key)
	}
	if len(values) != 4 {
		return BoundingBox{}, glyphError(KindArgumentCount, "bounding box needs 4 values, got %d", len(values))
	}
	box := BoundingBox{Width: values[0], Height: values[1], XOrigin: values[2], YOrigin: values[3]}
	if box.Width <= 0 || box.Height <= 0 {
		return BoundingBox{}, glyphError(KindInvalidValue, "bounding box %dx%d must be positive", box.Width, box.Height)
	}
	if box.Width > MaxGlyphWidth {
		return BoundingBox{}, glyphError(KindInvalidValue, "bounding box width %d exceeds %d", box.Width, MaxGlyphWidth)
	}
	return box, nil
}

// Pair is an x/y value pair (SWIDTH, DWIDTH).
type Pair struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CharacterProperties is the metadata block of one glyph.
type CharacterProperties struct {
	Encoding      uint32      `json:"encoding"`
	ScalableWidth Pair        `json:"scalableWidth"`
	DeviceWidth   Pair        `json:"deviceWidth"`
	BoundingBox   BoundingBox `json:"boundingBox"`
}

// Character is one glyph: metrics plus one left-aligned bitmask per row.
// Values are immutable once parsed; Bitmap must not be modified.
type Character struct {
	Name       string              `json:"name,omitempty"`
	Properties CharacterProperties `json:"properties"`
	Bitmap     []uint32            `json:"bitmap"`
}

// Code returns the glyph's character code.
func (c Character) Code() uint32 { return c.Properties.Encoding }

// Width returns the bounding box width in pixels.
func (c Character) Width() int { return c.Properties.BoundingBox.Width }

// Height returns the bounding box height in pixels.
func (c Character) Height() int { return c.Properties.BoundingBox.Height }

// RowBytes is the number of bytes each bitmap row is padded to.
func (c Character) RowBytes() int {
	return (c.Width() + 7) / 8
}

// Ink reports whether the pixel at (col, row) of the glyph is set. Bits are
// read from the most significant padded bit, one per column.
func (c Character) Ink(col, row int) bool {
	if col < 0 || col >= c.Width() || row < 0 || row >= len(c.Bitmap) {
		return false
	}
	shift := uint(8*c.RowBytes() - 1 - col)
	return (c.Bitmap[row]>>shift)&1 == 1
}
