package bdf

import (
	"strconv"
	"strings"
)

// Header holds the global font information found before ENDPROPERTIES.
type Header struct {
	Name            string            `json:"name,omitempty"`
	Size            int               `json:"size,omitempty"`
	XResolution     int               `json:"xResolution,omitempty"`
	YResolution     int               `json:"yResolution,omitempty"`
	BoundingBox     BoundingBox       `json:"boundingBox"`
	HasBoundingBox  bool              `json:"hasBoundingBox"`
	Ascent          int               `json:"ascent,omitempty"`
	Descent         int               `json:"descent,omitempty"`
	CharsetRegistry string            `json:"charsetRegistry,omitempty"`
	CharsetEncoding string            `json:"charsetEncoding,omitempty"`
	DefaultChar     int               `json:"defaultChar"` // -1 when absent
	Chars           int               `json:"chars,omitempty"`
	Properties      map[string]string `json:"properties,omitempty"`
}

// parseHeader reads the properties section. Lines that do not tokenise are
// skipped; a broken header never fails the font.
func parseHeader(lines []string) Header {
	h := Header{DefaultChar: -1, Properties: map[string]string{}}
	for _, line := range lines {
		if line == "" || hasKeyword(line, markerComment) {
			continue
		}
		prop, err := ParsePropertyLine(line)
		if err != nil {
			continue
		}
		ints, intErr := prop.Ints()
		switch prop.Key {
		case "STARTFONT", "STARTPROPERTIES", markerEndProperties:
		case "FONT":
			h.Name = prop.Text()
		case "SIZE":
			if intErr == nil && len(ints) >= 1 {
				h.Size = ints[0]
				if len(ints) >= 3 {
					h.XResolution, h.YResolution = ints[1], ints[2]
				}
			}
		case "FONTBOUNDINGBOX":
			if intErr == nil && len(ints) == 4 {
				h.BoundingBox = BoundingBox{Width: ints[0], Height: ints[1], XOrigin: ints[2], YOrigin: ints[3]}
				h.HasBoundingBox = true
			}
		default:
			h.Properties[prop.Key] = prop.Text()
		}
	}

	h.CharsetRegistry = h.Properties["CHARSET_REGISTRY"]
	h.CharsetEncoding = h.Properties["CHARSET_ENCODING"]
	h.Ascent = propertyInt(h.Properties, "FONT_ASCENT", 0)
	h.Descent = propertyInt(h.Properties, "FONT_DESCENT", 0)
	h.DefaultChar = propertyInt(h.Properties, "DEFAULT_CHAR", -1)
	if h.Ascent == 0 && h.Descent == 0 && h.HasBoundingBox {
		h.Ascent = h.BoundingBox.Height + h.BoundingBox.YOrigin
		h.Descent = -h.BoundingBox.YOrigin
	}
	return h
}

func propertyInt(props map[string]string, key string, fallback int) int {
	raw, ok := props[key]
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}
