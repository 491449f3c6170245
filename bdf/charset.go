package bdf

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// charsetFor returns the single-byte charmap matching a BDF
// CHARSET_REGISTRY/CHARSET_ENCODING pair, or nil when glyph codes are
// Unicode code points (ISO10646, unknown or empty registries).
func charsetFor(registry, encoding string) *charmap.Charmap {
	reg := strings.ToUpper(strings.TrimSpace(registry))
	enc := strings.ToUpper(strings.TrimSpace(encoding))
	switch reg {
	case "ISO8859":
		switch enc {
		case "2":
			return charmap.ISO8859_2
		case "3":
			return charmap.ISO8859_3
		case "4":
			return charmap.ISO8859_4
		case "5":
			return charmap.ISO8859_5
		case "6":
			return charmap.ISO8859_6
		case "7":
			return charmap.ISO8859_7
		case "8":
			return charmap.ISO8859_8
		case "9":
			return charmap.ISO8859_9
		case "10":
			return charmap.ISO8859_10
		case "13":
			return charmap.ISO8859_13
		case "14":
			return charmap.ISO8859_14
		case "15":
			return charmap.ISO8859_15
		case "16":
			return charmap.ISO8859_16
		}
		// ISO8859-1 is the identity mapping for code points below 256.
		return nil
	case "KOI8":
		switch enc {
		case "R":
			return charmap.KOI8R
		case "U":
			return charmap.KOI8U
		}
	case "MICROSOFT", "WINDOWS":
		switch strings.TrimPrefix(enc, "CP") {
		case "1250":
			return charmap.Windows1250
		case "1251":
			return charmap.Windows1251
		case "1252":
			return charmap.Windows1252
		}
	}
	return nil
}

// codeFor maps a rune to the glyph code space of the font.
func (f *Font) codeFor(r rune) (uint32, bool) {
	if f.charset == nil {
		if r < 0 {
			return 0, false
		}
		return uint32(r), true
	}
	b, ok := f.charset.EncodeRune(r)
	if !ok {
		return 0, false
	}
	return uint32(b), true
}
