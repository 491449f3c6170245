package bdf

import "testing"

func TestParsePropertyLine(t *testing.T) {
	prop, err := ParsePropertyLine(`BBX 7 13 0 -2`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ints, err := prop.Ints()
	if err != nil {
		t.Fatalf("ints failed: %v", err)
	}
	if prop.Key != "BBX" || len(ints) != 4 || ints[3] != -2 {
		t.Fatalf("unexpected property: %s %v", prop.Key, ints)
	}
}

func TestParsePropertyLineStrings(t *testing.T) {
	prop, err := ParsePropertyLine(`COPYRIGHT "Public ""domain"" font"`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := prop.Text(); got != `Public "domain" font` {
		t.Fatalf("unexpected text %q", got)
	}
	if _, err := prop.Ints(); KindOf(err) != KindInvalidValue {
		t.Fatalf("expected invalid value for string property, got %v", err)
	}
}

func TestParsePropertyLineWords(t *testing.T) {
	prop, err := ParsePropertyLine(`FONT -Misc-Fixed-Bold-R-Normal--13-120-75-75-C-70-ISO10646-1`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if prop.Key != "FONT" || prop.Text() != "-Misc-Fixed-Bold-R-Normal--13-120-75-75-C-70-ISO10646-1" {
		t.Fatalf("unexpected property %s %q", prop.Key, prop.Text())
	}
}
