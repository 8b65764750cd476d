package keyboard

import (
	"errors"
	"strings"
	"testing"
)

const testSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="40" viewBox="0 0 100 40">
  <g id="keys">
    <rect id="A" x="0" y="0" width="20" height="20" style="fill:none;fill-opacity:1;stroke:#000000"/>
    <rect id="B" x="20" y="0" width="20" height="20" style='stroke:#000000;fill:none;fill-opacity:1;'/>
    <rect id="Space" x="0" y="20" width="60" height="20"></rect>
  </g>
</svg>`

func TestKeyID(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{'a', "A"},
		{'Z', "Z"},
		{'1', "1"},
		{' ', "Space"},
		{'\n', "Enter"},
		{'`', "backtick"},
		{'-', "minus"},
		{'=', "equals"},
		{'[', "open_square"},
		{']', "closed_square"},
		{'\\', "backslash"},
		{';', "semicolon"},
		{'\'', "tick"},
		{',', "comma"},
		{'.', "period"},
		{'/', "forwardslash"},
		{'ä', "Ä"},
	}

	for _, tt := range tests {
		if got := KeyID(tt.in); got != tt.want {
			t.Errorf("KeyID(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestStyleApply(t *testing.T) {
	tests := []struct {
		decl string
		want string
	}{
		{"fill:none;fill-opacity:1;stroke:#000", "fill:black;fill-opacity:0.2;stroke:#000"},
		{"stroke:#000;", "stroke:#000;fill:black;fill-opacity:0.2"},
		{"", "fill:black;fill-opacity:0.2"},
		{"stroke:#000", "stroke:#000;fill:black;fill-opacity:0.2"},
		{" fill : red ;stroke-width:2", "fill:black;stroke-width:2;fill-opacity:0.2"},
	}

	for _, tt := range tests {
		if got := Highlighted.Apply(tt.decl); got != tt.want {
			t.Errorf("Apply(%q): expected %q, got %q", tt.decl, tt.want, got)
		}
	}
}

func TestParseAndWith(t *testing.T) {
	doc, err := Parse([]byte(testSVG))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for _, id := range []string{"keys", "A", "B", "Space"} {
		if !doc.Has(id) {
			t.Errorf("Expected element %q to be indexed", id)
		}
	}

	pressed, err := doc.With("A", Highlighted)
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	s := string(pressed)
	if !strings.Contains(s, `id="A" x="0" y="0" width="20" height="20" style="fill:black;fill-opacity:0.2;stroke:#000000"`) {
		t.Errorf("Key A was not highlighted:\n%s", s)
	}
	if !strings.Contains(s, `style='stroke:#000000;fill:none;fill-opacity:1;'`) {
		t.Errorf("Key B should be untouched:\n%s", s)
	}

	// the base document stays idle
	if string(doc.Bytes()) != testSVG {
		t.Error("Base document was mutated")
	}

	released, err := doc.With("A", Idle)
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if string(released) != testSVG {
		t.Errorf("Idle snapshot should equal the base document:\n%s", released)
	}
}

func TestWithInsertsStyle(t *testing.T) {
	doc, err := Parse([]byte(testSVG))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out, err := doc.With("Space", Highlighted)
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if !strings.Contains(string(out), `<rect id="Space" x="0" y="20" width="60" height="20" style="fill:black;fill-opacity:0.2"></rect>`) {
		t.Errorf("Style attribute was not inserted:\n%s", out)
	}

	if _, err := Parse(out); err != nil {
		t.Errorf("Snapshot is not valid XML: %v", err)
	}
}

func TestMissingKey(t *testing.T) {
	doc, err := Parse([]byte(testSVG))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = doc.With("Q", Highlighted)
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("Expected ErrMissingKey, got %v", err)
	}

	err = doc.Check("AB A!")
	var mk *MissingKeyError
	if !errors.As(err, &mk) {
		t.Fatalf("Expected MissingKeyError, got %v", err)
	}
	if mk.Char != '!' || mk.Key != "!" {
		t.Errorf("Expected offending character '!', got %q (%s)", mk.Char, mk.Key)
	}

	if err := doc.Check("ab ba"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte(`<svg><rect id="A" x=1/></svg>`)); err == nil {
		t.Error("Expected error for malformed svg")
	}
}
