package keyboard

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Property is a single CSS declaration inside a style attribute.
type Property struct {
	Name  string
	Value string
}

// Style is an ordered set of declarations to patch into an element.
type Style []Property

var (
	Highlighted = Style{{"fill", "black"}, {"fill-opacity", "0.2"}}
	Idle        = Style{{"fill", "none"}, {"fill-opacity", "1"}}
)

// Apply rewrites the declarations of decl named in s and appends the missing ones.
func (s Style) Apply(decl string) string {
	parts := strings.Split(decl, ";")
	applied := make([]bool, len(s))
	for i, p := range parts {
		name, _, ok := strings.Cut(p, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		for j, prop := range s {
			if name == prop.Name {
				parts[i] = prop.Name + ":" + prop.Value
				applied[j] = true
			}
		}
	}

	out := strings.Join(parts, ";")
	for j, prop := range s {
		if applied[j] {
			continue
		}
		if out != "" && !strings.HasSuffix(out, ";") {
			out += ";"
		}
		out += prop.Name + ":" + prop.Value
	}
	return out
}

var styleAttr = regexp.MustCompile(`\sstyle\s*=\s*(["'])`)

// element locates the style attribute of one id-bearing element in the raw document.
type element struct {
	valStart, valEnd int // style value, when present
	insertAt         int // where a style attribute goes when absent
	hasStyle         bool
}

// Document is a parsed keyboard SVG. It is never modified; With returns new
// snapshots, so a Document may be shared between goroutines.
type Document struct {
	data []byte
	ids  map[string]element
}

func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyboard %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keyboard %s: %w", path, err)
	}
	return doc, nil
}

// Parse indexes every element with an id attribute.
func Parse(data []byte) (*Document, error) {
	doc := &Document{data: data, ids: make(map[string]element)}
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		start := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		id := ""
		for _, a := range se.Attr {
			if a.Name.Local == "id" {
				id = a.Value
				break
			}
		}
		if id == "" {
			continue
		}
		if _, dup := doc.ids[id]; dup {
			continue
		}
		end := int(dec.InputOffset())
		doc.ids[id] = locate(data[start:end], start)
	}

	return doc, nil
}

func locate(tag []byte, base int) element {
	if m := styleAttr.FindSubmatchIndex(tag); m != nil {
		quote := tag[m[2]]
		valStart := m[1]
		valEnd := valStart + bytes.IndexByte(tag[valStart:], quote)
		return element{valStart: base + valStart, valEnd: base + valEnd, hasStyle: true}
	}
	i := len(tag) - 1
	if i > 0 && tag[i-1] == '/' {
		i--
	}
	return element{insertAt: base + i}
}

// Has reports whether the document has an element with the given id.
func (d *Document) Has(id string) bool {
	_, ok := d.ids[id]
	return ok
}

// Check returns a MissingKeyError for the first character of text without a key.
func (d *Document) Check(text string) error {
	for _, r := range text {
		if id := KeyID(r); !d.Has(id) {
			return &MissingKeyError{Char: r, Key: id}
		}
	}
	return nil
}

// Bytes returns a copy of the unmodified document.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.data)
}

// With returns a new snapshot of the document where element id carries style.
func (d *Document) With(id string, style Style) ([]byte, error) {
	el, ok := d.ids[id]
	if !ok {
		return nil, &MissingKeyError{Key: id}
	}

	out := make([]byte, 0, len(d.data)+64)
	if el.hasStyle {
		value := style.Apply(string(d.data[el.valStart:el.valEnd]))
		out = append(out, d.data[:el.valStart]...)
		out = append(out, value...)
		out = append(out, d.data[el.valEnd:]...)
		return out, nil
	}

	out = append(out, d.data[:el.insertAt]...)
	out = append(out, ` style="`+style.Apply("")+`"`...)
	out = append(out, d.data[el.insertAt:]...)
	return out, nil
}
