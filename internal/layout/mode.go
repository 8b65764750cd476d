package layout

import "fmt"

// DisplayMode is one of NoDisplay, Mono or Dual.
type DisplayMode interface {
	fmt.Stringer
	displayMode()
}

// NoDisplay renders the keyboard alone.
type NoDisplay struct{}

// Mono pairs the keyboard with a single text display.
type Mono struct {
	Font string
}

// Dual pairs the keyboard with two stacked displays; the lower one shows the
// typed text remapped into a second layout.
type Dual struct {
	Upper   string
	Lower   string
	Mapping Mapping
}

func (NoDisplay) displayMode() {}
func (Mono) displayMode()      {}
func (Dual) displayMode()      {}

func (NoDisplay) String() string { return "keyboard only" }
func (m Mono) String() string    { return fmt.Sprintf("mono display: %s", m.Font) }
func (d Dual) String() string    { return fmt.Sprintf("dual display: %s / %s", d.Upper, d.Lower) }

// Mapping translates characters of one layout into text of another.
type Mapping map[string]string

// Remap translates s character by character. The result has exactly one
// unit per rune of s; characters absent from the mapping pass through as-is.
func (m Mapping) Remap(s string) []string {
	units := make([]string, 0, len(s))
	for _, r := range s {
		c := string(r)
		if v, ok := m[c]; ok {
			units = append(units, v)
		} else {
			units = append(units, c)
		}
	}
	return units
}

// Missing lists the distinct characters of s without a mapping entry, in
// order of first appearance.
func (m Mapping) Missing(s string) []string {
	seen := map[rune]bool{}
	var missing []string
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := m[string(r)]; !ok {
			missing = append(missing, string(r))
		}
	}
	return missing
}
