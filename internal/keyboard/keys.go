package keyboard

import (
	"errors"
	"fmt"
	"unicode"
)

var ErrMissingKey = errors.New("missing key mapping")

// MissingKeyError reports a character whose key has no region in the keyboard.
type MissingKeyError struct {
	Char rune
	Key  string
}

func (e *MissingKeyError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("%v: no element with id %q", ErrMissingKey, e.Key)
	}
	return fmt.Sprintf("%v: character %q needs element with id %q", ErrMissingKey, e.Char, e.Key)
}

func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// Ids of keys that are not named after the character they type.
var special = map[rune]string{
	' ':  "Space",
	'\n': "Enter",
	'`':  "backtick",
	'-':  "minus",
	'=':  "equals",
	'[':  "open_square",
	']':  "closed_square",
	'\\': "backslash",
	';':  "semicolon",
	'\'': "tick",
	',':  "comma",
	'.':  "period",
	'/':  "forwardslash",
}

// KeyID returns the element id of the key that types r.
func KeyID(r rune) string {
	if id, ok := special[r]; ok {
		return id
	}
	return string(unicode.ToUpper(r))
}
