// Package escape converts opaque text into a JSON string literal and back.
package escape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/sokinpui/code2json/model"
)

var (
	// ErrNotString is returned by Decode when the input is not exactly one
	// JSON string literal.
	ErrNotString = errors.New("not a JSON string literal")
	// ErrRoundTrip is returned by Verify when decoding does not give back the
	// original blob.
	ErrRoundTrip = errors.New("escaped text does not decode to the original")
)

// Options tunes the encoding.
type Options struct {
	// ASCII writes every rune above U+007F as a \uXXXX escape.
	ASCII bool
}

// Encode returns the JSON string literal for blob, surrounding quotes included.
// HTML characters are left alone. Invalid UTF-8 bytes become U+FFFD.
func Encode(blob model.CodeBlob, opts Options) model.EscapedString {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(string(blob))
	out := strings.TrimSuffix(buf.String(), "\n")

	if opts.ASCII {
		out = asciiOnly(out)
	}
	return model.EscapedString(out)
}

// asciiOnly rewrites non-ASCII runes of an already escaped literal as \u
// escapes, using surrogate pairs outside the basic multilingual plane.
func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}

// Decode parses a JSON string literal back into the text it encodes.
func Decode(escaped model.EscapedString) (model.CodeBlob, error) {
	s := strings.TrimSpace(string(escaped))
	if !gjson.Valid(s) {
		return "", fmt.Errorf("decode %.20q: %w", s, ErrNotString)
	}
	res := gjson.Parse(s)
	if res.Type != gjson.String {
		return "", fmt.Errorf("decode %.20q: got %s: %w", s, res.Type, ErrNotString)
	}
	return model.CodeBlob(res.Str), nil
}

// Verify checks that escaped decodes to exactly blob.
func Verify(blob model.CodeBlob, escaped model.EscapedString) error {
	decoded, err := Decode(escaped)
	if err != nil {
		return err
	}
	if decoded != blob {
		if !utf8.ValidString(string(blob)) {
			return fmt.Errorf("input is not valid UTF-8: %w", ErrRoundTrip)
		}
		return ErrRoundTrip
	}
	return nil
}
