package code2json

import (
	"context"
	"time"

	"github.com/sokinpui/code2json/internal/clipboard"
	"github.com/sokinpui/code2json/internal/escape"
	"github.com/sokinpui/code2json/model"
)

// ErrClipboardUnavailable is wrapped by every error returned from Copy.
var ErrClipboardUnavailable = clipboard.ErrUnavailable

// Config for using code2json as a library.
type Config struct {
	// Escape every non-ASCII character as \uXXXX.
	ASCII bool
}

// Escape returns code as a JSON string literal, surrounding quotes included.
func Escape(code string, config Config) string {
	return string(escape.Encode(model.CodeBlob(code), escape.Options{ASCII: config.ASCII}))
}

// Unescape decodes a JSON string literal produced by Escape.
func Unescape(literal string) (string, error) {
	blob, err := escape.Decode(model.EscapedString(literal))
	return string(blob), err
}

// Copy places text on the system clipboard, giving up after timeout when it
// is positive.
func Copy(ctx context.Context, text string, timeout time.Duration) error {
	return clipboard.TryCopy(ctx, clipboard.System{}, text, timeout)
}
