// Package clipboard makes a best-effort copy of text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
)

// ErrUnavailable covers every way the system clipboard can fail to take the
// text: no clipboard utility, no display, permission denied, a panic inside
// the platform binding, or the copy timing out.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard through github.com/atotto/clipboard.
type System struct{}

// WriteAll implements Writer.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility found on %s", runtime.GOOS)
	}
	return clipboard.WriteAll(text)
}

var _ Writer = System{}

// TryCopy writes text with w. A timeout of zero waits for the writer however
// long it takes. Any failure is returned wrapped in ErrUnavailable; TryCopy
// itself never panics.
func TryCopy(ctx context.Context, w Writer, text string, timeout time.Duration) error {
	if w == nil {
		return fmt.Errorf("%w: no clipboard writer configured", ErrUnavailable)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- safeWrite(w, text)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Debug("clipboard write failed")
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		log.Debugf("copied %d bytes to clipboard", len(text))
		return nil
	case <-ctx.Done():
		log.WithError(ctx.Err()).Debug("clipboard write abandoned")
		return fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}
}

func safeWrite(w Writer, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard panic: %v", r)
		}
	}()
	return w.WriteAll(text)
}
