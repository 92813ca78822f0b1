package code2json

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sokinpui/code2json/cli"
	"github.com/sokinpui/code2json/internal/clipboard"
	"github.com/sokinpui/code2json/internal/escape"
	"github.com/sokinpui/code2json/internal/source"
	"github.com/sokinpui/code2json/internal/ui"
	"github.com/sokinpui/code2json/model"
)

// App orchestrates the entire application logic.
type App struct {
	cfg            *cli.Config
	sourceProvider *source.SourceProvider
	clipboard      clipboard.Writer
	emitter        *ui.Emitter
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance writing its output to out.
func New(cfg *cli.Config, out io.Writer) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if out == nil {
		return nil, errors.New("nil output writer")
	}

	sourceProvider := source.New(source.Options{
		File:        cfg.File,
		Nvim:        cfg.Nvim,
		Interactive: cfg.Interactive,
		Markdown:    cfg.Markdown,
		Lang:        cfg.Lang,
		Block:       cfg.Block,
	})

	return &App{
		cfg:            cfg,
		sourceProvider: sourceProvider,
		clipboard:      clipboard.System{},
		emitter:        ui.NewEmitter(out),
	}, nil
}

// SetClipboard replaces the clipboard the escaped text is copied to.
func (a *App) SetClipboard(w clipboard.Writer) {
	a.clipboard = w
}

// Execute reads the configured source, prints the escaped text and tries to
// copy it to the clipboard. A clipboard failure is reported in the summary
// and printed as a warning; it is never returned as an error.
func (a *App) Execute(ctx context.Context) (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	payload, err := a.sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	summary.Source = payload.Name
	if payload.Cancelled {
		summary.Message = "Nothing to escape."
		a.emitter.Info("%s", summary.Message)
		return summary, nil
	}

	opts := escape.Options{ASCII: a.cfg.ASCII}
	for _, blob := range payload.Blobs {
		escaped := escape.Encode(blob, opts)
		if a.cfg.Check {
			if err := escape.Verify(blob, escaped); err != nil {
				return model.Summary{}, fmt.Errorf("round-trip check failed for %s: %w", payload.Name, err)
			}
		}
		summary.Escaped = append(summary.Escaped, escaped)
	}
	log.Debugf("escaped %d blob(s) from %s", len(summary.Escaped), payload.Name)

	for _, escaped := range summary.Escaped {
		if err := a.emitter.Emit(escaped); err != nil {
			return summary, fmt.Errorf("failed to write output: %w", err)
		}
	}

	if a.cfg.NoClipboard {
		return summary, nil
	}

	summary.ClipboardErr = clipboard.TryCopy(ctx, a.clipboard, joinEscaped(summary.Escaped), a.cfg.ClipboardTimeout)
	summary.Copied = summary.ClipboardErr == nil
	if summary.Copied {
		a.emitter.Success()
	} else {
		log.WithError(summary.ClipboardErr).Debug("clipboard copy skipped")
		a.emitter.Warning(summary.ClipboardErr)
	}
	return summary, nil
}

func joinEscaped(lines []model.EscapedString) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}
