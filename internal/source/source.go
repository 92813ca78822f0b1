package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sokinpui/code2json/internal/nvim"
	"github.com/sokinpui/code2json/internal/parser"
	"github.com/sokinpui/code2json/internal/tui"
	"github.com/sokinpui/code2json/model"
)

// StdinPath selects standard input as the source file.
const StdinPath = "-"

var (
	// ErrNoBlocks is returned in markdown mode when no fenced code block exists.
	ErrNoBlocks = errors.New("no fenced code block found")
	// ErrBlockRange is returned when the requested block does not exist.
	ErrBlockRange = errors.New("code block index out of range")
)

// Options selects where the blob comes from.
type Options struct {
	// File is a path to read, or StdinPath.
	File string
	// Nvim reads the current buffer of the parent Neovim.
	Nvim bool
	// Interactive opens the paste editor.
	Interactive bool
	// Markdown extracts fenced code blocks from the content.
	Markdown bool
	// Lang keeps only markdown blocks fenced with this language.
	Lang string
	// Block is the 1-based block to keep in markdown mode; 0 keeps all.
	Block int
}

// Payload is the text collected from a source.
type Payload struct {
	// Name describes the source for logs and summaries.
	Name string
	// Blobs holds one entry per block to escape.
	Blobs []model.CodeBlob
	// Cancelled is set when the user backed out of the paste editor.
	Cancelled bool
}

// SourceProvider determines and retrieves the source content.
type SourceProvider struct {
	opts Options

	// Stdin is read when File is StdinPath.
	Stdin io.Reader
	// ReadBuffer returns the current Neovim buffer.
	ReadBuffer func() (nvim.Buffer, error)
	// Edit runs the paste editor and reports whether the user submitted.
	Edit func() (string, bool, error)
}

// New creates a new SourceProvider.
func New(opts Options) *SourceProvider {
	return &SourceProvider{
		opts:       opts,
		Stdin:      os.Stdin,
		ReadBuffer: readNvimBuffer,
		Edit:       tui.Run,
	}
}

// GetContent retrieves the payload from the configured source.
func (sp *SourceProvider) GetContent() (Payload, error) {
	name, content, cancelled, err := sp.raw()
	if err != nil {
		return Payload{}, err
	}
	if cancelled {
		return Payload{Name: name, Cancelled: true}, nil
	}
	log.Debugf("read %d bytes from %s", len(content), name)

	if !sp.opts.Markdown {
		return Payload{Name: name, Blobs: []model.CodeBlob{model.CodeBlob(content)}}, nil
	}

	blobs, err := Blocks(content, sp.opts.Block, sp.opts.Lang)
	if err != nil {
		return Payload{}, fmt.Errorf("%s: %w", name, err)
	}
	return Payload{Name: name, Blobs: blobs}, nil
}

func (sp *SourceProvider) raw() (name, content string, cancelled bool, err error) {
	switch {
	case sp.opts.File == StdinPath:
		data, err := io.ReadAll(sp.Stdin)
		if err != nil {
			return "", "", false, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return "stdin", string(data), false, nil

	case sp.opts.File != "":
		data, err := os.ReadFile(sp.opts.File)
		if err != nil {
			return "", "", false, fmt.Errorf("failed to read source file: %w", err)
		}
		return sp.opts.File, string(data), false, nil

	case sp.opts.Nvim:
		buf, err := sp.ReadBuffer()
		if err != nil {
			return "", "", false, err
		}
		name := "nvim"
		if buf.Name != "" {
			name = "nvim:" + buf.Name
		}
		return name, buf.Content, false, nil

	case sp.opts.Interactive:
		text, ok, err := sp.Edit()
		if err != nil {
			return "", "", false, fmt.Errorf("paste editor failed: %w", err)
		}
		return "editor", text, !ok, nil

	default:
		return "builtin", Builtin, false, nil
	}
}

// Blocks extracts fenced code blocks from markdown content. When lang is set
// only blocks fenced with that language count. block is 1-based among the
// remaining blocks; 0 returns all of them in document order.
func Blocks(content string, block int, lang string) ([]model.CodeBlob, error) {
	blocks, err := parser.ExtractCodeBlocks([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}
	if lang != "" {
		lang = strings.ToLower(lang)
		kept := blocks[:0]
		for _, b := range blocks {
			if b.Lang == lang {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			return nil, fmt.Errorf("%w with language %q", ErrNoBlocks, lang)
		}
		blocks = kept
	}
	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	if block < 0 || block > len(blocks) {
		return nil, fmt.Errorf("%w: %d (found %d)", ErrBlockRange, block, len(blocks))
	}
	if block > 0 {
		blocks = blocks[block-1 : block]
	}

	blobs := make([]model.CodeBlob, len(blocks))
	for i, b := range blocks {
		log.WithFields(log.Fields{"lang": b.Lang, "caption": b.Caption}).Debugf("selected code block, %d bytes", len(b.Content))
		blobs[i] = model.CodeBlob(b.Content)
	}
	return blobs, nil
}

func readNvimBuffer() (nvim.Buffer, error) {
	manager, err := nvim.New()
	if err != nil {
		return nvim.Buffer{}, err
	}
	defer manager.Close()
	return manager.CurrentBuffer()
}
