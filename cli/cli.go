package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

var (
	// ErrConflictingSources is returned when more than one source flag is set.
	ErrConflictingSources = errors.New("--file, --nvim and --interactive are mutually exclusive")
	// ErrInvalidFlag is returned when a flag value parses but is out of range.
	ErrInvalidFlag = errors.New("invalid flag value")
)

// Config holds all the command-line flag values.
type Config struct {
	File             string
	Nvim             bool
	Interactive      bool
	Markdown         bool
	Lang             string
	Block            int
	ASCII            bool
	NoClipboard      bool
	ClipboardTimeout time.Duration
	Check            bool
	Verbose          bool
}

// ParseFlags parses the process arguments.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse defines and parses command-line flags using pflag.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	fs := pflag.NewFlagSet("code2json", pflag.ContinueOnError)

	// Sources
	fs.StringVarP(&cfg.File, "file", "f", "", "Read the code from a file instead of the built-in snippet. Use '-' for stdin.")
	fs.BoolVar(&cfg.Nvim, "nvim", false, "Read the code from the current buffer of the parent Neovim.")
	fs.BoolVarP(&cfg.Interactive, "interactive", "i", false, "Paste the code into an editor (ctrl+d to escape it).")
	fs.BoolVarP(&cfg.Markdown, "markdown", "m", false, "Treat the input as markdown and escape its fenced code blocks.")
	fs.StringVar(&cfg.Lang, "lang", "", "With --markdown, only consider code blocks fenced with this language (e.g., 'go', 'python').")
	fs.IntVar(&cfg.Block, "block", 1, "With --markdown, the 1-based code block to escape (0 for all).")

	// Output
	fs.BoolVarP(&cfg.ASCII, "ascii", "a", false, "Escape every non-ASCII character as \\uXXXX.")
	fs.BoolVarP(&cfg.NoClipboard, "no-clipboard", "n", false, "Do not copy the result to the clipboard.")
	fs.DurationVar(&cfg.ClipboardTimeout, "clipboard-timeout", 2*time.Second, "Give up on the clipboard after this long (0 waits forever).")
	fs.BoolVar(&cfg.Check, "check", false, "Verify that the output decodes back to the input.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log debug information to stderr.")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: code2json [flags]")
		fmt.Fprintln(os.Stderr, "\nEscape code into a JSON string, print it and copy it to the clipboard.")
		fmt.Fprintln(os.Stderr, "\nExample: code2json -f solution.py")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	sources := 0
	for _, set := range []bool{cfg.File != "", cfg.Nvim, cfg.Interactive} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, ErrConflictingSources
	}
	if cfg.Lang != "" && !cfg.Markdown {
		return nil, fmt.Errorf("%w: --lang requires --markdown", ErrInvalidFlag)
	}
	if cfg.Block < 0 {
		return nil, fmt.Errorf("%w: --block must be 0 or greater, got %d", ErrInvalidFlag, cfg.Block)
	}
	if cfg.ClipboardTimeout < 0 {
		return nil, fmt.Errorf("%w: --clipboard-timeout must not be negative, got %s", ErrInvalidFlag, cfg.ClipboardTimeout)
	}

	return cfg, nil
}
