package model

// CodeBlob is the opaque text payload to be escaped.
type CodeBlob string

// EscapedString is the JSON string literal form of a CodeBlob, quotes included.
type EscapedString string

// Summary holds the results of one run for display.
type Summary struct {
	// Source names where the blob came from, e.g. "builtin" or a file path.
	Source string
	// Escaped holds one entry per emitted blob.
	Escaped []EscapedString
	// Copied reports whether the clipboard now holds the escaped text.
	Copied bool
	// ClipboardErr is set when the copy was attempted and failed.
	ClipboardErr error
	// Message is a free-form note, e.g. when the user cancelled input.
	Message string
}
