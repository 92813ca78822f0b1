package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/code2json/internal/nvim"
	"github.com/sokinpui/code2json/model"
)

func TestGetContentBuiltinByDefault(t *testing.T) {
	p, err := New(Options{}).GetContent()
	require.NoError(t, err)
	assert.Equal(t, "builtin", p.Name)
	require.Len(t, p.Blobs, 1)
	assert.Equal(t, model.CodeBlob(Builtin), p.Blobs[0])
}

func TestGetContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.py")
	require.NoError(t, os.WriteFile(path, []byte("print(\"hi\")\n"), 0644))

	p, err := New(Options{File: path}).GetContent()
	require.NoError(t, err)
	assert.Equal(t, path, p.Name)
	assert.Equal(t, []model.CodeBlob{"print(\"hi\")\n"}, p.Blobs)
}

func TestGetContentMissingFile(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "nope")}).GetContent()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetContentFromStdin(t *testing.T) {
	sp := New(Options{File: StdinPath})
	sp.Stdin = strings.NewReader("a\"b\nc")

	p, err := sp.GetContent()
	require.NoError(t, err)
	assert.Equal(t, "stdin", p.Name)
	assert.Equal(t, []model.CodeBlob{"a\"b\nc"}, p.Blobs)
}

func TestGetContentFromNvim(t *testing.T) {
	sp := New(Options{Nvim: true})
	sp.ReadBuffer = func() (nvim.Buffer, error) {
		return nvim.Buffer{Name: "/src/main.go", Content: "package main\n"}, nil
	}

	p, err := sp.GetContent()
	require.NoError(t, err)
	assert.Equal(t, "nvim:/src/main.go", p.Name)
	assert.Equal(t, []model.CodeBlob{"package main\n"}, p.Blobs)

	sp.ReadBuffer = func() (nvim.Buffer, error) { return nvim.Buffer{}, nvim.ErrNoInstance }
	_, err = sp.GetContent()
	assert.ErrorIs(t, err, nvim.ErrNoInstance)
}

func TestGetContentInteractive(t *testing.T) {
	sp := New(Options{Interactive: true})

	sp.Edit = func() (string, bool, error) { return "x := 1", true, nil }
	p, err := sp.GetContent()
	require.NoError(t, err)
	assert.False(t, p.Cancelled)
	assert.Equal(t, []model.CodeBlob{"x := 1"}, p.Blobs)

	sp.Edit = func() (string, bool, error) { return "", false, nil }
	p, err = sp.GetContent()
	require.NoError(t, err)
	assert.True(t, p.Cancelled)
	assert.Empty(t, p.Blobs)

	sp.Edit = func() (string, bool, error) { return "", false, errors.New("no tty") }
	_, err = sp.GetContent()
	assert.ErrorContains(t, err, "no tty")
}

func TestGetContentMarkdown(t *testing.T) {
	md := "intro\n\n```go\nfmt.Println(\"1\")\n```\n\n```sh\necho 2\n```\n"
	sp := New(Options{File: StdinPath, Markdown: true, Block: 2})
	sp.Stdin = strings.NewReader(md)

	p, err := sp.GetContent()
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"echo 2\n"}, p.Blobs)

	sp = New(Options{File: StdinPath, Markdown: true, Lang: "go", Block: 1})
	sp.Stdin = strings.NewReader(md)

	p, err = sp.GetContent()
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"fmt.Println(\"1\")\n"}, p.Blobs)
}

func TestBlocks(t *testing.T) {
	md := "```\none\n```\n\n```\ntwo\n```\n"

	all, err := Blocks(md, 0, "")
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"one\n", "two\n"}, all)

	first, err := Blocks(md, 1, "")
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"one\n"}, first)

	_, err = Blocks(md, 3, "")
	assert.ErrorIs(t, err, ErrBlockRange)

	_, err = Blocks("no fences", 1, "")
	assert.ErrorIs(t, err, ErrNoBlocks)
}

func TestBlocksFilteredByLang(t *testing.T) {
	md := "```sh\necho 1\n```\n\n```go\nx := 1\n```\n\n```Go\ny := 2\n```\n"

	all, err := Blocks(md, 0, "GO")
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"x := 1\n", "y := 2\n"}, all)

	second, err := Blocks(md, 2, "go")
	require.NoError(t, err)
	assert.Equal(t, []model.CodeBlob{"y := 2\n"}, second)

	_, err = Blocks(md, 3, "go")
	assert.ErrorIs(t, err, ErrBlockRange)

	_, err = Blocks(md, 1, "python")
	assert.ErrorIs(t, err, ErrNoBlocks)
	assert.ErrorContains(t, err, "python")
}
