package nvim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
	log "github.com/sirupsen/logrus"
)

// ErrNoInstance is returned when no Neovim listen address is known.
var ErrNoInstance = errors.New("no running Neovim instance: $NVIM and $NVIM_LISTEN_ADDRESS are unset")

// Buffer is a snapshot of a Neovim buffer.
type Buffer struct {
	Name    string
	Content string
}

// Manager handles the connection to a running Neovim instance.
type Manager struct {
	nvim *nvim.Nvim
}

// address returns the listen address of the Neovim instance that spawned us,
// preferring $NVIM as set for :terminal jobs since Neovim 0.7.
func address() string {
	if addr := os.Getenv("NVIM"); addr != "" {
		return addr
	}
	return os.Getenv("NVIM_LISTEN_ADDRESS")
}

// New connects to the running Neovim instance.
func New() (*Manager, error) {
	addr := address()
	if addr == "" {
		return nil, ErrNoInstance
	}
	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nvim at %s: %w", addr, err)
	}
	log.Debugf("connected to nvim at %s", addr)
	return &Manager{nvim: v}, nil
}

// Close disconnects from Neovim.
func (m *Manager) Close() {
	if m.nvim != nil {
		m.nvim.Close()
	}
}

// CurrentBuffer reads the whole current buffer.
func (m *Manager) CurrentBuffer() (Buffer, error) {
	buf, err := m.nvim.CurrentBuffer()
	if err != nil {
		return Buffer{}, fmt.Errorf("failed to get current buffer: %w", err)
	}

	var (
		name  string
		lines [][]byte
		eol   bool
	)
	b := m.nvim.NewBatch()
	b.BufferName(buf, &name)
	b.BufferLines(buf, 0, -1, true, &lines)
	b.BufferOption(buf, "eol", &eol)
	if err := b.Execute(); err != nil {
		return Buffer{}, fmt.Errorf("failed to read buffer: %w", err)
	}

	return Buffer{Name: name, Content: joinLines(lines, eol)}, nil
}

// joinLines rebuilds file content from buffer lines; eol mirrors the
// buffer's 'eol' option.
func joinLines(lines [][]byte, eol bool) string {
	if len(lines) == 0 || (len(lines) == 1 && len(lines[0]) == 0) {
		return ""
	}
	content := bytes.Join(lines, []byte("\n"))
	if eol {
		content = append(content, '\n')
	}
	return string(content)
}
