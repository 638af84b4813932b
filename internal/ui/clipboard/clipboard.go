package clipboard

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// Writer copies text to the system clipboard. It tries the native
// clipboard first (wl-copy, xclip, pbcopy, etc.) then falls back to
// OSC52, which also works over SSH.
type Writer struct {
	native func(string) error
	out    io.Writer
	tmux   bool
}

// New returns a Writer using the native clipboard and emitting OSC52 on
// stderr when that fails.
func New() *Writer {
	return &Writer{
		native: clipboard.WriteAll,
		out:    os.Stderr,
		tmux:   os.Getenv("TMUX") != "",
	}
}

func (w *Writer) Write(text string) error {
	if w.native != nil {
		if err := w.native(text); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(w.out, osc52(text, w.tmux))
	if err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Write copies text using a default Writer.
func Write(text string) error {
	return New().Write(text)
}

func osc52(text string, tmux bool) string {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
	if !tmux {
		return seq
	}
	// tmux passthrough: wrap in DCS and double every ESC.
	return "\x1bPtmux;" + strings.ReplaceAll(seq, "\x1b", "\x1b\x1b") + "\x1b\\"
}
