package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestWriteUsesNative(t *testing.T) {
	var got string
	var out bytes.Buffer
	w := &Writer{native: func(s string) error { got = s; return nil }, out: &out}

	if err := w.Write("camera log"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got != "camera log" {
		t.Errorf("native clipboard got %q", got)
	}
	if out.Len() != 0 {
		t.Errorf("expected no OSC52 output, got %q", out.String())
	}
}

func TestWriteFallsBackToOSC52(t *testing.T) {
	var out bytes.Buffer
	w := &Writer{native: func(string) error { return errors.New("no clipboard") }, out: &out}

	if err := w.Write("line1\nline2"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("line1\nline2")) + "\x07"
	if out.String() != want {
		t.Errorf("OSC52 mismatch\ngot:  %q\nwant: %q", out.String(), want)
	}
}

func TestOSC52Encoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple", "hello"},
		{"multiline", "line1\nline2\nline3"},
		{"unicode", "こんにちは"},
		{"empty", ""},
		{"special chars", "foo\tbar\nbaz\"qux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := osc52(tt.input, false)
			if !strings.HasPrefix(got, "\x1b]52;c;") || !strings.HasSuffix(got, "\x07") {
				t.Fatalf("malformed sequence %q", got)
			}
			payload := strings.TrimSuffix(strings.TrimPrefix(got, "\x1b]52;c;"), "\x07")
			decoded, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if string(decoded) != tt.input {
				t.Errorf("round trip: got %q, want %q", decoded, tt.input)
			}
		})
	}
}

func TestOSC52TmuxPassthrough(t *testing.T) {
	got := osc52("x", true)
	if !strings.HasPrefix(got, "\x1bPtmux;\x1b\x1b]52;c;") {
		t.Errorf("expected tmux DCS prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "\x07\x1b\\") {
		t.Errorf("expected DCS terminator, got %q", got)
	}
}
