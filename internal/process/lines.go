package process

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// TruncatedMarker ends a line that was cut at the line size limit.
const TruncatedMarker = " …[truncated]"

// readLines calls emit for every newline-terminated line in r, plus a final
// unterminated one. A line longer than limit bytes is cut to limit, marked
// with TruncatedMarker, and the rest of it is skipped up to the next newline.
func readLines(r io.Reader, limit int, emit func(string)) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	truncated := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !truncated {
			if room := limit - len(line); len(chunk) > room {
				line = append(line, chunk[:room]...)
				truncated = true
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if len(line) > 0 {
			if truncated {
				emit(string(bytes.TrimRight(line, " \t\r\n")) + TruncatedMarker)
			} else {
				emit(string(line))
			}
		}
		line = line[:0]
		truncated = false

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
