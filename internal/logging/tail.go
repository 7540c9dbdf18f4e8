package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const maxLineBytes = 1024 * 1024

// Tail opens the log at path and returns its last n lines via LastLines.
// A log that does not exist yet has no lines.
func Tail(path string, n int) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	return LastLines(f, n)
}

// LastLines reads r to the end and keeps a sliding window of the final n
// lines, oldest first. n <= 0 keeps everything.
func LastLines(r io.Reader, n int) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var window []string
	for sc.Scan() {
		window = append(window, sc.Text())
		if n > 0 && len(window) >= 2*n {
			// Keep only the newest n.
			window = append(window[:0], window[len(window)-n:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if n > 0 && len(window) > n {
		window = window[len(window)-n:]
	}
	return window, nil
}
