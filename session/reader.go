package session

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/session/models"
)

// ParseFile reads one session log. Content problems never fail the
// parse; only opening or reading the file can.
func ParseFile(path string) (*Session, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer file.Close()

	s, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error reading session file %s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

// Parse folds every record of r into a Session in one forward pass.
// Blank lines and lines that are not JSON objects are skipped.
func Parse(r io.Reader) (*Session, error) {
	s := &Session{}
	reader := bufio.NewReader(r)

	for {
		// ReadBytes has no line length limit, unlike bufio.Scanner
		lineBytes, err := reader.ReadBytes('\n')
		if len(lineBytes) > 0 {
			parseLine(s, lineBytes)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return s, err
		}
	}

	return s, nil
}

func parseLine(s *Session, lineBytes []byte) {
	line := bytes.TrimSpace(lineBytes)
	if len(line) == 0 {
		return
	}

	ev, err := models.Decode(line)
	if err != nil {
		return
	}
	s.apply(ev)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds,
// and offsets written without a colon (+0800).
// Timestamps without a zone are taken as UTC.
func parseTimestamp(ts string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
