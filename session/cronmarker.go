package session

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scheduled runs tag their first user message with a marker:
//
//	[cron:<id> <name>]
//
// <id> is a non-empty run of non-whitespace characters. It is followed
// by at least one whitespace character and then <name>, which starts
// with a non-whitespace character and runs up to the next "]" on the
// same line. A name that would be empty, blank or start with "]"
// (e.g. "[cron:a ]]" or "[cron:a  ]") does not form a marker.
const cronMarkerPrefix = "[cron:"

// CronMarker is one marker found in a message. Start and End are byte
// offsets of the marker in the searched text, End exclusive.
type CronMarker struct {
	JobID string
	Name  string
	Start int
	End   int
}

// FindCronMarker returns the first well-formed marker in text.
func FindCronMarker(text string) (CronMarker, bool) {
	return findCronMarker(text, 0)
}

// StripCronMarkers removes every marker and the whitespace that
// directly follows it.
func StripCronMarkers(text string) string {
	m, ok := findCronMarker(text, 0)
	if !ok {
		return text
	}

	var b strings.Builder
	pos := 0
	for ok {
		b.WriteString(text[pos:m.Start])
		pos = skipSpace(text, m.End)
		m, ok = findCronMarker(text, pos)
	}
	b.WriteString(text[pos:])
	return b.String()
}

func findCronMarker(text string, from int) (CronMarker, bool) {
	for from <= len(text) {
		idx := strings.Index(text[from:], cronMarkerPrefix)
		if idx < 0 {
			return CronMarker{}, false
		}
		start := from + idx
		if m, ok := matchCronMarker(text, start); ok {
			return m, true
		}
		from = start + 1
	}
	return CronMarker{}, false
}

// matchCronMarker tries to read a marker that begins at start.
func matchCronMarker(text string, start int) (CronMarker, bool) {
	pos := start + len(cronMarkerPrefix)

	idStart := pos
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	if pos == idStart {
		return CronMarker{}, false
	}
	jobID := text[idStart:pos]

	nameStart := skipSpace(text, pos)
	if nameStart == pos || nameStart >= len(text) {
		return CronMarker{}, false
	}

	first, _ := utf8.DecodeRuneInString(text[nameStart:])
	if first == ']' {
		return CronMarker{}, false
	}

	for i := nameStart; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '\n':
			return CronMarker{}, false
		case ']':
			return CronMarker{
				JobID: jobID,
				Name:  text[nameStart:i],
				Start: start,
				End:   i + size,
			}, true
		}
		i += size
	}
	return CronMarker{}, false
}

func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
