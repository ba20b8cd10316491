package neuron

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xiaoyuanzhu-com/mybrain/fs"
)

// Entry is one heading or bullet from a daily memory file.
type Entry struct {
	Content string // without leading markup, used for scoring
	Raw     string // trimmed source line, written to the neuron file
}

// ParseDailyMemory extracts entries from a daily memory file. A missing
// file has no entries.
func ParseDailyMemory(path string) ([]Entry, error) {
	lines, err := fs.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}
	return parseEntries(lines), nil
}

func parseEntries(lines []string) []Entry {
	var entries []Entry
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !isEntry(line) {
			continue
		}
		entries = append(entries, Entry{
			Content: strings.TrimSpace(strings.TrimLeft(line, "#- ")),
			Raw:     line,
		})
	}
	return entries
}

func isEntry(line string) bool {
	if strings.HasPrefix(line, "## ") {
		return true
	}
	return strings.HasPrefix(line, "- ") && utf8.RuneCountInString(line) > 5
}
