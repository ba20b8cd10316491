package forget

import (
	"errors"
	"fmt"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/config"
)

// ErrInvalidMonth is returned for months not in YYYY-MM form.
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

const monthLayout = "2006-01"

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), t.Month(), nil
}

// PreviousMonth returns the calendar month before now in loc.
func PreviousMonth(now time.Time, loc *time.Location) (int, time.Month) {
	local := now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), prev.Month()
}

// neuronFolders lists the category folders in config order, followed
// by the default category's folder when it is not a listed category.
func neuronFolders(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var folders []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			folders = append(folders, name)
		}
	}
	for _, key := range cfg.Categories.Keys {
		rule, _ := cfg.Categories.Get(key)
		add(rule.FolderName(key))
	}
	if cfg.DefaultCategory != "" {
		rule, _ := cfg.Categories.Get(cfg.DefaultCategory)
		add(rule.FolderName(cfg.DefaultCategory))
	}
	return folders
}
