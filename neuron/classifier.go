package neuron

import (
	"strings"

	"github.com/xiaoyuanzhu-com/mybrain/config"
)

// Scores added per keyword hit.
const (
	patternWeight   = 2
	indicatorWeight = 1
)

// Classifier assigns memory entries to categories by keyword hits.
type Classifier struct {
	categories config.CategorySet
	fallback   string
}

// NewClassifier builds a classifier over the configured categories.
func NewClassifier(cfg *config.Config) *Classifier {
	return &Classifier{
		categories: cfg.Categories,
		fallback:   cfg.DefaultCategory,
	}
}

// Classify returns the best-scoring category key for content. Ties go
// to the category listed first; no hit at all yields the default.
func (c *Classifier) Classify(content string) string {
	content = strings.ToLower(content)

	best, bestScore := "", 0
	for _, key := range c.categories.Keys {
		rule, _ := c.categories.Get(key)
		score := 0
		for _, p := range rule.Patterns {
			if strings.Contains(content, strings.ToLower(p)) {
				score += patternWeight
			}
		}
		for _, ind := range rule.Indicators {
			if strings.Contains(content, strings.ToLower(ind)) {
				score += indicatorWeight
			}
		}
		if score > bestScore {
			best, bestScore = key, score
		}
	}

	if bestScore == 0 {
		return c.fallback
	}
	return best
}

// Folder returns the directory name used for category key.
func (c *Classifier) Folder(key string) string {
	rule, _ := c.categories.Get(key)
	return rule.FolderName(key)
}
