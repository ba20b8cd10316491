package db

import "time"

// DigestRun is one written session digest.
type DigestRun struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"`
	Sessions   int      `json:"sessions"`
	ChatCount  int      `json:"chatCount"`
	CronCount  int      `json:"cronCount"`
	Messages   int      `json:"messages"`
	Tools      []string `json:"tools"`
	OutputPath string   `json:"outputPath"`
	CreatedAt  int64    `json:"createdAt"`
}

// ConsolidationRun is one neuron file written for a date.
type ConsolidationRun struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Category   string `json:"category"`
	Entries    int    `json:"entries"`
	OutputPath string `json:"outputPath"`
	CreatedAt  int64  `json:"createdAt"`
}

// Archive actions
const (
	ArchiveActionMove   = "move"
	ArchiveActionDelete = "delete"
)

// ArchiveEvent is one file moved to the archive or deleted.
type ArchiveEvent struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Source    string `json:"source"`
	Target    string `json:"target,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// NowMs returns the current time as Unix milliseconds (int64)
func NowMs() int64 {
	return time.Now().UnixMilli()
}
