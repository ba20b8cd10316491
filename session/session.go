package session

import (
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/session/models"
)

// Message is one non-empty conversation turn.
type Message struct {
	Role      string // "user", "assistant", others passed through
	Text      string // flattened content, cron marker kept
	Timestamp string // raw, as found in the log
}

// Session is one log file folded into a single record.
type Session struct {
	ID        string
	StartTime *time.Time
	EndTime   *time.Time
	Model     string
	Messages  []Message
	ToolsUsed []string
	IsCron    bool
	CronName  string

	// Path is the log file the session was read from, if any.
	Path string

	seenTools map[string]bool
}

// HasTime reports whether any timestamped event was seen.
func (s *Session) HasTime() bool {
	return s.StartTime != nil
}

// apply folds one decoded event into the session.
func (s *Session) apply(ev models.Event) {
	if ts := ev.GetTimestamp(); ts != "" {
		if t, ok := parseTimestamp(ts); ok {
			if s.StartTime == nil {
				s.StartTime = &t
			}
			s.EndTime = &t
		}
	}

	switch e := ev.(type) {
	case *models.SessionEvent:
		s.ID = e.ID

	case *models.ModelChangeEvent:
		s.Model = e.ModelID

	case *models.MessageEvent:
		text := e.Text()
		if text == "" {
			return
		}
		if e.Role == "user" {
			s.noteCronMarker(text)
		}
		s.Messages = append(s.Messages, Message{
			Role:      e.Role,
			Text:      text,
			Timestamp: e.GetTimestamp(),
		})

	case *models.ToolUseEvent:
		s.addTool(e.Name)

	case *models.UnknownEvent:
		// ignored
	}
}

func (s *Session) noteCronMarker(text string) {
	m, ok := FindCronMarker(text)
	if !ok {
		return
	}
	if !s.IsCron {
		s.IsCron = true
		s.CronName = m.Name
	}
}

func (s *Session) addTool(name string) {
	if name == "" {
		return
	}
	if s.seenTools == nil {
		s.seenTools = make(map[string]bool)
	}
	if s.seenTools[name] {
		return
	}
	s.seenTools[name] = true
	s.ToolsUsed = append(s.ToolsUsed, name)
}
