package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/xiaoyuanzhu-com/mybrain/session"
)

const (
	maxMessageRunes = 500
	maxBlockTools   = 10
	ellipsis        = "…"
)

// Renderer turns one session into a markdown block.
type Renderer struct {
	Location *time.Location
}

// Render returns the block for s. The output is a pure function of s
// and the renderer's location.
func (r Renderer) Render(s *session.Session) string {
	var lines []string

	lines = append(lines, r.header(s))
	lines = append(lines, "- **Model**: "+s.Model)
	if len(s.ToolsUsed) > 0 {
		tools := s.ToolsUsed
		if len(tools) > maxBlockTools {
			tools = tools[:maxBlockTools]
		}
		lines = append(lines, "- **Tools**: "+strings.Join(tools, ", "))
	}
	lines = append(lines, "")

	for _, m := range s.Messages {
		text := messageText(m.Text)
		switch {
		case m.Role == "user":
			lines = append(lines, "**👤 User**: "+text)
		case m.Role == "assistant" && text != "" && !strings.HasPrefix(text, "<"):
			lines = append(lines, "**🤖 Assistant**: "+text)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (r Renderer) header(s *session.Session) string {
	clock := "??:??"
	if s.StartTime != nil {
		loc := r.Location
		if loc == nil {
			loc = time.UTC
		}
		clock = s.StartTime.In(loc).Format("15:04")
	}

	kind, title := "💬 Chat", "Session"
	if s.IsCron {
		kind, title = "🤖 Cron", s.CronName
	}
	return fmt.Sprintf("### %s %s: %s", clock, kind, title)
}

// messageText strips cron markers first so the marker never eats into
// the visible length.
func messageText(text string) string {
	return truncate(session.StripCronMarkers(text), maxMessageRunes)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + ellipsis
}
