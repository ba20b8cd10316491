package digest

import (
	"strings"

	"github.com/xiaoyuanzhu-com/mybrain/session"
)

// Assistant replies that carry no content for a heartbeat run.
var heartbeatSentinels = map[string]bool{
	"HEARTBEAT_OK": true,
	"NO_REPLY":     true,
}

// Keep reports whether s is worth digesting. Sessions with fewer than
// two messages are dropped, and so are heartbeat runs whose assistant
// only answered with a sentinel or markup.
func Keep(s *session.Session) bool {
	if len(s.Messages) < 2 {
		return false
	}
	if !isHeartbeat(s) {
		return true
	}
	for _, m := range s.Messages {
		if m.Role == "assistant" && isSubstantive(m.Text) {
			return true
		}
	}
	return false
}

func isHeartbeat(s *session.Session) bool {
	return s.IsCron && strings.Contains(strings.ToLower(s.CronName), "heartbeat")
}

func isSubstantive(text string) bool {
	return text != "" && !heartbeatSentinels[text] && !strings.HasPrefix(text, "<")
}
