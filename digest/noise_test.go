package digest

import (
	"testing"

	"github.com/xiaoyuanzhu-com/mybrain/session"
)

func msgs(pairs ...string) []session.Message {
	var out []session.Message
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, session.Message{Role: pairs[i], Text: pairs[i+1]})
	}
	return out
}

func TestKeep(t *testing.T) {
	tests := []struct {
		name    string
		session session.Session
		want    bool
	}{
		{
			name:    "single message",
			session: session.Session{Messages: msgs("user", "a long and interesting question")},
			want:    false,
		},
		{
			name:    "empty",
			session: session.Session{},
			want:    false,
		},
		{
			name:    "plain chat",
			session: session.Session{Messages: msgs("user", "hi", "assistant", "hello")},
			want:    true,
		},
		{
			name: "heartbeat with sentinel only",
			session: session.Session{
				IsCron: true, CronName: "Heartbeat Check",
				Messages: msgs("user", "[cron:hb Heartbeat Check] ping", "assistant", "HEARTBEAT_OK"),
			},
			want: false,
		},
		{
			name: "heartbeat with substance",
			session: session.Session{
				IsCron: true, CronName: "Heartbeat Check",
				Messages: msgs("user", "[cron:hb Heartbeat Check] ping", "assistant", "HEARTBEAT_OK", "assistant", "Disk usage at 92%"),
			},
			want: true,
		},
		{
			name: "heartbeat with no reply and markup",
			session: session.Session{
				IsCron: true, CronName: "nightly HEARTBEAT",
				Messages: msgs("user", "ping", "assistant", "NO_REPLY", "assistant", "<thinking>"),
			},
			want: false,
		},
		{
			name: "substance from user does not count",
			session: session.Session{
				IsCron: true, CronName: "heartbeat",
				Messages: msgs("user", "lots of text", "toolResult", "more text"),
			},
			want: false,
		},
		{
			name: "other cron with sentinel kept",
			session: session.Session{
				IsCron: true, CronName: "Daily Report",
				Messages: msgs("user", "go", "assistant", "NO_REPLY"),
			},
			want: true,
		},
		{
			name: "chat named heartbeat is not a cron",
			session: session.Session{
				CronName: "heartbeat",
				Messages: msgs("user", "hi", "assistant", "HEARTBEAT_OK"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.session
			if got := Keep(&s); got != tt.want {
				t.Errorf("Keep() = %v, want %v", got, tt.want)
			}
		})
	}
}
