package models

import "encoding/json"

// MessageEvent represents one conversation turn. Content is either a
// plain string or a list of typed fragments.
type MessageEvent struct {
	BaseEvent
	Role    string
	Content json.RawMessage
}

// Text returns the flattened message text.
func (e *MessageEvent) Text() string {
	return FlattenContent(e.Content)
}
