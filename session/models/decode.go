package models

import (
	"encoding/json"
	"errors"
)

// ErrNotObject is returned when a line is valid JSON but not an object.
var ErrNotObject = errors.New("record is not a JSON object")

// fields is a decoded record with its values still raw, so a field of
// an unexpected JSON type degrades to a zero value instead of failing
// the whole record.
type fields map[string]json.RawMessage

func (f fields) str(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (f fields) object(key string) fields {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var obj fields
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}

// Decode turns one log line into its typed event. It fails only when
// the line is not a JSON object.
func Decode(line []byte) (Event, error) {
	var f fields
	if err := json.Unmarshal(line, &f); err != nil {
		return nil, err
	}
	if f == nil {
		// literal null
		return nil, ErrNotObject
	}

	base := BaseEvent{
		Type:      f.str("type"),
		Timestamp: f.str("timestamp"),
	}

	switch base.Type {
	case KindSession:
		return &SessionEvent{BaseEvent: base, ID: f.str("id")}, nil

	case KindModelChange:
		return &ModelChangeEvent{BaseEvent: base, ModelID: f.str("modelId")}, nil

	case KindMessage:
		msg := f.object("message")
		return &MessageEvent{
			BaseEvent: base,
			Role:      msg.str("role"),
			Content:   msg["content"],
		}, nil

	case KindToolUse:
		return &ToolUseEvent{BaseEvent: base, Name: f.str("name")}, nil

	default:
		return &UnknownEvent{BaseEvent: base}, nil
	}
}
