package models

import (
	"encoding/json"
	"testing"
)

func TestFlattenContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"  hello world  "`, "hello world"},
		{"two text fragments", `[{"type":"text","text":"a"},{"type":"text","text":"b"}]`, "a b"},
		{"non-text fragment dropped", `[{"type":"text","text":"a"},{"type":"image","text":"x"},{"type":"text","text":"b"}]`, "a b"},
		{"tool call dropped", `[{"type":"toolCall","name":"exec"}]`, ""},
		{"non-object elements dropped", `["loose", 3, {"type":"text","text":"kept"}]`, "kept"},
		{"text field of wrong type", `[{"type":"text","text":5},{"type":"text","text":"b"}]`, "b"},
		{"empty list", `[]`, ""},
		{"number", `42`, ""},
		{"object", `{"type":"text","text":"a"}`, ""},
		{"null", `null`, ""},
		{"missing", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlattenContent(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("FlattenContent(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
