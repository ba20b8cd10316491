package models

import (
	"encoding/json"
	"strings"
)

// FlattenContent reduces a message content value to plain text.
//
// A string is used as-is (trimmed). A list contributes the "text" field
// of every element that is an object with type "text", joined by single
// spaces. Any other shape flattens to "".
func FlattenContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var content interface{}
	if err := json.Unmarshal(raw, &content); err != nil {
		return ""
	}

	switch v := content.(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		var texts []string
		for _, item := range v {
			block, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if blockType, _ := block["type"].(string); blockType != "text" {
				continue
			}
			text, _ := block["text"].(string)
			texts = append(texts, text)
		}
		return strings.TrimSpace(strings.Join(texts, " "))
	default:
		return ""
	}
}
