package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CategoryRule holds the keyword rules and folder names for one category.
type CategoryRule struct {
	Patterns      []string `json:"patterns" yaml:"patterns"`
	Indicators    []string `json:"indicators" yaml:"indicators"`
	DisplayName   string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	DisplayNameZh string   `json:"display_name_zh,omitempty" yaml:"display_name_zh,omitempty"`
}

// FolderName is the neuron folder used for the category.
func (r CategoryRule) FolderName(key string) string {
	if r.DisplayNameZh != "" {
		return r.DisplayNameZh
	}
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return key
}

// CategorySet is an ordered category map. Document order is kept
// because it decides classification ties.
type CategorySet struct {
	Keys  []string
	Rules map[string]CategoryRule
}

// Get returns the rule for key.
func (s CategorySet) Get(key string) (CategoryRule, bool) {
	r, ok := s.Rules[key]
	return r, ok
}

// Len returns the number of categories.
func (s CategorySet) Len() int { return len(s.Keys) }

func (s *CategorySet) add(key string, rule CategoryRule) {
	if s.Rules == nil {
		s.Rules = make(map[string]CategoryRule)
	}
	if _, exists := s.Rules[key]; !exists {
		s.Keys = append(s.Keys, key)
	}
	s.Rules[key] = rule
}

// UnmarshalJSON walks the object token by token to keep key order.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("categories: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("categories: unexpected key %v", keyTok)
		}
		var rule CategoryRule
		if err := dec.Decode(&rule); err != nil {
			return fmt.Errorf("categories: %s: %w", key, err)
		}
		s.add(key, rule)
	}
	_, err = dec.Token()
	return err
}

// UnmarshalYAML reads mapping pairs in document order.
func (s *CategorySet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("categories: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		var rule CategoryRule
		if err := value.Content[i+1].Decode(&rule); err != nil {
			return fmt.Errorf("categories: %s: %w", key, err)
		}
		s.add(key, rule)
	}
	return nil
}

type scheduleDocument struct {
	Timezone        string         `json:"timezone" yaml:"timezone"`
	ArchiveDays     int            `json:"archive_days" yaml:"archive_days"`
	TimezoneOffsets map[string]int `json:"timezone_offsets,omitempty" yaml:"timezone_offsets,omitempty"`
}

type categoriesDocument struct {
	Categories      CategorySet `json:"categories" yaml:"categories"`
	DefaultCategory string      `json:"default_category" yaml:"default_category"`
}

func defaultCategories() CategorySet {
	var s CategorySet
	s.add("work", CategoryRule{
		Patterns:   []string{"project", "code", "deploy"},
		Indicators: []string{"task", "done"},
	})
	return s
}

var documentExtensions = []string{".json", ".yaml", ".yml"}

// readDocument decodes the first of <dir>/<name>.{json,yaml,yml} that
// exists. It reports false when none does.
func readDocument(dir, name string, v interface{}) (bool, error) {
	for _, ext := range documentExtensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, err
		}
		if ext == ".json" {
			err = json.Unmarshal(data, v)
		} else {
			err = yaml.Unmarshal(data, v)
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", path, err)
		}
		return true, nil
	}
	return false, nil
}
