package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap custom type for JSON storage of structured metadata
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]interface{}{})
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(map[string]interface{})
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, m)
}

// StringList custom type for JSON storage of string arrays (attachments, screenshots)
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, l)
}

// TestStep represents a single ordered step of a test case
type TestStep struct {
	Order    int    `json:"order"`
	Action   string `json:"action"`
	Expected string `json:"expected,omitempty"`
}

// TestSteps custom type for JSON storage of ordered test steps
type TestSteps []TestStep

func (s TestSteps) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]TestStep{})
	}
	return json.Marshal(s)
}

func (s *TestSteps) Scan(value interface{}) error {
	if value == nil {
		*s = []TestStep{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}

	return json.Unmarshal(bytes, s)
}
