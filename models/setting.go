package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// SettingValue is a settings value as stored (Raw) together with its decoded
// form. Values that parse as JSON carry the parsed tree in Parsed and have
// IsJSON set; anything else is a plain string kept in Raw.
type SettingValue struct {
	Raw    string
	Parsed any
	IsJSON bool
}

// DecodeSettingValue interprets a stored setting. A value that does not parse
// as JSON is returned as a raw string value, never as an error.
func DecodeSettingValue(raw string) SettingValue {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return SettingValue{Raw: raw}
	}
	return SettingValue{Raw: raw, Parsed: parsed, IsJSON: true}
}

// StringSetting wraps a plain string value.
func StringSetting(s string) SettingValue {
	return SettingValue{Raw: s}
}

// MarshalJSON emits the parsed JSON tree, or the raw text as a JSON string.
func (v SettingValue) MarshalJSON() ([]byte, error) {
	if v.IsJSON {
		return json.Marshal(v.Parsed)
	}
	return json.Marshal(v.Raw)
}

// UnmarshalJSON accepts any JSON value. Strings are stored verbatim; objects,
// arrays, numbers and booleans are stored as their compact JSON text.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = SettingValue{Raw: s}
		return nil
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return err
	}
	*v = SettingValue{Raw: buf.String(), Parsed: parsed, IsJSON: true}
	return nil
}

// Setting is one key/value row of the settings table.
type Setting struct {
	Key       string       `json:"key"`
	Value     SettingValue `json:"value"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SettingUpdate is the body of PUT /api/settings/{key}. Value is a pointer so
// that a missing field can be told apart from an empty string.
type SettingUpdate struct {
	Value *SettingValue `json:"value"`
}
