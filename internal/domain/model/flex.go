// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// StringOrRef decodes a field that the GlueUp API serves either as a bare
// string or as a reference object carrying one of the keys "name", "value",
// or "code" (country refs, wrapped email addresses). The first non-empty key
// wins, matching the unwrap order name > value > code.
type StringOrRef string

// String returns the unwrapped value.
func (s StringOrRef) String() string {
	return string(s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StringOrRef(str)
		return nil
	}

	var ref struct {
		Name  string `json:"name"`
		Value string `json:"value"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(data, &ref); err == nil {
		switch {
		case ref.Name != "":
			*s = StringOrRef(ref.Name)
		case ref.Value != "":
			*s = StringOrRef(ref.Value)
		default:
			*s = StringOrRef(ref.Code)
		}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = StringOrRef(num.String())
		return nil
	}

	return fmt.Errorf("unsupported value %q for string reference", string(data))
}

// FlexID decodes an identifier that may arrive as a JSON number or string
// and canonicalizes it to its string form. Registry IDs are treated as
// opaque strings throughout the bridge.
type FlexID string

// String returns the canonical string form of the identifier.
func (id FlexID) String() string {
	return string(id)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*id = FlexID(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*id = FlexID(num.String())
		return nil
	}

	return fmt.Errorf("unsupported value %q for identifier", string(data))
}

// MarshalJSON implements json.Marshaler, always emitting the string form.
func (id FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// FlexFloat decodes a floating-point value that may arrive as a JSON number
// or a numeric string. Set reports whether a usable value was present;
// unparseable values are dropped rather than failing the enclosing record.
type FlexFloat struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	f.Value = 0
	f.Set = false

	if string(data) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.Value = num
		f.Set = true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			f.Value = parsed
			f.Set = true
		}
		return nil
	}

	return nil
}
