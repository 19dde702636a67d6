package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ordinal is the opaque identifier of a vocabulary entry. It keeps the JSON
// form it was read with so a rewrite of the snapshot does not change it:
// "12" stays a string, 12 stays a number.
type Ordinal struct {
	text string
	bare bool
}

// NewOrdinal returns an ordinal stored as a JSON string.
func NewOrdinal(s string) Ordinal {
	return Ordinal{text: s}
}

func (o Ordinal) String() string { return o.text }

// IsZero returns true for an absent or empty identifier.
func (o Ordinal) IsZero() bool {
	return o.text == "" || (o.bare && o.text == "null")
}

// MarshalJSON implements json.Marshaler.
func (o Ordinal) MarshalJSON() ([]byte, error) {
	if o.bare {
		return []byte(o.text), nil
	}
	return json.Marshal(o.text)
}

// UnmarshalJSON implements json.Unmarshaler. Strings, numbers and null are
// accepted.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Ordinal{text: s}
		return nil
	}

	if string(data) == "null" {
		*o = Ordinal{text: "null", bare: true}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("number must be a string or a number: %w", err)
	}
	*o = Ordinal{text: n.String(), bare: true}
	return nil
}
