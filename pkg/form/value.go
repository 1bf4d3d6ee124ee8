// Package form normalizes raw questionnaire input. A browser form submits the
// same field as a JSON string, number, boolean or null depending on the
// widget, so every helper works on the textual form of the value.
package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrUnsupportedValue = errors.New("value must be a string, number, boolean, list of strings or null")

// Value is one raw submitted field.
type Value struct {
	text    string
	present bool
}

// Text returns a present value holding s.
func Text(s string) Value {
	return Value{text: s, present: true}
}

func (v Value) IsNull() bool {
	return !v.present
}

// String returns the raw text. A null value renders as "".
func (v Value) String() string {
	return v.text
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case 't', 'f':
		b, err := strconv.ParseBool(string(data))
		if err != nil {
			return ErrUnsupportedValue
		}
		*v = Text(strconv.FormatBool(b))
	case '[':
		// multi-select widgets send a list; stored as a comma-joined set
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return ErrUnsupportedValue
		}
		*v = Text(strings.Join(items, ","))
	case '{':
		return ErrUnsupportedValue
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return ErrUnsupportedValue
		}
		*v = Text(n.String())
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

// Input is a decoded request body keyed by field name.
type Input map[string]Value

// Get returns the raw value of name; absent fields are null.
func (in Input) Get(name string) Value {
	return in[name]
}
