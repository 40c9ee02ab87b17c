package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// formValue accepts either a JSON string or a JSON number and keeps the raw
// text, so numeric parsing stays in the services.
type formValue string

func (value *formValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*value = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*value = formValue(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(number.String(), 64); err != nil {
		return err
	}
	*value = formValue(number.String())
	return nil
}

func (value formValue) String() string {
	return string(value)
}
