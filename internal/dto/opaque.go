package dto

import (
	"bytes"
	"encoding/json"
)

// OpaqueText is a column stored as text no matter what JSON the client sent.
// Strings are kept verbatim, null becomes empty, and numbers, arrays or
// objects are kept as their compact JSON text.
type OpaqueText string

func (o *OpaqueText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OpaqueText(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*o = OpaqueText(buf.String())
	return nil
}

func (o OpaqueText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o))
}
