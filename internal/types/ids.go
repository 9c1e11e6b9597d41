package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// QuickAnswerID identifies a quick answer on the backend.
// The backend owns the format; the client treats it as opaque text.
// Numeric JSON ids are accepted and kept in their decimal form.
type QuickAnswerID string

// IsZero reports whether the id is unset (a record that does not exist yet).
func (id QuickAnswerID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

func (id QuickAnswerID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both `"12"` and `12`.
func (id *QuickAnswerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = QuickAnswerID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quick answer id: %w", err)
	}
	*id = QuickAnswerID(n.String())
	return nil
}
