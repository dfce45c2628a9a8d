// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package registration

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Meta is the free-form metadata blob attached to a Registration.
type Meta map[string]interface{}

// Get returns the value stored under key as a Field.
func (m Meta) Get(key string) Field {
	if m == nil {
		return Field{}
	}
	return FromInterface(m[key])
}

// UnmarshalJSON accepts either a JSON object or a string holding an encoded object,
// since some exports store meta as a text column.
func (m *Meta) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		if inner == "" {
			*m = nil
			return nil
		}
		data = []byte(inner)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("registration: invalid meta: %v", err)
	}
	*m = Meta(out)
	return nil
}
