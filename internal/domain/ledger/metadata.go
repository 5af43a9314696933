package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Metadata is an open key/value map attached to a payment entry, stored as
// JSONB. Updates merge into the existing map instead of replacing it.
type Metadata map[string]any

// Value implements driver.Valuer for JSONB storage
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB storage
func (m *Metadata) Scan(value any) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Metadata: unsupported type")
	}

	if len(bytes) == 0 {
		*m = Metadata{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Merge folds the given keys into the map, overwriting on key collision.
// A nil receiver map is allocated first.
func (m *Metadata) Merge(other map[string]any) {
	if len(other) == 0 {
		return
	}
	if *m == nil {
		*m = Metadata{}
	}
	for k, v := range other {
		(*m)[k] = v
	}
}
