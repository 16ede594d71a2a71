package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Lineup is the set of player IDs on court for a possession. It is stored
// as a JSON integer array. Normalize before storing so that two lineups
// with the same players always serialize identically regardless of the
// order they were selected in.
type Lineup []int

// Normalize returns a sorted copy of the lineup. Lineup identity is the
// player set, not the selection order.
func (l Lineup) Normalize() Lineup {
	out := make(Lineup, len(l))
	copy(out, l)
	sort.Ints(out)
	return out
}

// Key returns the canonical serialized form, used as a grouping key.
func (l Lineup) Key() string {
	b, _ := json.Marshal(l.Normalize())
	return string(b)
}

// Value implements driver.Valuer; lineups are persisted normalized.
func (l Lineup) Value() (driver.Value, error) {
	b, err := json.Marshal(l.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encoding lineup: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *Lineup) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported lineup column type %T", src)
	}
}
