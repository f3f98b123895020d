package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionalKey is a primary key that is either assigned (a positive integer)
// or not yet assigned. The zero value is unassigned.
type OptionalKey struct {
	value    int64
	assigned bool
}

// NoKey is the unassigned key every entity starts with.
var NoKey = OptionalKey{}

// NewKey returns an assigned key. Non-positive values are rejected.
func NewKey(value int64) (OptionalKey, error) {
	if value <= 0 {
		return NoKey, fmt.Errorf("primary key must be positive, got %d", value)
	}
	return OptionalKey{value: value, assigned: true}, nil
}

// MustKey is like NewKey but panics on a non-positive value.
func MustKey(value int64) OptionalKey {
	k, err := NewKey(value)
	if err != nil {
		panic(err)
	}
	return k
}

// Value returns the key and whether it is assigned.
func (k OptionalKey) Value() (int64, bool) {
	return k.value, k.assigned
}

// IsAssigned reports whether the key holds a value.
func (k OptionalKey) IsAssigned() bool {
	return k.assigned
}

// Int64 returns the assigned value, or 0 when unassigned.
func (k OptionalKey) Int64() int64 {
	return k.value
}

// Ptr returns a pointer to the value for nullable storage columns.
func (k OptionalKey) Ptr() *int64 {
	if !k.assigned {
		return nil
	}
	v := k.value
	return &v
}

// KeyFromPtr converts a nullable column value back into a key.
func KeyFromPtr(p *int64) OptionalKey {
	if p == nil || *p <= 0 {
		return NoKey
	}
	return OptionalKey{value: *p, assigned: true}
}

func (k OptionalKey) String() string {
	if !k.assigned {
		return "<unassigned>"
	}
	return strconv.FormatInt(k.value, 10)
}

// MarshalJSON encodes an unassigned key as null.
func (k OptionalKey) MarshalJSON() ([]byte, error) {
	if !k.assigned {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(k.value, 10)), nil
}

// UnmarshalJSON accepts null, 0 (both unassigned) or a positive integer.
func (k *OptionalKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = NoKey
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	if v == 0 {
		*k = NoKey
		return nil
	}
	key, err := NewKey(v)
	if err != nil {
		return err
	}
	*k = key
	return nil
}
