package translator

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mrlokans/catalog/internal/entities"
)

// Kind is the value type a column carries.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// DateLayout is the textual form of date columns.
const DateLayout = "2006-01-02"

func textField[E any](get func(*E) string, set func(*E, string)) Accessor[E] {
	return Accessor[E]{
		Kind: KindText,
		Get:  func(e *E) any { return get(e) },
		Set: func(e *E, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("%w: want text, got %T", ErrTypeMismatch, v)
			}
			set(e, s)
			return nil
		},
	}
}

func intField[E any](get func(*E) int, set func(*E, int)) Accessor[E] {
	return Accessor[E]{
		Kind: KindInt,
		Get:  func(e *E) any { return get(e) },
		Set: func(e *E, v any) error {
			n, ok := asInt(v)
			if !ok {
				return fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, v)
			}
			set(e, n)
			return nil
		},
	}
}

func dateField[E any](get func(*E) time.Time, set func(*E, time.Time)) Accessor[E] {
	return Accessor[E]{
		Kind: KindDate,
		Get:  func(e *E) any { return get(e) },
		Set: func(e *E, v any) error {
			t, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("%w: want date, got %T", ErrTypeMismatch, v)
			}
			set(e, entities.TruncateDate(t))
			return nil
		},
	}
}

// asInt accepts Go integer kinds and integral json.Number values that fit
// in an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return fromInt64(n)
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint:
		return fromUint64(uint64(n))
	case uint64:
		return fromUint64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return fromInt64(i)
	default:
		return 0, false
	}
}

func fromInt64(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func fromUint64(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// Decode turns a JSON value into the Go value a column of kind k accepts.
// Dates are expected as "2006-01-02" strings.
func Decode(k Kind, raw json.RawMessage) (any, error) {
	switch k {
	case KindText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: want text: %v", ErrTypeMismatch, err)
		}
		return s, nil
	case KindInt:
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("%w: want integer: %v", ErrTypeMismatch, err)
		}
		i, ok := fromInt64(n)
		if !ok {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrTypeMismatch, n)
		}
		return i, nil
	case KindDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: want date: %v", ErrTypeMismatch, err)
		}
		if s == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: want date: %v", ErrTypeMismatch, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrTypeMismatch, k)
	}
}

// Format renders a row value for display.
func Format(v any) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(DateLayout)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
