package learning

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Fault enumerates why a raw metric could not be used as a number
type Fault int

const (
	FaultNone Fault = iota
	FaultAbsent
	FaultEmpty
	FaultZero
	FaultNonNumeric
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultAbsent:
		return "absent"
	case FaultEmpty:
		return "empty"
	case FaultZero:
		return "zero"
	case FaultNonNumeric:
		return "non_numeric"
	default:
		return "unknown"
	}
}

// Reading is the tagged result of coercing a raw metric value.
// Value is meaningful only when Fault is FaultNone.
type Reading struct {
	Value float64
	Fault Fault
}

// OK reports whether the reading carries a usable number.
func (r Reading) OK() bool {
	return r.Fault == FaultNone
}

// Unset reports whether the reading counts as "no value entered" (null, empty or zero).
func (r Reading) Unset() bool {
	return r.Fault == FaultAbsent || r.Fault == FaultEmpty || r.Fault == FaultZero
}

// Coerce converts a raw metric of unknown provenance into a Reading.
// It never panics; anything it cannot interpret becomes FaultNonNumeric.
func Coerce(raw any) Reading {
	switch v := raw.(type) {
	case nil:
		return Reading{Fault: FaultAbsent}
	case *float64:
		if v == nil {
			return Reading{Fault: FaultAbsent}
		}
		return fromFloat(*v)
	case *string:
		if v == nil {
			return Reading{Fault: FaultAbsent}
		}
		return fromString(*v)
	case string:
		return fromString(v)
	case json.Number:
		return fromString(v.String())
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return fromFloat(float64(v))
	case int8:
		return fromFloat(float64(v))
	case int16:
		return fromFloat(float64(v))
	case int32:
		return fromFloat(float64(v))
	case int64:
		return fromFloat(float64(v))
	case uint:
		return fromFloat(float64(v))
	case uint8:
		return fromFloat(float64(v))
	case uint16:
		return fromFloat(float64(v))
	case uint32:
		return fromFloat(float64(v))
	case uint64:
		return fromFloat(float64(v))
	default:
		return Reading{Fault: FaultNonNumeric}
	}
}

func fromString(s string) Reading {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reading{Fault: FaultEmpty}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Reading{Fault: FaultNonNumeric}
	}
	return fromFloat(f)
}

func fromFloat(f float64) Reading {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Reading{Fault: FaultNonNumeric}
	}
	if f == 0 {
		return Reading{Fault: FaultZero}
	}
	return Reading{Value: f}
}

// Float returns the reading as a nullable number for storage.
// Zero is kept as 0; absent, empty and non-numeric become nil.
func (r Reading) Float() *float64 {
	switch r.Fault {
	case FaultNone:
		v := r.Value
		return &v
	case FaultZero:
		v := 0.0
		return &v
	default:
		return nil
	}
}
