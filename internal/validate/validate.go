// Package validate provides the pre-command input gate.
// A Rule describes one value and its constraints; OK is a pure
// predicate with no side effects. Absent (nil) constraints are not
// checked, and all present constraints must pass.
package validate

import (
	"fmt"
	"strings"
)

// Rule describes a value and its optional constraints.
// MinLength/MaxLength apply only to textual values and compare the raw
// (untrimmed) length. Min/Max apply only to numeric values and are
// inclusive.
type Rule struct {
	Value     any
	Required  bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
}

// OK reports whether the rule's value satisfies every present constraint.
func OK(r Rule) bool {
	if r.Required {
		if len(strings.TrimSpace(fmt.Sprint(r.Value))) == 0 {
			return false
		}
	}

	if s, ok := r.Value.(string); ok {
		if r.MinLength != nil && len(s) < *r.MinLength {
			return false
		}
		if r.MaxLength != nil && len(s) > *r.MaxLength {
			return false
		}
	}

	if n, ok := numeric(r.Value); ok {
		if r.Min != nil && n < *r.Min {
			return false
		}
		if r.Max != nil && n > *r.Max {
			return false
		}
	}

	return true
}

// All reports whether every rule passes.
func All(rules ...Rule) bool {
	for _, r := range rules {
		if !OK(r) {
			return false
		}
	}
	return true
}

// IntPtr returns a pointer to n, for use in Rule literals.
func IntPtr(n int) *int { return &n }

// FloatPtr returns a pointer to f, for use in Rule literals.
func FloatPtr(f float64) *float64 { return &f }

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
