package sentinel

import "fmt"

// Value is either Absent or Present(v). The zero Value is Absent.
type Value[V any] struct {
	value   V
	present bool
}

// Encode wraps v as Present(v). v may be the zero value of V.
func Encode[V any](v V) Value[V] {
	return Value[V]{value: v, present: true}
}

// Absent returns the "no entry" sentinel.
func Absent[V any]() Value[V] {
	return Value[V]{}
}

// Decode returns the wrapped payload and true for Present,
// or the zero value of V and false for Absent.
func (s Value[V]) Decode() (V, bool) {
	return s.value, s.present
}

// IsPresent reports whether s wraps a payload.
func (s Value[V]) IsPresent() bool {
	return s.present
}

// IsAbsent reports whether s is the "no entry" sentinel.
func (s Value[V]) IsAbsent() bool {
	return !s.present
}

// IsNil reports whether s is the primitive-level nil, which is Absent.
// Present(nil) is not nil.
func (s Value[V]) IsNil() bool {
	return !s.present
}

// String renders s for logs.
func (s Value[V]) String() string {
	if !s.present {
		return "Absent"
	}
	return fmt.Sprintf("Present(%v)", s.value)
}

// EqualFunc lifts a payload equality to sentinels. Two sentinels are equal
// when both are Absent, or both are Present with eq reporting true.
func EqualFunc[V any](eq func(a, b V) bool) func(a, b Value[V]) bool {
	return func(a, b Value[V]) bool {
		if a.present != b.present {
			return false
		}
		if !a.present {
			return true
		}
		return eq(a.value, b.value)
	}
}

// Equal compares two sentinels of a comparable payload type with ==.
func Equal[V comparable](a, b Value[V]) bool {
	if a.present != b.present {
		return false
	}
	return !a.present || a.value == b.value
}
