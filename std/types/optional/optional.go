// Package optional carries values that may be absent without resorting to pointers.
package optional

import "fmt"

// Optional holds a value of T or nothing.
type Optional[T any] struct {
	value T
	isSet bool
}

// Some wraps v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, isSet: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool {
	return o.isSet
}

func (o *Optional[T]) Set(v T) {
	o.value = v
	o.isSet = true
}

func (o *Optional[T]) Unset() {
	var zero T
	o.value = zero
	o.isSet = false
}

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.isSet
}

// GetOr returns the value, or def when absent.
func (o Optional[T]) GetOr(def T) T {
	if o.isSet {
		return o.value
	}
	return def
}

// Unwrap returns the value and panics when absent.
func (o Optional[T]) Unwrap() T {
	if !o.isSet {
		panic("optional: value is not set")
	}
	return o.value
}

func (o Optional[T]) String() string {
	if !o.isSet {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
