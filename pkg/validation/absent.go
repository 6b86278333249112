package validation

import (
	"fmt"
	"slices"
)

// AbsentValueStrategy decides which present values of type T should still be
// treated as absent. The zero value only treats nil as absent.
type AbsentValueStrategy[T any] struct {
	isAbsent func(T) bool
}

// NilOnly returns the default strategy. It exists for readability at call
// sites; the zero value behaves the same.
func NilOnly[T any]() AbsentValueStrategy[T] {
	return AbsentValueStrategy[T]{}
}

// AbsentWhen treats values matching predicate as absent.
func AbsentWhen[T any](predicate func(T) bool) AbsentValueStrategy[T] {
	return AbsentValueStrategy[T]{isAbsent: predicate}
}

// EqualTo treats values equal to ref as absent, e.g. EqualTo("") for text
// inputs submitted empty.
func EqualTo[T comparable](ref T) AbsentValueStrategy[T] {
	return AbsentWhen(func(value T) bool { return value == ref })
}

// OneOf treats any of refs as absent.
func OneOf[T comparable](refs ...T) AbsentValueStrategy[T] {
	set := slices.Clone(refs)
	return AbsentWhen(func(value T) bool { return slices.Contains(set, value) })
}

// DescriptionIn compares the canonical string form of a value (see Describe)
// against descriptions, so sentinel strings such as "null" can be matched for
// non-string types.
func DescriptionIn[T any](descriptions ...string) AbsentValueStrategy[T] {
	set := slices.Clone(descriptions)
	return AbsentWhen(func(value T) bool { return slices.Contains(set, Describe(value)) })
}

// Resolve returns value unchanged when it is present, nil otherwise.
func (s AbsentValueStrategy[T]) Resolve(value *T) *T {
	if value == nil {
		return nil
	}
	if s.isAbsent != nil && s.isAbsent(*value) {
		return nil
	}
	return value
}

// Describe renders a value to the string form used for field values and
// description based comparisons.
func Describe(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
