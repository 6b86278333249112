package submission

import "github.com/goliatone/go-submissions/pkg/field"

// Submission describes a payload that can produce its fields. Fields must
// accept a nil receiver, which yields the fields of a blank form with every
// value absent. existing is the entity being edited, or nil.
type Submission[E any] interface {
	Fields(existing *E) []field.Field
}

// Creator is a payload that builds a new entity once it validates.
type Creator[E any] interface {
	Submission[E]
	Create() (E, error)
}

// Updater is a payload that applies a partial update once it validates.
type Updater[E any] interface {
	Submission[E]
	Apply(existing *E) error
}

// FieldsProvider contributes fields that are not part of the payload itself,
// for example uniqueness checks that need the existing entity.
type FieldsProvider[E any] interface {
	AdditionalFields(existing *E) []field.Field
}
