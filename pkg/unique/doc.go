// Package unique provides uniqueness lookups for async field validation.
//
// A Checker answers whether a value is already taken. Validator adapts a
// Checker into a field.AsyncValidator that reports "must be unique":
//
//	field.New(field.Config[string]{
//		Key:             "email",
//		Value:           form.Email,
//		AsyncValidators: []field.AsyncValidator{unique.Validator(users, form.Email)},
//	})
//
// Checkers are provided for an in-memory set, a GORM column and a Redis set.
package unique
