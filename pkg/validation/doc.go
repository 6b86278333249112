// Package validation holds the leaf policies of the submission engine: the
// validation context a pass runs in, the strategies deciding when a field is
// required or absent, the user-facing Error type, and a set of rules backed by
// go-playground/validator that can be attached to fields.
package validation
