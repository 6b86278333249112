// Package field holds the validation unit of a submission and the request
// scoped cache that feeds template rendering.
//
// A Field is built from a typed value through Config and is immutable once
// built: its key, label, canonical string value and required flag never
// change, and Validate may be called any number of times. A Cache collects the
// fields of one request together with their pending error lists.
package field
