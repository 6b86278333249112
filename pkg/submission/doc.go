// Package submission ties typed payloads to their fields and runs validation
// passes over them.
//
// A payload describes itself through Submission.Fields. Validate builds the
// field list, stores every field in the request's field.Cache, validates all
// fields concurrently and either succeeds or returns a *ValidationError
// carrying the reasons per field key. Errors that are not validation failures
// are returned unchanged so callers can answer them with a 500.
package submission
