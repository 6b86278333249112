// Package ginsubmissions connects the validation engine to gin.
//
// Handlers bind the payload with Bind, validate with pkg/submission using the
// request's Cache, and report failures with c.Error. ErrorHandler, mounted
// before the routes, turns a *submission.ValidationError into the 422 JSON
// body, a BindError into 400 and anything else into 500.
package ginsubmissions
