// Package demo is a small todo and user application built on go-submissions.
// It exposes a JSON API whose failures are reported by ginsubmissions and
// server-rendered pages whose forms are re-rendered from the field cache.
package demo
