// Package template defines the narrow renderer contract tags render through,
// so the engine behind it can be swapped.
package template
