// Package render turns the state of a field.Cache into view data for
// templates: one record per field carrying its sticky value, label, required
// flag and error reasons, plus tag-specific extras.
package render
