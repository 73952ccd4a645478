// Package sketch defines the core sketch data model for Stylus: the
// entity and constraint tagged unions and the document that owns them,
// with selection, hit testing, constraint validation and snapshot-based
// undo/redo.
package sketch
