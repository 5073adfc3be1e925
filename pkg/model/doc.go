// Package model defines the declaration records of page-builder components.
// A Definition names its template, its allowed parent and child plugin types
// and the mixin tags (Background, Spacing, Attributes) it opts into. Fields
// describe editor inputs: text, boolean toggle, integer, single choice, icon
// picker, rich text and attribute maps. Validation rules expose canonical
// identifiers (currently "min") with string parameters so renderers and the
// form cleaner can share one representation.
package model
