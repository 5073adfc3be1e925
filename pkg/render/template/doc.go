// Package template defines the renderer-agnostic template contract used by
// the blog views. The pongo subpackage provides the Django-syntax engine.
package template
