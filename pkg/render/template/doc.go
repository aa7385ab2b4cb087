// Package template defines the template rendering seam used by the page
// shell, so the pongo2 engine can be swapped for another implementation.
package template
