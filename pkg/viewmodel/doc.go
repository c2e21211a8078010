// Package viewmodel defines the entities the rendering layer consumes. The
// types carry no behavior beyond JSON shape; the package also holds the
// Korea Standard Time formatting helpers used when displaying them.
package viewmodel
