// Package meshio provides mesh import, export and snapshot persistence.
//
// Supported formats are the FreeFEM 2D MSH text format (import), the legacy
// ASCII VTK format (export) and a binary snapshot format that persists a
// mesh together with its derived caches.
package meshio

import "github.com/hupe1980/meshgo"

// Options contains configuration options for import/export operations.
type Options struct {
	// Title labels exported data sets.
	Title string

	// Logger receives import/export diagnostics.
	Logger *meshgo.Logger

	// MeshOptions are forwarded to meshes constructed by import and
	// snapshot restore.
	MeshOptions []meshgo.Option
}

// DefaultOptions contains the default configuration options for
// import/export operations.
var DefaultOptions = Options{
	Title: "mesh",
}

func resolveOptions(optFns []func(*Options)) Options {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = meshgo.NoopLogger()
	}
	return opts
}
