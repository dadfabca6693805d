// Package pkg provides the core libraries for Shelfplan planogram editing.
//
// # Overview
//
// Shelfplan lays out retail products on shelving units. Items dropped onto a
// planogram fall onto the nearest shelf or stack onto the item below, and are
// pushed sideways off items they would overlap. The pkg directory is organized
// into these areas:
//
//  1. [core] - Placement geometry (topology, items, gravity and collisions)
//  2. [planogram] - The editable document and its TOML/JSON formats
//  3. [catalog] - Products that can be dropped
//  4. [editor] - Load, edit, validate and save, shared by CLI and API
//  5. [storage] - File, memory, Redis and MongoDB persistence
//  6. [server] - HTTP API
//  7. [render] - Support graph diagrams (DOT, SVG, PDF, PNG)
//
// # Architecture
//
// The typical data flow for a drop:
//
//	Catalog product + drop point
//	         ↓
//	    [editor] package (lock, load from [storage])
//	         ↓
//	    [planogram] package (build topology and engine)
//	         ↓
//	    [core/placement] package (gravity, collision)
//	         ↓
//	    Saved planogram + placement result
//
// # Quick Start
//
//	p := planogram.New("aisle 4")
//	fp := planogram.ProductFootprint(product)
//	it, res, err := p.Drop(fp, 12, 50, placement.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(it.Bottom, res.Floating())
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [core]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/core
// [core/placement]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/core/placement
// [planogram]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/planogram
// [catalog]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/catalog
// [editor]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/editor
// [storage]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/storage
// [server]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/shelfplan/pkg/render
package pkg
