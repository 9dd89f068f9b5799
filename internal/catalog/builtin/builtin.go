// Package builtin registers the catalogs embedded in the binary.
package builtin

import (
	_ "embed"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
	"github.com/vovakirdan/delta-legacy/internal/registry"
)

// DefaultID is the catalog played when none is requested.
const DefaultID = "delta"

//go:embed delta.yaml
var deltaYAML []byte

// Delta returns the Delta Legacy catalog.
func Delta() (catalog.Catalog, error) {
	return catalog.Parse(deltaYAML, ".yaml")
}

func init() {
	registry.Register(DefaultID, Delta)
}
