// Package registry provides a global registry for stage catalogs.
// Catalogs register themselves in init() functions, allowing the platform
// to discover and load content without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/delta-legacy/internal/catalog"
)

// CatalogInfo contains metadata about a registered catalog.
type CatalogInfo struct {
	ID     string
	Title  string
	Stages int
}

// Factory builds a fresh copy of a catalog.
type Factory func() (catalog.Catalog, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]CatalogInfo)
	mu        sync.RWMutex
)

// Register adds a catalog factory to the registry.
// Typically called from an init() function.
// Panics if the id is already registered or the catalog is invalid.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: catalog %q already registered", id))
	}

	c, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: catalog %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = CatalogInfo{
		ID:     id,
		Title:  c.Title,
		Stages: c.StageCount(),
	}
}

// List returns information about all registered catalogs, sorted by ID.
func List() []CatalogInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CatalogInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the catalog registered under id.
func Create(id string) (catalog.Catalog, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return catalog.Catalog{}, fmt.Errorf("registry: unknown catalog %q", id)
	}

	return f()
}

// Exists checks if a catalog with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
