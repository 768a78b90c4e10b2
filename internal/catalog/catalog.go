package catalog

import "strings"

// Catalog is the static resource table mapping venue name to its maximum
// participant count. It is loaded once from configuration at startup.
//
// Lookups are case-insensitive: config loaders fold map keys to lower case,
// so "Meeting Room" and "meeting room" name the same venue.
type Catalog struct {
	limits          map[string]int
	defaultCapacity int
}

func New(limits map[string]int, defaultCapacity int) *Catalog {
	folded := make(map[string]int, len(limits))
	for name, limit := range limits {
		folded[strings.ToLower(name)] = limit
	}
	return &Catalog{limits: folded, defaultCapacity: defaultCapacity}
}

// Capacity returns the participant limit for a resource. Unknown resource
// names are not an error: they fall back to the configured default capacity,
// so callers must tolerate names outside the catalog.
func (c *Catalog) Capacity(resource string) int {
	if limit, ok := c.limits[strings.ToLower(resource)]; ok {
		return limit
	}
	return c.defaultCapacity
}

// Resources returns a copy of the catalog table, keyed by folded name.
func (c *Catalog) Resources() map[string]int {
	copied := make(map[string]int, len(c.limits))
	for name, limit := range c.limits {
		copied[name] = limit
	}
	return copied
}
