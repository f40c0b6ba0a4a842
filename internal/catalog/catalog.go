// Package catalog holds the product records the showcase can display and
// resolves the one a visitor asked for.
package catalog

import (
	"strings"

	"Showcase/entity"
)

// Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	keys     []string
	products map[string]*entity.Product
	lower    map[string]string
	skipped  int
}

// Empty returns a catalog with no products; Resolve on it always misses.
func Empty() *Catalog {
	return &Catalog{
		products: make(map[string]*entity.Product),
		lower:    make(map[string]string),
	}
}

// New builds a catalog from keys in display order. Keys missing from
// products are ignored.
func New(keys []string, products map[string]entity.Product) *Catalog {
	c := Empty()
	for _, k := range keys {
		if p, ok := products[k]; ok {
			c.add(k, p)
		}
	}
	return c
}

// add keeps the position of the first occurrence of key; a repeated key
// replaces the record.
func (c *Catalog) add(key string, p entity.Product) {
	p.Normalize()
	if p.ID == "" {
		p.ID = key
	}
	if _, ok := c.products[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.products[key] = &p
	c.lower[strings.ToLower(key)] = key
}

func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns product keys in source order.
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Skipped reports records dropped while parsing (list entries without id).
func (c *Catalog) Skipped() int {
	return c.skipped
}

func (c *Catalog) Get(key string) (*entity.Product, bool) {
	p, ok := c.products[key]
	return p, ok
}

// Resolve finds the product for requested, matching exactly first and then
// case-insensitively. An empty or unknown key falls back to the first product
// in source order. It returns nil and "" only when the catalog is empty.
func (c *Catalog) Resolve(requested string) (*entity.Product, string) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		if p, ok := c.products[requested]; ok {
			return p, requested
		}
		if key, ok := c.lower[strings.ToLower(requested)]; ok {
			return c.products[key], key
		}
	}
	if len(c.keys) == 0 {
		return nil, ""
	}
	key := c.keys[0]
	return c.products[key], key
}
