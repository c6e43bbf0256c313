// Package catalog holds the festival's compiled-in list of offerable events.
package catalog

import "goonj/internal/domain"

// Catalog is an immutable, ordered set of offerings grouped by category.
type Catalog struct {
	categories []domain.Category
	byCategory map[domain.Category][]domain.EventOffering
	byID       map[string]domain.EventOffering
	all        []domain.EventOffering
}

// New builds a catalog. Categories keep the given order; offerings keep their order within a
// category. An offering whose category is not listed is appended to the category list. Later
// offerings with an ID already seen are ignored.
func New(categories []domain.Category, offerings []domain.EventOffering) *Catalog {
	c := &Catalog{
		byCategory: make(map[domain.Category][]domain.EventOffering),
		byID:       make(map[string]domain.EventOffering, len(offerings)),
	}
	seen := make(map[domain.Category]bool, len(categories))
	for _, cat := range categories {
		if seen[cat] {
			continue
		}
		seen[cat] = true
		c.categories = append(c.categories, cat)
	}
	for _, o := range offerings {
		if _, dup := c.byID[o.ID]; dup {
			continue
		}
		if !seen[o.Category] {
			seen[o.Category] = true
			c.categories = append(c.categories, o.Category)
		}
		c.byID[o.ID] = o
		c.byCategory[o.Category] = append(c.byCategory[o.Category], o)
		c.all = append(c.all, o)
	}
	return c
}

// ListCategories returns the category tags in display order.
func (c *Catalog) ListCategories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ListEvents returns the offerings of one category in catalog order. Unknown categories yield an empty slice.
func (c *Catalog) ListEvents(category domain.Category) []domain.EventOffering {
	events := c.byCategory[category]
	out := make([]domain.EventOffering, len(events))
	copy(out, events)
	return out
}

// Lookup finds an offering by ID.
func (c *Catalog) Lookup(id string) (domain.EventOffering, bool) {
	o, ok := c.byID[id]
	return o, ok
}

// All returns every offering, grouped by category in display order.
func (c *Catalog) All() []domain.EventOffering {
	out := make([]domain.EventOffering, 0, len(c.all))
	for _, cat := range c.categories {
		out = append(out, c.byCategory[cat]...)
	}
	return out
}

// HasCategory reports whether category is part of the catalog.
func (c *Catalog) HasCategory(category domain.Category) bool {
	for _, cat := range c.categories {
		if cat == category {
			return true
		}
	}
	return false
}
