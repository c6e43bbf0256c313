package domain

// Category groups festival events on the catalog pages.
type Category string

// Known catalog categories, in display order.
const (
	CategoryTechnical Category = "technical"
	CategoryCultural  Category = "cultural"
	CategoryGaming    Category = "gaming"
)

// EventOffering is a purchasable festival event. Offerings are compiled into the
// binary and never mutated at runtime.
// swagger:model EventOffering
type EventOffering struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// NewEventOffering returns an EventOffering with the given fields.
func NewEventOffering(id, name string, price int64, category Category, description string) EventOffering {
	return EventOffering{
		ID:          id,
		Name:        name,
		Price:       price,
		Category:    category,
		Description: description,
	}
}

// Catalog is the read-only list of offerable events.
type Catalog interface {
	ListCategories() []Category
	ListEvents(category Category) []EventOffering
	Lookup(id string) (EventOffering, bool)
}
