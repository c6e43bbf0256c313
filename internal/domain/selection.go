package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is the set of offerings chosen during one registration session.
// It is a value: Toggle and Clear return a new Selection and never modify the receiver.
// Members are kept ordered by ID so two selections holding the same set compare equal.
type Selection struct {
	events []EventOffering
}

// NewSelection returns a Selection holding the given offerings, deduplicated by ID.
func NewSelection(events ...EventOffering) Selection {
	var s Selection
	for _, e := range events {
		if !s.Contains(e.ID) {
			s = s.Toggle(e)
		}
	}
	return s
}

// Toggle removes e when an offering with the same ID is present and adds it otherwise.
func (s Selection) Toggle(e EventOffering) Selection {
	i := sort.Search(len(s.events), func(i int) bool { return s.events[i].ID >= e.ID })
	if i < len(s.events) && s.events[i].ID == e.ID {
		if len(s.events) == 1 {
			return Selection{}
		}
		next := make([]EventOffering, 0, len(s.events)-1)
		next = append(next, s.events[:i]...)
		next = append(next, s.events[i+1:]...)
		return Selection{events: next}
	}
	next := make([]EventOffering, 0, len(s.events)+1)
	next = append(next, s.events[:i]...)
	next = append(next, e)
	next = append(next, s.events[i:]...)
	return Selection{events: next}
}

// Clear returns an empty Selection.
func (Selection) Clear() Selection {
	return Selection{}
}

// Total is the sum of member prices, recomputed on every call.
func (s Selection) Total() int64 {
	var total int64
	for _, e := range s.events {
		total += e.Price
	}
	return total
}

// Events returns a copy of the members ordered by ID.
func (s Selection) Events() []EventOffering {
	out := make([]EventOffering, len(s.events))
	copy(out, s.events)
	return out
}

// Contains reports whether an offering with the given ID is selected.
func (s Selection) Contains(id string) bool {
	i := sort.Search(len(s.events), func(i int) bool { return s.events[i].ID >= id })
	return i < len(s.events) && s.events[i].ID == id
}

// Len returns the number of selected offerings.
func (s Selection) Len() int {
	return len(s.events)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.events) == 0
}

// Snapshot copies the members into the denormalised form stored on a Registration.
func (s Selection) Snapshot() []RegisteredEvent {
	out := make([]RegisteredEvent, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, RegisteredEvent{
			ID:    e.ID,
			Name:  e.Name,
			Price: e.Price,
			Type:  string(e.Category),
		})
	}
	return out
}

// UnknownEventsError lists event IDs that are not in the catalog.
type UnknownEventsError struct {
	IDs []string
}

func (e *UnknownEventsError) Error() string {
	return fmt.Sprintf("unknown events: %s", strings.Join(e.IDs, ", "))
}

// SelectionFromIDs resolves ids against the catalog. Duplicate ids are collapsed.
// Unknown ids are collected into an *UnknownEventsError; the known ones are still selected.
func SelectionFromIDs(catalog Catalog, ids []string) (Selection, error) {
	var (
		s       Selection
		unknown []string
	)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		e, ok := catalog.Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if !s.Contains(e.ID) {
			s = s.Toggle(e)
		}
	}
	if len(unknown) > 0 {
		return s, &UnknownEventsError{IDs: unknown}
	}
	return s, nil
}
