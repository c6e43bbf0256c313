package domain

import (
	"strings"
	"sync"
	"time"
)

// FilterAll is the "match everything" sentinel for the course, year and payment status predicates.
const FilterAll = "all"

// RegistrationFilter is the admin dashboard predicate set. Predicates combine with AND.
// Empty strings and FilterAll leave a predicate disabled.
type RegistrationFilter struct {
	Query         string `json:"q,omitempty"`
	Course        string `json:"course,omitempty"`
	Year          string `json:"year,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, FilterAll)
}

// MatchesAll reports whether every predicate is at its sentinel.
func (f RegistrationFilter) MatchesAll() bool {
	return strings.TrimSpace(f.Query) == "" && isAll(f.Course) && isAll(f.Year) && isAll(f.PaymentStatus)
}

// Matches evaluates the predicate set against one registration.
func (f RegistrationFilter) Matches(r *Registration) bool {
	if r == nil {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hit := false
		for _, v := range []string{r.Name, r.Email, r.Phone, r.TransactionID} {
			if strings.Contains(strings.ToLower(v), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if !isAll(f.Course) && r.Course != f.Course {
		return false
	}
	if !isAll(f.Year) && r.Year != f.Year {
		return false
	}
	if !isAll(f.PaymentStatus) && string(r.CurrentPaymentStatus()) != strings.ToLower(strings.TrimSpace(f.PaymentStatus)) {
		return false
	}
	return true
}

// FilterRegistrations returns the records matching f in input order.
func FilterRegistrations(records []*Registration, f RegistrationFilter) []*Registration {
	if f.MatchesAll() {
		out := make([]*Registration, len(records))
		copy(out, records)
		return out
	}
	out := make([]*Registration, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// RegistrationView is the admin's in-memory copy of the collection as last fetched. One view is
// shared by every dashboard request, so filtering never mutates it: each caller gets its own
// filtered slice from Select. It is safe for concurrent use.
type RegistrationView struct {
	mu        sync.RWMutex
	all       []*Registration
	fetchedAt time.Time
}

// NewRegistrationView wraps a freshly fetched collection.
func NewRegistrationView(records []*Registration, fetchedAt time.Time) *RegistrationView {
	all := make([]*Registration, len(records))
	copy(all, records)
	return &RegistrationView{all: all, fetchedAt: fetchedAt}
}

// Select returns the records matching f. The result belongs to the caller.
func (v *RegistrationView) Select(f RegistrationFilter) []*Registration {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return FilterRegistrations(v.all, f)
}

// Remove drops the registration with id. It returns false when the id is not present.
func (v *RegistrationView) Remove(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	var found bool
	v.all, found = removeByID(v.all, id)
	return found
}

// All returns a copy of the full set.
func (v *RegistrationView) All() []*Registration {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*Registration, len(v.all))
	copy(out, v.all)
	return out
}

// Len is the size of the full set.
func (v *RegistrationView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.all)
}

// FetchedAt is when the full set was read from the store.
func (v *RegistrationView) FetchedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.fetchedAt
}

func removeByID(records []*Registration, id string) ([]*Registration, bool) {
	out := make([]*Registration, 0, len(records))
	found := false
	for _, r := range records {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}
