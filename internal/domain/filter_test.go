package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistrations() []*Registration {
	return []*Registration{
		{ID: "r1", Name: "Asha Verma", Email: "asha@example.com", Phone: "9876543210", Course: "B.Tech", Year: "2nd Year", TransactionID: "UPIREF1"},
		{ID: "r2", Name: "Rohan Das", Email: "rohan@college.in", Phone: "9123456780", Course: "BCA", Year: "1st Year"},
		{ID: "r3", Name: "Meera Iyer", Email: "meera@example.com", Phone: "9000000001", Course: "B.Tech", Year: "1st Year", TransactionID: "pi_3Nabc"},
		{ID: "r4", Name: "Kabir", Email: "kabir@example.com", Phone: "9000000002", Course: "B.Tech", Year: "2nd Year", TransactionID: "  ", PaymentStatus: PaymentStatusCompleted},
	}
}

func ids(records []*Registration) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterRegistrations(t *testing.T) {
	records := sampleRegistrations()

	tests := []struct {
		name   string
		filter RegistrationFilter
		want   []string
	}{
		{name: "zero filter returns input in order", filter: RegistrationFilter{}, want: []string{"r1", "r2", "r3", "r4"}},
		{name: "all sentinels return input in order", filter: RegistrationFilter{Course: "all", Year: "ALL", PaymentStatus: "all"}, want: []string{"r1", "r2", "r3", "r4"}},
		{name: "query matches name case-insensitively", filter: RegistrationFilter{Query: "ROHAN"}, want: []string{"r2"}},
		{name: "query matches email", filter: RegistrationFilter{Query: "example.com"}, want: []string{"r1", "r3", "r4"}},
		{name: "query matches phone", filter: RegistrationFilter{Query: "91234"}, want: []string{"r2"}},
		{name: "query matches transaction id", filter: RegistrationFilter{Query: "pi_3n"}, want: []string{"r3"}},
		{name: "exact course", filter: RegistrationFilter{Course: "BCA"}, want: []string{"r2"}},
		{name: "course is not a substring match", filter: RegistrationFilter{Course: "B.Te"}, want: []string{}},
		{name: "exact year", filter: RegistrationFilter{Year: "1st Year"}, want: []string{"r2", "r3"}},
		{name: "completed derives from transaction id", filter: RegistrationFilter{PaymentStatus: "completed"}, want: []string{"r1", "r3"}},
		{name: "pending ignores stale stored flag", filter: RegistrationFilter{PaymentStatus: "pending"}, want: []string{"r2", "r4"}},
		{name: "predicates combine with AND", filter: RegistrationFilter{Course: "B.Tech", Year: "2nd Year", PaymentStatus: "completed"}, want: []string{"r1"}},
		{name: "no match", filter: RegistrationFilter{Query: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRegistrations(records, tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterRegistrations_DoesNotAliasInput(t *testing.T) {
	records := sampleRegistrations()

	got := FilterRegistrations(records, RegistrationFilter{})
	got[0] = nil

	require.NotNil(t, records[0])
}

func TestRegistrationView_Remove(t *testing.T) {
	view := NewRegistrationView(sampleRegistrations(), time.Now())
	f := RegistrationFilter{Course: "B.Tech"}
	require.Equal(t, []string{"r1", "r3", "r4"}, ids(view.Select(f)))

	assert.True(t, view.Remove("r3"))
	assert.Equal(t, []string{"r1", "r2", "r4"}, ids(view.All()))
	assert.Equal(t, []string{"r1", "r4"}, ids(view.Select(f)))

	t.Run("unknown id is reported and leaves the view untouched", func(t *testing.T) {
		assert.False(t, view.Remove("missing"))
		assert.Equal(t, []string{"r1", "r2", "r4"}, ids(view.All()))
		assert.Equal(t, 3, view.Len())
	})

	t.Run("id outside the filter is removed from the full set", func(t *testing.T) {
		assert.True(t, view.Remove("r2"))
		assert.Equal(t, []string{"r1", "r4"}, ids(view.All()))
		assert.Equal(t, []string{"r1", "r4"}, ids(view.Select(f)))
	})
}

func TestRegistrationView_SelectIsPerCaller(t *testing.T) {
	fetchedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	view := NewRegistrationView(sampleRegistrations(), fetchedAt)

	firstYear := view.Select(RegistrationFilter{Year: "1st Year"})
	btech := view.Select(RegistrationFilter{Course: "B.Tech"})

	assert.Equal(t, []string{"r2", "r3"}, ids(firstYear))
	assert.Equal(t, []string{"r1", "r3", "r4"}, ids(btech))
	firstYear[0] = nil
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(view.All()))
	assert.Equal(t, fetchedAt, view.FetchedAt())
}
