package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type mapCatalog map[string]EventOffering

func (m mapCatalog) ListCategories() []Category                   { return nil }
func (m mapCatalog) ListEvents(category Category) []EventOffering { return nil }
func (m mapCatalog) Lookup(id string) (EventOffering, bool) {
	e, ok := m[id]
	return e, ok
}

var testOfferings = []EventOffering{
	NewEventOffering("tech1", "Code Wars", 200, CategoryTechnical, ""),
	NewEventOffering("tech2", "RoboRace", 300, CategoryTechnical, ""),
	NewEventOffering("cult1", "Nukkad Natak", 150, CategoryCultural, ""),
	NewEventOffering("game1", "Valorant Cup", 250, CategoryGaming, ""),
	NewEventOffering("free1", "Open Mic", 0, CategoryCultural, ""),
}

func sumPrices(events []EventOffering) int64 {
	var total int64
	for _, e := range events {
		total += e.Price
	}
	return total
}

func TestSelection_Toggle(t *testing.T) {
	codeWars := testOfferings[0]
	roboRace := testOfferings[1]

	s := Selection{}
	require.True(t, s.IsEmpty())
	require.Equal(t, int64(0), s.Total())

	s = s.Toggle(codeWars)
	assert.True(t, s.Contains("tech1"))
	assert.Equal(t, int64(200), s.Total())

	s = s.Toggle(roboRace)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, int64(500), s.Total())

	s = s.Toggle(codeWars)
	assert.False(t, s.Contains("tech1"))
	assert.Equal(t, []EventOffering{roboRace}, s.Events())
	assert.Equal(t, int64(300), s.Total())

	assert.True(t, s.Clear().IsEmpty())
}

func TestSelection_ToggleDoesNotModifyReceiver(t *testing.T) {
	before := NewSelection(testOfferings[0])
	after := before.Toggle(testOfferings[1])

	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())
}

func TestSelection_TotalNeverDrifts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := Selection{}
		steps := rapid.IntRange(0, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			e := rapid.SampledFrom(testOfferings).Draw(t, fmt.Sprintf("event-%d", i))
			s = s.Toggle(e)
			if got, want := s.Total(), sumPrices(s.Events()); got != want {
				t.Fatalf("total %d, sum of members %d", got, want)
			}
		}
	})
}

func TestSelection_ToggleIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfDistinct(rapid.SampledFrom(testOfferings), func(e EventOffering) string { return e.ID }).Draw(t, "initial")
		before := NewSelection(ids...)
		e := rapid.SampledFrom(testOfferings).Draw(t, "toggled")

		after := before.Toggle(e).Toggle(e)
		if !assert.ObjectsAreEqual(before, after) {
			t.Fatalf("toggle twice changed selection: %v -> %v", before.Events(), after.Events())
		}
	})
}

func TestSelection_Snapshot(t *testing.T) {
	s := NewSelection(testOfferings[0], testOfferings[2])

	got := s.Snapshot()

	require.Equal(t, []RegisteredEvent{
		{ID: "cult1", Name: "Nukkad Natak", Price: 150, Type: "cultural"},
		{ID: "tech1", Name: "Code Wars", Price: 200, Type: "technical"},
	}, got)
}

func TestSelectionFromIDs(t *testing.T) {
	catalog := mapCatalog{}
	for _, e := range testOfferings {
		catalog[e.ID] = e
	}

	tests := []struct {
		name        string
		ids         []string
		wantIDs     []string
		wantTotal   int64
		wantUnknown []string
	}{
		{name: "empty", ids: nil, wantIDs: []string{}, wantTotal: 0},
		{name: "known ids", ids: []string{"tech1", "game1"}, wantIDs: []string{"game1", "tech1"}, wantTotal: 450},
		{name: "duplicates collapse", ids: []string{"tech1", "tech1", " tech1 "}, wantIDs: []string{"tech1"}, wantTotal: 200},
		{name: "unknown id reported", ids: []string{"tech1", "nope"}, wantIDs: []string{"tech1"}, wantTotal: 200, wantUnknown: []string{"nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SelectionFromIDs(catalog, tt.ids)
			if tt.wantUnknown != nil {
				var unknown *UnknownEventsError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, tt.wantUnknown, unknown.IDs)
			} else {
				require.NoError(t, err)
			}
			gotIDs := []string{}
			for _, e := range s.Events() {
				gotIDs = append(gotIDs, e.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.Equal(t, tt.wantTotal, s.Total())
		})
	}
}
