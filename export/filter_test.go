package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesType(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		allowed []string
		want    bool
	}{
		{"empty set passes everything", "Run", nil, true},
		{"exact match", "Run", []string{"Run"}, true},
		{"case-insensitive match", "Run", []string{"run"}, true},
		{"no match", "Ride", []string{"Run", "Walk"}, false},
		{"second entry matches", "Walk", []string{"Run", "walk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesType(tt.typ, tt.allowed))
		})
	}
}

func TestMatchesYear(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		allowed []string
		want    bool
	}{
		{"empty set passes everything", "2023-06-01T091500", nil, true},
		{"year matches", "2023-06-01T091500", []string{"2023"}, true},
		{"year differs", "2022-06-01T091500", []string{"2023"}, false},
		{"one of several", "2021-01-01T000000", []string{"2023", "2021"}, true},
		{"date too short", "202", []string{"2023"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesYear(tt.date, tt.allowed))
		})
	}
}

func TestMatchesGear(t *testing.T) {
	assert.True(t, MatchesGear("", nil))
	assert.True(t, MatchesGear("bike1", []string{"Bike1"}))
	assert.False(t, MatchesGear("bike2", []string{"bike1"}))
	assert.False(t, MatchesGear("", []string{"bike1"}))
}

func TestFilterMatch(t *testing.T) {
	activity := Activity{Type: "Run", Gear: "shoes1"}
	date := "2023-06-01T091500"

	t.Run("empty filter passes", func(t *testing.T) {
		assert.True(t, Filter{}.Match(activity, date))
		assert.True(t, Filter{}.Empty())
	})

	t.Run("all predicates must pass", func(t *testing.T) {
		f := Filter{Types: []string{"Run"}, Years: []string{"2023"}, Gear: []string{"shoes1"}}
		assert.True(t, f.Match(activity, date))

		f.Years = []string{"2022"}
		assert.False(t, f.Match(activity, date))
	})

	t.Run("single failing predicate rejects", func(t *testing.T) {
		assert.False(t, Filter{Types: []string{"Ride"}}.Match(activity, date))
		assert.False(t, Filter{Gear: []string{"bike1"}}.Match(activity, date))
	})
}
