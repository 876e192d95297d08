package cmd

import (
	"testing"

	"github.com/felixgeelhaar/kopi/internal/api"
)

func TestSortPopularCheapestFirst(t *testing.T) {
	items := []api.MenuItem{
		{ID: 1, Name: "Pour Over", Price: 6},
		{ID: 2, Name: "Espresso", Price: 3},
		{ID: 3, Name: "Latte", Price: 4.5},
	}

	got := sortPopular(items)
	if got[0].ID != 2 {
		t.Errorf("sortPopular() first = %d, want 2", got[0].ID)
	}
	if got[2].ID != 1 {
		t.Errorf("sortPopular() last = %d, want 1", got[2].ID)
	}
}

func TestSortPopularStable(t *testing.T) {
	items := []api.MenuItem{
		{ID: 1, Name: "Flat White", Price: 4},
		{ID: 2, Name: "Cappuccino", Price: 4},
	}

	got := sortPopular(items)
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("sortPopular() reordered equal prices: %v", got)
	}
}
