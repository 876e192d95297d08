package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/storage"
)

var (
	espresso = &api.MenuItem{ID: 1, Name: "Espresso", Price: 10}
	latte    = &api.MenuItem{ID: 2, Name: "Latte", Price: 15}
)

func newCart(t *testing.T) (*Store, storage.Store) {
	t.Helper()
	st := storage.NewMemStore()
	return New(st, nil), st
}

func TestAddItemMergesByID(t *testing.T) {
	c, _ := newCart(t)

	require.True(t, c.AddItem(espresso, 2).Success)
	require.True(t, c.AddItem(espresso, 3).Success)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 50.0, lines[0].Subtotal)
	assert.Equal(t, 5, c.ItemCount())
	assert.Equal(t, 50.0, c.TotalPrice())
}

func TestAddItemSnapshotsMenuFields(t *testing.T) {
	c, _ := newCart(t)

	item := &api.MenuItem{
		ID:       3,
		Name:     "Mocha",
		Price:    5.5,
		Category: "coffee",
		ImageURL: "https://cdn.example/mocha.png",
	}
	require.True(t, c.AddItem(item, 1).Success)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5.5, lines[0].UnitPrice)
	assert.Equal(t, "coffee", lines[0].Category)
	assert.Equal(t, "https://cdn.example/mocha.png", lines[0].ImageURL)

	// Later menu edits must not leak into the snapshot.
	item.Price = 99
	assert.Equal(t, 5.5, c.Lines()[0].UnitPrice)
}

func TestAddItemSeparateLines(t *testing.T) {
	c, _ := newCart(t)

	c.AddItem(espresso, 1)
	c.AddItem(latte, 2)

	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 3, c.ItemCount())
	assert.Equal(t, 40.0, c.TotalPrice())
	assert.False(t, c.IsEmpty())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	c, _ := newCart(t)

	assert.False(t, c.AddItem(espresso, 0).Success)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 2)

	require.True(t, c.UpdateQuantity(espresso.ID, 0).Success)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestUpdateQuantityRecomputesSubtotal(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 1)

	require.True(t, c.UpdateQuantity(espresso.ID, 4).Success)
	assert.Equal(t, 40.0, c.TotalPrice())
}

func TestRemoveItemAbsent(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 1)

	res := c.RemoveItem(999)
	assert.False(t, res.Success)
	assert.Len(t, c.Lines(), 1, "a failed removal leaves the cart unchanged")
}

func TestIncreaseDecreaseQuantity(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 1)

	require.True(t, c.IncreaseQuantity(espresso.ID).Success)
	assert.Equal(t, 2, c.ItemCount())

	require.True(t, c.DecreaseQuantity(espresso.ID).Success)
	require.True(t, c.DecreaseQuantity(espresso.ID).Success)
	assert.True(t, c.IsEmpty(), "decrementing to zero removes the line")

	assert.False(t, c.IncreaseQuantity(espresso.ID).Success, "the removed line is gone")
}

func TestClearCart(t *testing.T) {
	c, st := newCart(t)
	c.AddItem(espresso, 2)
	c.AddItem(latte, 1)

	c.ClearCart()

	assert.True(t, c.IsEmpty())
	raw, err := st.Get(storage.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, "null", string(raw), "the empty cart is persisted too")
}

func TestOrderLinesProjection(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 2)
	c.AddItem(latte, 1)

	lines := c.OrderLines()
	require.Len(t, lines, 2)
	assert.Equal(t, api.OrderLine{MenuID: 1, Quantity: 2, UnitPrice: 10}, lines[0])
	assert.Equal(t, api.OrderLine{MenuID: 2, Quantity: 1, UnitPrice: 15}, lines[1])
}

func TestValidateEmptyCart(t *testing.T) {
	c, _ := newCart(t)

	v := c.Validate()
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "the cart is empty")
}

func TestValidateHealthyCart(t *testing.T) {
	c, _ := newCart(t)
	c.AddItem(espresso, 1)

	v := c.Validate()
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
}

func TestPersistenceRoundTrip(t *testing.T) {
	st := storage.NewMemStore()

	c := New(st, nil)
	c.AddItem(espresso, 2)
	c.AddItem(latte, 1)

	// A fresh store over the same state picks up the persisted cart.
	reloaded := New(st, nil)
	reloaded.Load()

	assert.Equal(t, 3, reloaded.ItemCount())
	assert.Equal(t, 35.0, reloaded.TotalPrice())
}

func TestLoadDiscardsCorruptState(t *testing.T) {
	st := storage.NewMemStore()
	require.NoError(t, st.Put(storage.KeyCart, []byte("{not json")))

	c := New(st, nil)
	c.Load()

	assert.True(t, c.IsEmpty())
}

func TestPersistedShape(t *testing.T) {
	c, st := newCart(t)
	c.AddItem(espresso, 2)

	raw, err := st.Get(storage.KeyCart)
	require.NoError(t, err)

	var lines []Line
	require.NoError(t, json.Unmarshal(raw, &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, uint(1), lines[0].MenuID)
	assert.Equal(t, 20.0, lines[0].Subtotal)
	assert.False(t, lines[0].AddedAt.IsZero())
}
