package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/easyway-storefront/internal/domain/catalog"
)

func line(productID int64, rupees float64) Line {
	return Line{
		ProductID:        productID,
		NameTranslations: catalog.Names{{Language: "en", Name: "Item"}},
		UnitPrice:        catalog.Rupees(rupees),
		Quantity:         7,
	}
}

func sumLines(c *Cart) catalog.Money {
	var total catalog.Money
	for _, l := range c.Lines() {
		total += l.UnitPrice.Times(l.Quantity)
	}
	return total
}

func TestAddTwiceIncrementsSingleLine(t *testing.T) {
	c := New(nil)

	first := c.Add(line(1, 60))
	second := c.Add(Line{ProductID: 1})

	require.Equal(t, 1, c.Len())
	l, ok := c.Line(1)
	require.True(t, ok)
	assert.Equal(t, 2, l.Quantity)
	assert.Equal(t, catalog.Rupees(120), c.Total())

	assert.Nil(t, first.Before)
	assert.Equal(t, 1, first.After.Quantity)
	assert.Equal(t, 1, second.Before.Quantity)
	assert.Equal(t, 2, second.After.Quantity)
}

func TestAddForcesQuantityOne(t *testing.T) {
	c := New(nil)
	c.Add(line(3, 10))

	l, _ := c.Line(3)
	assert.Equal(t, 1, l.Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New([]Line{{ProductID: 1, UnitPrice: 500, Quantity: 2}})

	ch := c.Remove(99)

	assert.False(t, ch.Changed())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, catalog.Money(1000), c.Total())
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets quantity and recomputes total", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 250, Quantity: 1}})
		ch := c.UpdateQuantity(1, 4)

		assert.True(t, ch.Changed())
		assert.Equal(t, catalog.Money(1000), c.Total())
	})

	t.Run("zero removes the line", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 250, Quantity: 3}})
		ch := c.UpdateQuantity(1, 0)

		assert.True(t, ch.Removed())
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, catalog.Money(0), c.Total())
	})

	t.Run("negative removes the line", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 250, Quantity: 3}})
		c.UpdateQuantity(1, -2)

		_, ok := c.Line(1)
		assert.False(t, ok)
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		c := New(nil)
		ch := c.UpdateQuantity(5, 2)

		assert.False(t, ch.Changed())
		assert.Equal(t, 0, c.Len())
	})

	t.Run("same quantity is not a change", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 250, Quantity: 3}})
		assert.False(t, c.UpdateQuantity(1, 3).Changed())
	})
}

func TestTotalMatchesLinesAfterAnySequence(t *testing.T) {
	c := New(nil)
	steps := []func(){
		func() { c.Add(line(1, 60)) },
		func() { c.Add(line(2, 12.5)) },
		func() { c.Add(line(1, 60)) },
		func() { c.UpdateQuantity(2, 5) },
		func() { c.Add(line(3, 0.99)) },
		func() { c.Remove(1) },
		func() { c.UpdateQuantity(3, 0) },
		func() { c.Add(line(4, 33.33)) },
		func() { c.Remove(42) },
	}

	for i, step := range steps {
		step()
		assert.Equal(t, sumLines(c), c.Total(), "after step %d", i)
	}
}

func TestNewNormalisesLines(t *testing.T) {
	c := New([]Line{
		{ProductID: 1, UnitPrice: 100, Quantity: 1},
		{ProductID: 2, UnitPrice: 100, Quantity: 0},
		{ProductID: 1, UnitPrice: 100, Quantity: 2, CardItemID: 11},
	})

	require.Equal(t, 1, c.Len())
	l, _ := c.Line(1)
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, int64(11), l.CardItemID)
	assert.Equal(t, []int64{11}, c.CardItemIDs())
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestRevert(t *testing.T) {
	t.Run("undoes an append", func(t *testing.T) {
		c := New(nil)
		ch := c.Add(line(1, 10))
		c.Revert(ch)
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, catalog.Money(0), c.Total())
	})

	t.Run("undoes an increment", func(t *testing.T) {
		c := New(nil)
		c.Add(line(1, 10))
		ch := c.Add(line(1, 10))
		c.Revert(ch)
		l, _ := c.Line(1)
		assert.Equal(t, 1, l.Quantity)
	})

	t.Run("restores a removed line at its position", func(t *testing.T) {
		c := New([]Line{
			{ProductID: 1, UnitPrice: 100, Quantity: 1},
			{ProductID: 2, UnitPrice: 200, Quantity: 1},
			{ProductID: 3, UnitPrice: 300, Quantity: 1},
		})
		ch := c.Remove(2)
		c.Revert(ch)

		lines := c.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, int64(2), lines[1].ProductID)
		assert.Equal(t, catalog.Money(600), c.Total())
	})

	t.Run("keeps units added after the change", func(t *testing.T) {
		c := New(nil)
		first := c.Add(line(1, 10))
		c.Add(line(1, 10))
		c.Revert(first)

		l, ok := c.Line(1)
		require.True(t, ok)
		assert.Equal(t, 1, l.Quantity)
		assert.Equal(t, catalog.Rupees(10), c.Total())
	})

	t.Run("adds back a removal on top of a re-added line", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 100, Quantity: 2, CardItemID: 7}})
		removed := c.Remove(1)
		c.Add(Line{ProductID: 1, UnitPrice: 100})
		c.Revert(removed)

		l, ok := c.Line(1)
		require.True(t, ok)
		assert.Equal(t, 3, l.Quantity)
		assert.Equal(t, int64(7), l.CardItemID)
	})

	t.Run("undoes only unaccepted units", func(t *testing.T) {
		c := New([]Line{{ProductID: 1, UnitPrice: 100, Quantity: 1}})
		ch := c.UpdateQuantity(1, 4)
		c.Revert(ch.Unaccepted(1))

		l, _ := c.Line(1)
		assert.Equal(t, 2, l.Quantity)
	})

	t.Run("noop when the line is already gone", func(t *testing.T) {
		c := New(nil)
		ch := c.Add(line(1, 10))
		c.Remove(1)
		c.Revert(ch)
		assert.Equal(t, 0, c.Len())
	})
}

func TestClear(t *testing.T) {
	c := New([]Line{{ProductID: 1, UnitPrice: 100, Quantity: 1}})
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, catalog.Money(0), c.Total())
}
