package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.MustNew([]catalog.Category{
		{Name: "three", Components: []catalog.Descriptor{
			{ID: "a", Path: "/a.html"}, {ID: "b", Path: "/b.html"}, {ID: "c", Path: "/c.html"},
		}},
		{Name: "one", Components: []catalog.Descriptor{{ID: "solo", Path: "/solo.html"}}},
		{Name: "empty"},
	})
}

func TestSelectCategoryResetsIndex(t *testing.T) {
	for _, name := range []string{"three", "one"} {
		m := New(testCatalog())
		m.SelectCategory("three")
		m.GoTo(2)

		tr := m.SelectCategory(name)
		require.True(t, tr.Load, name)
		assert.Equal(t, 0, m.State().Index)
		assert.False(t, m.Affordances().PrevEnabled)
	}
}

func TestSelectEmptyCategory(t *testing.T) {
	m := New(testCatalog())

	tr := m.SelectCategory("empty")
	assert.True(t, tr.Empty)
	assert.False(t, tr.Load)
	assert.True(t, m.Empty())
	_, ok := m.Current()
	assert.False(t, ok)

	tr = m.SelectCategory("unknown")
	assert.True(t, tr.Empty)
	assert.False(t, tr.Load)
}

func TestNextWalksAndStopsAtEnd(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")

	for i := 0; i < 2; i++ {
		tr := m.Next()
		require.True(t, tr.Load)
		assert.Equal(t, i+1, m.State().Index)
	}

	tr := m.Next()
	assert.False(t, tr.Load)
	assert.Equal(t, 2, m.State().Index)
}

func TestPreviousAtStartIsNoop(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")

	tr := m.Previous()
	assert.False(t, tr.Load)
	assert.Equal(t, 0, m.State().Index)

	m.GoTo(2)
	tr = m.Previous()
	assert.True(t, tr.Load)
	assert.Equal(t, "b", tr.Descriptor.ID)
}

func TestAdvanceWraps(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")
	m.GoTo(2)

	tr := m.Advance()
	require.True(t, tr.Load)
	assert.Equal(t, 0, m.State().Index)
	assert.Equal(t, "a", tr.Descriptor.ID)

	m.SelectCategory("empty")
	assert.False(t, m.Advance().Load)
}

func TestGoToOutOfRangeIgnored(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")
	m.GoTo(1)

	assert.False(t, m.GoTo(-1).Load)
	assert.False(t, m.GoTo(3).Load)
	assert.Equal(t, 1, m.State().Index)
}

func TestGoToCurrentReloads(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")

	tr := m.GoTo(0)
	assert.True(t, tr.Load)
	assert.Equal(t, "a", tr.Descriptor.ID)
}

func TestAffordances(t *testing.T) {
	m := New(testCatalog())
	m.SelectCategory("three")
	m.GoTo(1)

	a := m.Affordances()
	assert.True(t, a.PrevEnabled)
	assert.True(t, a.NextEnabled)
	assert.Equal(t, 2, a.Position)
	assert.Equal(t, 3, a.Total)
	require.Len(t, a.Bullets, 3)
	assert.True(t, a.Bullets[1].Active)
	assert.False(t, a.Bullets[0].Active)

	m.GoTo(2)
	assert.False(t, m.Affordances().NextEnabled)

	m.SelectCategory("one")
	a = m.Affordances()
	assert.False(t, a.PrevEnabled)
	assert.False(t, a.NextEnabled)

	m.SelectCategory("empty")
	a = m.Affordances()
	assert.Equal(t, 0, a.Total)
	assert.Empty(t, a.Bullets)
}
