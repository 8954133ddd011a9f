package devserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CountryPaging(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"} {
		_, err := s.CreateCountry(name)
		require.NoError(t, err)
	}

	tests := []struct {
		pageNo    int
		wantNames []string
	}{
		{0, []string{"A", "B", "C", "D", "E"}},
		{1, []string{"F", "G", "H", "I", "J"}},
		{2, []string{"K"}},
		{3, []string{}},
	}

	for _, tt := range tests {
		page, total := s.CountryPage(tt.pageNo, 5)
		assert.Equal(t, 3, total, "ceil(11/5)")
		names := make([]string, 0, len(page))
		for _, c := range page {
			names = append(names, c.Name)
		}
		assert.Equal(t, tt.wantNames, names, "page %d", tt.pageNo)
	}
}

func TestStore_EmptyPaging(t *testing.T) {
	page, total := NewStore().StatePage(0, 5)
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 0, total)
}

func TestStore_CountryLifecycle(t *testing.T) {
	s := NewStore()

	c, err := s.CreateCountry("  Chile ")
	require.NoError(t, err)
	assert.Equal(t, "Chile", c.Name)

	_, err = s.CreateCountry("   ")
	assert.ErrorIs(t, err, ErrBlankName)

	c, err = s.UpdateCountry(c.ID, "Peru")
	require.NoError(t, err)
	assert.Equal(t, "Peru", c.Name)

	_, err = s.UpdateCountry(99, "Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteCountry(c.ID))
	assert.ErrorIs(t, s.DeleteCountry(c.ID), ErrNotFound)
}

func TestStore_IDsNotReused(t *testing.T) {
	s := NewStore()
	a, _ := s.CreateCountry("A")
	require.NoError(t, s.DeleteCountry(a.ID))
	b, _ := s.CreateCountry("B")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStore_StateReferences(t *testing.T) {
	s := NewStore()
	usa, _ := s.CreateCountry("USA")
	mexico, _ := s.CreateCountry("Mexico")

	_, err := s.CreateState("Atlantis", 42)
	assert.ErrorIs(t, err, ErrUnknownCountry)

	texas, err := s.CreateState("Texas", usa.ID)
	require.NoError(t, err)
	require.NotNil(t, texas.Country)
	assert.Equal(t, "USA", texas.Country.Name)
	assert.Equal(t, usa.ID, texas.CountryID)

	assert.ErrorIs(t, s.DeleteCountry(usa.ID), ErrInUse)

	moved, err := s.UpdateState(texas.ID, "Texas", mexico.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mexico", moved.CountryName())

	_, err = s.UpdateState(texas.ID, "Texas", 77)
	assert.ErrorIs(t, err, ErrUnknownCountry)
	_, err = s.UpdateState(500, "Texas", usa.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteCountry(usa.ID))
	require.NoError(t, s.DeleteState(texas.ID))
	assert.ErrorIs(t, s.DeleteState(texas.ID), ErrNotFound)
}

func TestSeed(t *testing.T) {
	s := NewStore()
	require.NoError(t, Seed(s))

	countries, states := s.Counts()
	assert.Equal(t, len(seedData), countries)
	assert.Greater(t, states, 5, "seed should span several state pages")

	for _, st := range s.States() {
		assert.NotNil(t, st.Country, "seeded state %s has a country", st.Name)
	}
}
