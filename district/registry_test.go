package district_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/malaria-bench/mbench/district"
)

// RegistrySuite exercises resolution against a small Ghana-like registry.
type RegistrySuite struct {
	suite.Suite
	reg *district.Registry
}

func (s *RegistrySuite) SetupTest() {
	s.reg = district.NewRegistry()
	require.NoError(s.T(), s.reg.Add(district.New("GA", "Greater Accra", "Greater Accra")))
	require.NoError(s.T(), s.reg.Add(district.New("AS", "Ashanti", "Ashanti", "Ashanti Region")))
}

func (s *RegistrySuite) TestResolveByAlias() {
	s.Equal("GA", s.reg.Resolve("greater accra"))
	s.Equal("GA", s.reg.Resolve("greater-accra"))
	s.Equal("GA", s.reg.Resolve("GREATER_ACCRA"))
	s.Equal("AS", s.reg.Resolve("ashanti region"))
}

func (s *RegistrySuite) TestResolveByID() {
	s.Equal("GA", s.reg.Resolve("ga"))
}

func (s *RegistrySuite) TestResolveUnknownReturnsNormalized() {
	s.Equal("TOTALLY_UNKNOWN", s.reg.Resolve("totally unknown"))

	id, ok := s.reg.Lookup("totally unknown")
	s.False(ok)
	s.Equal("TOTALLY_UNKNOWN", id)
}

func (s *RegistrySuite) TestResolveDeterministic() {
	first := s.reg.Resolve("Ashanti")
	for i := 0; i < 10; i++ {
		s.Equal(first, s.reg.Resolve("Ashanti"))
	}
}

func (s *RegistrySuite) TestResolveMany() {
	got := s.reg.ResolveMany([]string{"ashanti", "nowhere", "greater accra"})
	s.Equal([]string{"AS", "NOWHERE", "GA"}, got)
}

func (s *RegistrySuite) TestNormalizeManySkipsAliasSearch() {
	// "greater accra" is an alias of GA but NormalizeMany must not resolve it.
	got := s.reg.NormalizeMany([]string{"greater accra", "ga"})
	s.Equal([]string{"GREATER_ACCRA", "GA"}, got)
}

func (s *RegistrySuite) TestUnresolved() {
	got := s.reg.Unresolved([]string{"ashanti", "Volta", "volta", "oti"})
	s.Equal([]string{"VOLTA", "OTI"}, got)
	s.Empty(s.reg.Unresolved([]string{"ga", "greater accra"}))
}

func (s *RegistrySuite) TestDuplicate() {
	err := s.reg.Add(district.New("ga", "duplicate"))
	s.ErrorIs(err, district.ErrDuplicateDistrict)
	s.Equal(2, s.reg.Len())
}

func (s *RegistrySuite) TestAccessors() {
	s.Equal([]string{"GA", "AS"}, s.reg.IDs())
	s.True(s.reg.Contains("as"))
	s.False(s.reg.Contains("ASHANTI"))
	s.Equal("Ashanti", s.reg.Get("AS").Name())
	s.Nil(s.reg.Get("missing"))
	s.Equal(district.SchemeDistricts, s.reg.Scheme())
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func TestRegistry_LastMatchWins(t *testing.T) {
	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("A", "", "X")))
	require.NoError(t, reg.Add(district.New("B", "", "X")))

	assert.Equal(t, "B", reg.Resolve("x"))
}

func TestRegistry_AddErrors(t *testing.T) {
	reg := district.NewRegistry(district.WithScheme(district.SchemeOldDistricts))
	assert.ErrorIs(t, reg.Add(nil), district.ErrNilDistrict)
	assert.NoError(t, reg.Add(district.New("  ", "blank"))) // "  " normalizes to "_"
	assert.ErrorIs(t, reg.Add(district.New("", "empty")), district.ErrEmptyID)
	assert.Equal(t, district.SchemeOldDistricts, reg.Scheme())
}

func TestNewRegistryFrom(t *testing.T) {
	_, err := district.NewRegistryFrom([]*district.District{
		district.New("north", "North"),
		district.New("North", "North again"),
	})
	require.ErrorIs(t, err, district.ErrDuplicateDistrict)

	reg, err := district.NewRegistryFrom([]*district.District{
		district.New("north", "North"),
		district.New("south", "South"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"NORTH", "SOUTH"}, reg.IDs())
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("GA", "", "Greater Accra")))

	const readers = 32
	results := make([]string, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.Resolve("greater accra")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "GA", r)
	}
}

func TestRegistry_AddAliasWhileResolving(t *testing.T) {
	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("GA", "", "Greater Accra")))

	const aliases = 16
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < aliases; i++ {
			assert.NoError(t, reg.AddAlias("ga", fmt.Sprintf("accra %d", i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 4*aliases; i++ {
			assert.Equal(t, "GA", reg.Resolve("greater accra"))
		}
	}()
	wg.Wait()

	assert.Equal(t, "GA", reg.Resolve("Accra 15"))
	assert.Len(t, reg.Get("GA").Aliases(), aliases+1)

	err := reg.AddAlias("ashanti", "kumasi")
	assert.ErrorIs(t, err, district.ErrUnknownDistrict)
}
