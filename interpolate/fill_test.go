package interpolate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/district"
	"github.com/malaria-bench/mbench/interpolate"
)

var nan = math.NaN()

// path builds a registry and a symmetric path graph over ids, in order.
func path(t *testing.T, ids ...string) (*district.Registry, *adjacency.Graph) {
	t.Helper()
	reg := district.NewRegistry()
	g := adjacency.New(adjacency.WithSymmetric())
	for i, id := range ids {
		require.NoError(t, reg.Add(district.New(id, id)))
		if i > 0 {
			require.NoError(t, g.AddEdge(ids[i-1], id))
		}
	}

	return reg, g
}

func data(t *testing.T, labels []string, values []float64) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromPairs(labels, values)
	require.NoError(t, err)

	return ds
}

func value(t *testing.T, ds *dataset.Dataset, key string) float64 {
	t.Helper()
	v, ok := ds.Value(key)
	require.True(t, ok, "missing key %q", key)

	return v
}

// FillSuite covers the smoothing contract on small hand-checked graphs.
type FillSuite struct {
	suite.Suite
}

// TestThreeNodePath: A-B-C with only B defined.
func (s *FillSuite) TestThreeNodePath() {
	t := s.T()
	reg, g := path(t, "A", "B", "C")
	ds := data(t, []string{"A", "B", "C"}, []float64{nan, 10, nan})

	res, err := interpolate.Fill(ds, g, reg, interpolate.WithRounds(1))
	require.NoError(t, err)
	s.Equal(10.0, value(t, res.Data, "A"))
	s.Equal(10.0, value(t, res.Data, "C"))

	// A constant neighbourhood is a fixed point.
	res, err = interpolate.Fill(ds, g, reg, interpolate.WithRounds(25))
	require.NoError(t, err)
	s.Equal([]float64{10, 10, 10}, res.Data.Values())
	s.Equal([]string{"A", "C"}, res.Missing)
	s.Equal([]string{"A", "C"}, res.Filled)
	s.Empty(res.Unfilled)
}

// TestIsolatedNode stays undefined however many rounds run.
func (s *FillSuite) TestIsolatedNode() {
	t := s.T()
	reg, g := path(t, "A", "B")
	require.NoError(t, reg.Add(district.New("ISLAND", "")))
	ds := data(t, []string{"A", "B", "ISLAND"}, []float64{1, 2, nan})

	s.Empty(g.NeighboursOf("ISLAND"))
	for _, rounds := range []int{1, 3, 50} {
		res, err := interpolate.Fill(ds, g, reg, interpolate.WithRounds(rounds))
		require.NoError(t, err)
		s.True(math.IsNaN(value(t, res.Data, "ISLAND")))
		s.Equal([]string{"ISLAND"}, res.Unfilled)
	}
}

// TestStickySmoothing: X(0)-M1-M2-Y(12); filled rows keep moving.
func (s *FillSuite) TestStickySmoothing() {
	t := s.T()
	reg, g := path(t, "X", "M1", "M2", "Y")
	ds := data(t, []string{"X", "M1", "M2", "Y"}, []float64{0, nan, nan, 12})

	var rounds []int
	res, err := interpolate.Fill(ds, g, reg, interpolate.WithOnRound(func(r int, _ float64) {
		rounds = append(rounds, r)
	}))
	require.NoError(t, err)

	// Round 1: M1=0, M2=6. Round 2: M1=3, M2=7.5. Round 3: M1=3.75, M2=7.875.
	s.Equal([]float64{0, 3.75, 7.875, 12}, res.Data.Values())
	s.Equal([]int{1, 2, 3}, rounds)
	require.Len(t, res.Deltas, 3)
	s.True(math.IsInf(res.Deltas[0], 1))
	s.Equal(3.0, res.Deltas[1])
	s.Equal(0.75, res.Deltas[2])

	// More rounds approach the linear profile 4, 8.
	res, err = interpolate.Fill(ds, g, reg, interpolate.WithRounds(60))
	require.NoError(t, err)
	s.InDelta(4.0, value(t, res.Data, "M1"), 1e-9)
	s.InDelta(8.0, value(t, res.Data, "M2"), 1e-9)
}

func (s *FillSuite) TestClearOnFill() {
	t := s.T()
	reg, g := path(t, "X", "M1", "M2", "Y")
	ds := data(t, []string{"X", "M1", "M2", "Y"}, []float64{0, nan, nan, 12})

	res, err := interpolate.Fill(ds, g, reg, interpolate.WithClearOnFill(), interpolate.WithRounds(10))
	require.NoError(t, err)
	s.Equal([]float64{0, 0, 6, 12}, res.Data.Values())
	s.Equal([]float64{0, 0}, res.Deltas[1:3])
}

func (s *FillSuite) TestSeedNeighboursOnly() {
	t := s.T()
	reg, g := path(t, "X", "M1", "M2", "Y")
	ds := data(t, []string{"X", "M1", "M2", "Y"}, []float64{0, nan, nan, 12})

	res, err := interpolate.Fill(ds, g, reg, interpolate.WithSeedNeighboursOnly())
	require.NoError(t, err)
	s.Equal([]float64{0, 0, 12, 12}, res.Data.Values())
}

// TestOrderIsObservable: in-place updates make key order part of the result.
func (s *FillSuite) TestOrderIsObservable() {
	t := s.T()
	reg, g := path(t, "A", "B", "C", "D")

	forward := data(t, []string{"A", "B", "C", "D"}, []float64{1, nan, nan, nan})
	res, err := interpolate.Fill(forward, g, reg, interpolate.WithRounds(1))
	require.NoError(t, err)
	s.Empty(res.Unfilled)

	backward := data(t, []string{"D", "C", "B", "A"}, []float64{nan, nan, nan, 1})
	res, err = interpolate.Fill(backward, g, reg, interpolate.WithRounds(2))
	require.NoError(t, err)
	s.Equal([]string{"D"}, res.Unfilled)
	s.Equal([]string{"C", "B"}, res.Filled)

	// Reach bounds the rounds needed regardless of order.
	s.Equal(3, g.Reach([]string{"A"})["D"])
	res, err = interpolate.Fill(backward, g, reg, interpolate.WithRounds(3))
	require.NoError(t, err)
	s.Empty(res.Unfilled)
}

func (s *FillSuite) TestDeterministic() {
	t := s.T()
	reg, g := path(t, "A", "B", "C", "D", "E")
	ds := data(t, []string{"A", "B", "C", "D", "E"}, []float64{0.1, nan, 0.7, nan, nan})

	first, err := interpolate.Fill(ds, g, reg, interpolate.WithRounds(7))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := interpolate.Fill(ds, g, reg, interpolate.WithRounds(7))
		require.NoError(t, err)
		for j, v := range again.Data.Values() {
			s.Equal(math.Float64bits(first.Data.Values()[j]), math.Float64bits(v))
		}
	}
}

func (s *FillSuite) TestInputNotMutated() {
	t := s.T()
	reg, g := path(t, "A", "B")
	ds := data(t, []string{"A", "B"}, []float64{nan, 4})

	_, err := interpolate.Fill(ds, g, reg)
	require.NoError(t, err)
	s.True(ds.IsMissing("A"))
}

// TestNeighbourOutsideDataset: a registered neighbour with no row counts as undefined.
func (s *FillSuite) TestNeighbourOutsideDataset() {
	t := s.T()
	reg, g := path(t, "A", "B", "C")
	ds := data(t, []string{"A", "B"}, []float64{nan, nan})

	res, err := interpolate.Fill(ds, g, reg)
	require.NoError(t, err)
	s.Equal([]string{"A", "B"}, res.Unfilled)
}

// TestRoundsBoundIsUpper: A-B-C-D with only A defined. In key order one
// pass reaches D, three hops away.
func (s *FillSuite) TestRoundsBoundIsUpper() {
	t := s.T()
	reg, g := path(t, "A", "B", "C", "D")
	ds := data(t, []string{"A", "B", "C", "D"}, []float64{1, nan, nan, nan})

	res, err := interpolate.Fill(ds, g, reg, interpolate.WithRounds(1))
	require.NoError(t, err)
	s.Equal([]float64{1, 1, 1, 1}, res.Data.Values())
	s.Equal(3, g.Reach([]string{"A"})["D"])

	// Reverse key order walks away from the seed: only the row one hop
	// away is filled, matching the hop bound exactly.
	rev := data(t, []string{"D", "C", "B", "A"}, []float64{nan, nan, nan, 1})
	res, err = interpolate.Fill(rev, g, reg, interpolate.WithRounds(1))
	require.NoError(t, err)
	s.Equal([]string{"B"}, res.Filled)
	s.Equal([]string{"D", "C"}, res.Unfilled)
}

func TestFillSuite(t *testing.T) {
	suite.Run(t, new(FillSuite))
}

func TestFill_Errors(t *testing.T) {
	reg, g := path(t, "A", "B")
	ds := data(t, []string{"A", "B"}, []float64{nan, 1})

	_, err := interpolate.Fill(nil, g, reg)
	assert.ErrorIs(t, err, interpolate.ErrDatasetNil)

	_, err = interpolate.Fill(ds, nil, reg)
	assert.ErrorIs(t, err, interpolate.ErrGraphNil)

	_, err = interpolate.Fill(ds, g, nil)
	assert.ErrorIs(t, err, interpolate.ErrIndexNil)

	_, err = interpolate.Fill(ds, g, reg, interpolate.WithRounds(0))
	assert.ErrorIs(t, err, interpolate.ErrOptionViolation)

	require.NoError(t, g.AddEdge("B", "GHOST"))
	_, err = interpolate.Fill(ds, g, reg)
	assert.ErrorIs(t, err, interpolate.ErrUnresolvableNeighbour)
	assert.ErrorIs(t, err, adjacency.ErrUnresolvableNeighbour)
}
