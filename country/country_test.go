package country_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/country"
	"github.com/malaria-bench/mbench/crosswalk"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/district"
	"github.com/malaria-bench/mbench/interpolate"
)

// volta builds a country where the old Volta region split into Volta and Oti.
func volta(t *testing.T) *country.Country {
	t.Helper()
	reg, err := district.NewRegistryFrom([]*district.District{
		district.New("VOLTA", "Volta", "Volta Region"),
		district.New("OTI", "Oti", "Oti Region"),
		district.New("EASTERN", "Eastern"),
		district.New("GA", "Greater Accra", "Greater Accra"),
	})
	require.NoError(t, err)

	g, err := adjacency.FromPairs(reg, []adjacency.Pair{
		{From: "volta", To: "oti"},
		{From: "volta", To: "eastern"},
		{From: "eastern", To: "greater accra"},
	}, adjacency.WithSymmetric())
	require.NoError(t, err)

	cw, err := crosswalk.New(reg,
		[]string{"Volta", "Volta", "Eastern", "Greater Accra"},
		[]string{"volta", "oti", "eastern", "greater accra"},
		crosswalk.OldToNew(),
	)
	require.NoError(t, err)

	c, err := country.New("gha", reg, g, cw)
	require.NoError(t, err)

	return c
}

func TestNew_Validates(t *testing.T) {
	_, err := country.New("x", nil, nil, nil)
	assert.ErrorIs(t, err, country.ErrNoDistricts)

	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("A", "")))
	g := adjacency.New()
	require.NoError(t, g.AddEdge("A", "B"))
	_, err = country.New("x", reg, g, nil)
	assert.ErrorIs(t, err, adjacency.ErrUnresolvableNeighbour)
}

func TestTable_AddParameter(t *testing.T) {
	tbl := country.NewTable(volta(t))
	ds := dataset.FromMap(map[string]float64{"Volta Region": 0.3, "greater accra": 0.1, "Ashanti": 0.5})

	unresolved, err := tbl.AddParameter("prevalence", ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASHANTI"}, unresolved)

	col, err := tbl.Column("prevalence")
	require.NoError(t, err)
	assert.Equal(t, []string{"VOLTA", "OTI", "EASTERN", "GA"}, col.Keys())
	assert.Equal(t, []string{"OTI", "EASTERN"}, col.Missing())
	assert.Equal(t, []string{"prevalence"}, tbl.Parameters())
	assert.Equal(t, []string{"VOLTA", "OTI", "EASTERN", "GA"}, tbl.Rows())

	_, err = tbl.AddParameter("prevalence", ds)
	assert.ErrorIs(t, err, country.ErrDuplicateParameter)
	_, err = tbl.Column("eir")
	assert.ErrorIs(t, err, country.ErrUnknownParameter)
}

func TestTable_ExportKeepsUnresolvedRows(t *testing.T) {
	tbl := country.NewTable(volta(t))
	ds, err := dataset.FromPairs(
		[]string{"Volta Region", "Ashanti", "oti", "Upper-West"},
		[]float64{0.3, 0.5, dataset.Undefined, 0.7},
	)
	require.NoError(t, err)

	unresolved, err := tbl.AddParameter("prevalence", ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASHANTI", "UPPER_WEST"}, unresolved)

	kept, err := tbl.Retained("prevalence")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ashanti", "Upper-West"}, kept.Keys())

	_, err = tbl.Fill("prevalence")
	require.NoError(t, err)
	out, err := tbl.Export("prevalence")
	require.NoError(t, err)
	assert.Equal(t, []string{"VOLTA", "OTI", "EASTERN", "GA", "Ashanti", "Upper-West"}, out.Keys())
	v, _ := out.Value("Ashanti")
	assert.Equal(t, 0.5, v)

	// A second import of the exported rows reports the same labels.
	again := country.NewTable(volta(t))
	unresolved, err = again.AddParameter("prevalence", out)
	require.NoError(t, err)
	assert.Equal(t, []string{"ASHANTI", "UPPER_WEST"}, unresolved)

	_, err = tbl.Export("eir")
	assert.ErrorIs(t, err, country.ErrUnknownParameter)
	_, err = tbl.Retained("eir")
	assert.ErrorIs(t, err, country.ErrUnknownParameter)
}

func TestTable_AddParameterSchema(t *testing.T) {
	tbl := country.NewTable(volta(t))
	ds, err := dataset.FromPairs([]string{"volta", "Volta Region"}, []float64{1, 2})
	require.NoError(t, err)

	_, err = tbl.AddParameter("p", ds)
	assert.ErrorIs(t, err, dataset.ErrSchema)
}

func TestTable_ImportOldAndFill(t *testing.T) {
	tbl := country.NewTable(volta(t))
	old := dataset.FromMap(map[string]float64{"volta": 0.4, "greater accra": 0.2})

	unmatched, unresolved, err := tbl.ImportOld("itn", old)
	require.NoError(t, err)
	assert.Equal(t, 1, unmatched) // EASTERN
	assert.Empty(t, unresolved)

	col, err := tbl.Column("itn")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.4}, col.Values()[:2])
	assert.True(t, math.IsNaN(col.Values()[2]))

	res, err := tbl.Fill("itn", interpolate.WithRounds(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"EASTERN"}, res.Filled)

	col, err = tbl.Column("itn")
	require.NoError(t, err)
	v, _ := col.Value("EASTERN")
	assert.InDelta(t, 0.3, v, 1e-12)

	_, err = tbl.Fill("nope")
	assert.ErrorIs(t, err, country.ErrUnknownParameter)
}

func TestTable_ImportOldWithoutCrosswalk(t *testing.T) {
	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("A", "")))
	c, err := country.New("x", reg, nil, nil)
	require.NoError(t, err)

	_, _, err = country.NewTable(c).ImportOld("p", dataset.New())
	assert.ErrorIs(t, err, country.ErrNoCrosswalk)
}

func TestTable_FillWithoutGraph(t *testing.T) {
	reg := district.NewRegistry()
	require.NoError(t, reg.Add(district.New("A", "")))
	c, err := country.New("x", reg, nil, nil)
	require.NoError(t, err)

	tbl := country.NewTable(c)
	_, err = tbl.AddParameter("p", dataset.New())
	require.NoError(t, err)
	res, err := tbl.Fill("p")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, res.Unfilled)
}
