package interpolate_test

import (
	"testing"

	"github.com/malaria-bench/mbench/builder"
	"github.com/malaria-bench/mbench/interpolate"
)

// BenchmarkFill_Grid runs the default three passes over a 30×30 grid with
// roughly a third of the rows missing.
func BenchmarkFill_Grid(b *testing.B) {
	c, err := builder.Build("grid", nil, builder.Grid(30, 30))
	if err != nil {
		b.Fatal(err)
	}
	ds, err := builder.Values(c, builder.WithSeed(1), builder.WithMissing(0.33))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interpolate.Fill(ds, c.Adjacency, c.Districts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFill_RandomSparse covers irregular degree distributions.
func BenchmarkFill_RandomSparse(b *testing.B) {
	c, err := builder.Build("sparse", []builder.Option{builder.WithSeed(2)}, builder.RandomSparse(500, 0.01))
	if err != nil {
		b.Fatal(err)
	}
	ds, err := builder.Values(c, builder.WithSeed(2), builder.WithMissing(0.5))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interpolate.Fill(ds, c.Adjacency, c.Districts, interpolate.WithRounds(5)); err != nil {
			b.Fatal(err)
		}
	}
}
