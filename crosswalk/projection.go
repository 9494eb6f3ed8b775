package crosswalk

import (
	"math"

	"github.com/malaria-bench/mbench/dataset"
)

// Row is one projected crosswalk row.
type Row struct {
	Key   string  // label in the output scheme
	From  string  // label in the join scheme
	Value float64 // dataset.Undefined when the input had no match
}

// Projection is the result of Project: exactly one Row per crosswalk row.
// Keys may repeat when the crosswalk is many-to-one.
type Projection struct {
	join      JoinKey
	rows      []Row
	unmatched int
}

// Len returns the number of rows; it always equals the crosswalk length.
func (p *Projection) Len() int { return len(p.rows) }

// Rows returns a copy of the rows in crosswalk order.
func (p *Projection) Rows() []Row {
	out := make([]Row, len(p.rows))
	copy(out, p.rows)

	return out
}

// Unmatched returns the number of rows that found no input value.
func (p *Projection) Unmatched() int { return p.unmatched }

// Join returns the join column used.
func (p *Projection) Join() JoinKey { return p.join }

// Aggregator reduces the values that share one output key.
type Aggregator func(values []float64) float64

// Mean averages the defined values; all undefined yields Undefined.
func Mean(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return dataset.Undefined
	}

	return sum / float64(n)
}

// Sum adds the defined values; all undefined yields Undefined.
func Sum(values []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return dataset.Undefined
	}

	return sum
}

// First returns the first defined value, or Undefined.
func First(values []float64) float64 {
	for _, v := range values {
		if !math.IsNaN(v) {
			return v
		}
	}

	return dataset.Undefined
}

// Collapse groups rows by Key (first-seen order) and reduces each group with
// agg, producing a Dataset with unique keys. A nil agg means Mean.
func (p *Projection) Collapse(agg Aggregator) *dataset.Dataset {
	if agg == nil {
		agg = Mean
	}
	var order []string
	groups := make(map[string][]float64)
	for _, r := range p.rows {
		if _, ok := groups[r.Key]; !ok {
			order = append(order, r.Key)
		}
		groups[r.Key] = append(groups[r.Key], r.Value)
	}

	out := dataset.New()
	for _, k := range order {
		out.Set(k, agg(groups[k]))
	}

	return out
}
