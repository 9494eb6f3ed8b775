package builder

import "fmt"

const (
	minPathDistricts  = 2
	minCycleDistricts = 3
	minStarLeaves     = 1
	minGridDim        = 1
)

// Path links n districts in a chain: 0-1, 1-2, ...
func Path(n int) Constructor {
	return func(d *Draft, cfg config) error {
		if n < minPathDistricts {
			return fmt.Errorf("Path: n=%d (must be >= %d): %w", n, minPathDistricts, ErrTooFewDistricts)
		}
		for i := 0; i+1 < n; i++ {
			d.Link(cfg.idFn(i), cfg.idFn(i+1))
		}

		return nil
	}
}

// Cycle is Path(n) closed by an n-1 to 0 row.
func Cycle(n int) Constructor {
	return func(d *Draft, cfg config) error {
		if n < minCycleDistricts {
			return fmt.Errorf("Cycle: n=%d (must be >= %d): %w", n, minCycleDistricts, ErrTooFewDistricts)
		}
		for i := 0; i < n; i++ {
			d.Link(cfg.idFn(i), cfg.idFn((i+1)%n))
		}

		return nil
	}
}

// Star links a hub (index 0) to leaves 1..leaves.
func Star(leaves int) Constructor {
	return func(d *Draft, cfg config) error {
		if leaves < minStarLeaves {
			return fmt.Errorf("Star: leaves=%d (must be >= %d): %w", leaves, minStarLeaves, ErrTooFewDistricts)
		}
		hub := cfg.idFn(0)
		for i := 1; i <= leaves; i++ {
			d.Link(hub, cfg.idFn(i))
		}

		return nil
	}
}

// Grid lays out rows×cols districts in row-major order (index r*cols+c)
// with 4-neighbourhood rows: right then bottom for each cell.
func Grid(rows, cols int) Constructor {
	return func(d *Draft, cfg config) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("Grid: rows=%d, cols=%d (each must be >= %d): %w",
				rows, cols, minGridDim, ErrTooFewDistricts)
		}
		id := func(r, c int) string { return cfg.idFn(r*cols + c) }
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				d.AddDistrict(id(r, c))
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					d.Link(id(r, c), id(r, c+1))
				}
				if r+1 < rows {
					d.Link(id(r, c), id(r+1, c))
				}
			}
		}

		return nil
	}
}

// Isolated registers districts first..first+n-1 with no neighbours.
func Isolated(first, n int) Constructor {
	return func(d *Draft, cfg config) error {
		if n < 1 {
			return fmt.Errorf("Isolated: n=%d (must be >= 1): %w", n, ErrTooFewDistricts)
		}
		for i := first; i < first+n; i++ {
			d.AddDistrict(cfg.idFn(i))
		}

		return nil
	}
}

// RandomSparse registers n districts and links each unordered pair i<j
// with probability p. Requires a random source.
func RandomSparse(n int, p float64) Constructor {
	return func(d *Draft, cfg config) error {
		if n < 1 {
			return fmt.Errorf("RandomSparse: n=%d (must be >= 1): %w", n, ErrTooFewDistricts)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("RandomSparse: p=%v: %w", p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("RandomSparse: %w", ErrNeedRandSource)
		}
		for i := 0; i < n; i++ {
			d.AddDistrict(cfg.idFn(i))
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() < p {
					d.Link(cfg.idFn(i), cfg.idFn(j))
				}
			}
		}

		return nil
	}
}
