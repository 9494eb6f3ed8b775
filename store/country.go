package store

import (
	"context"
	"fmt"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/country"
	"github.com/malaria-bench/mbench/crosswalk"
	"github.com/malaria-bench/mbench/logger"
)

// LoadCountry reads and assembles one country.
func (s *Store) LoadCountry(ctx context.Context, name string, opts ...adjacency.Option) (*country.Country, error) {
	b, err := s.LoadBundle(ctx, name)
	if err != nil {
		return nil, err
	}
	c, err := Assemble(b, opts...)
	if err != nil {
		return nil, err
	}
	logger.L().Debug("country_loaded", "country", name,
		"districts", len(b.Districts), "adjacency", len(b.Adjacency), "old_to_new", len(b.OldToNew))

	return c, nil
}

// LoadBundle reads the stored rows of one country.
func (s *Store) LoadBundle(ctx context.Context, name string) (Bundle, error) {
	b := Bundle{Country: name}

	districts, err := s.pairs(ctx, `SELECT id, name FROM mbench_districts WHERE country=$1 ORDER BY ord, id`, name)
	if err != nil {
		return Bundle{}, fmt.Errorf("load districts: %w", err)
	}
	if len(districts) == 0 {
		return Bundle{}, fmt.Errorf("%w: %s", ErrUnknownCountry, name)
	}
	index := make(map[string]int, len(districts))
	for i, d := range districts {
		index[d[0]] = i
		b.Districts = append(b.Districts, DistrictRow{ID: d[0], Name: d[1]})
	}

	aliases, err := s.pairs(ctx, `SELECT district_id, alias FROM mbench_district_aliases WHERE country=$1 ORDER BY district_id, ord`, name)
	if err != nil {
		return Bundle{}, fmt.Errorf("load aliases: %w", err)
	}
	for _, a := range aliases {
		if i, ok := index[a[0]]; ok {
			b.Districts[i].Aliases = append(b.Districts[i].Aliases, a[1])
		}
	}

	adj, err := s.pairs(ctx, `SELECT from_label, to_label FROM mbench_adjacency WHERE country=$1 ORDER BY ord`, name)
	if err != nil {
		return Bundle{}, fmt.Errorf("load adjacency: %w", err)
	}
	for _, p := range adj {
		b.Adjacency = append(b.Adjacency, adjacency.Pair{From: p[0], To: p[1]})
	}

	cw, err := s.pairs(ctx, `SELECT old_label, new_label FROM mbench_crosswalk WHERE country=$1 ORDER BY ord`, name)
	if err != nil {
		return Bundle{}, fmt.Errorf("load crosswalk: %w", err)
	}
	for _, p := range cw {
		b.OldToNew = append(b.OldToNew, crosswalk.Entry{Source: p[0], Canonical: p[1]})
	}

	return b, nil
}

// SaveCountry replaces every stored row of c in one transaction.
func (s *Store) SaveCountry(ctx context.Context, c *country.Country) error {
	return s.SaveBundle(ctx, Flatten(c))
}

// SaveBundle replaces the stored rows of b.Country in one transaction.
func (s *Store) SaveBundle(ctx context.Context, b Bundle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save country: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"mbench_district_aliases", "mbench_adjacency", "mbench_crosswalk", "mbench_districts"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE country=$1`, b.Country); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, d := range b.Districts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mbench_districts(country, ord, id, name) VALUES($1, $2, $3, $4)`,
			b.Country, i, d.ID, d.Name); err != nil {
			return fmt.Errorf("insert district %s: %w", d.ID, err)
		}
		for j, a := range d.Aliases {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO mbench_district_aliases(country, district_id, ord, alias) VALUES($1, $2, $3, $4)
				 ON CONFLICT DO NOTHING`,
				b.Country, d.ID, j, a); err != nil {
				return fmt.Errorf("insert alias %s of %s: %w", a, d.ID, err)
			}
		}
	}
	for i, p := range b.Adjacency {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mbench_adjacency(country, ord, from_label, to_label) VALUES($1, $2, $3, $4)`,
			b.Country, i, p.From, p.To); err != nil {
			return fmt.Errorf("insert adjacency row %d: %w", i, err)
		}
	}
	for i, e := range b.OldToNew {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mbench_crosswalk(country, ord, old_label, new_label) VALUES($1, $2, $3, $4)`,
			b.Country, i, e.Source, e.Canonical); err != nil {
			return fmt.Errorf("insert crosswalk row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save country: %w", err)
	}
	logger.L().Debug("country_saved", "country", b.Country, "districts", len(b.Districts))

	return nil
}

// pairs runs a two-text-column query keyed by country.
func (s *Store) pairs(ctx context.Context, query, name string) ([][2]string, error) {
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][2]string
	for rows.Next() {
		var p [2]string
		if err := rows.Scan(&p[0], &p[1]); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
