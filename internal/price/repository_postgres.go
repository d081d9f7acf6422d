package price

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getPriceQuery = `SELECT price FROM products WHERE name = $1`

	listByNamesQuery = `
		SELECT name, price
		FROM products
		WHERE name = ANY($1::text[]) AND price IS NOT NULL
		ORDER BY name, ctid
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetPrice takes the first matching row. A NULL price counts as no price.
func (r *PostgresRepository) GetPrice(ctx context.Context, name string) (Price, error) {
	var p sql.NullString
	err := r.db.QueryRowContext(ctx, getPriceQuery, name).Scan(&p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query price for %q: %w", name, err)
	}
	if !p.Valid {
		return "", ErrNotFound
	}
	return Price(p.String), nil
}

// ListByNames returns the priced names in the order they were asked for,
// each name once.
func (r *PostgresRepository) ListByNames(ctx context.Context, names []string) ([]PricedItem, error) {
	if len(names) == 0 {
		return []PricedItem{}, nil
	}
	rows, err := r.db.QueryContext(ctx, listByNamesQuery, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	found := make(map[string]Price, len(names))
	for rows.Next() {
		var (
			name string
			p    string
		)
		if err := rows.Scan(&name, &p); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		// products.name is not guaranteed unique; keep the first row per name
		if _, ok := found[name]; !ok {
			found[name] = Price(p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}

	out := make([]PricedItem, 0, len(found))
	for _, name := range names {
		p, ok := found[name]
		if !ok {
			continue
		}
		delete(found, name)
		out = append(out, PricedItem{Product: name, Price: p})
	}
	return out, nil
}
