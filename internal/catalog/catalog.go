// Package catalog answers the dropdown lookups of the calculator page: the distinct
// regions, selling locations, area names, product IDs and part categories of the dataset.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/aaparts/whatif-margin/internal/dataset"
	"github.com/aaparts/whatif-margin/internal/db"
	"github.com/aaparts/whatif-margin/internal/migrations"
	"github.com/aaparts/whatif-margin/internal/seed"
)

// Options are the selling locations and area names offered for a region.
type Options struct {
	SellingLocations []string `json:"selling_locations"`
	AreaNames        []string `json:"area_names"`
}

// Catalog reads the deduplicated dataset projection held in the working store.
type Catalog struct {
	db *sql.DB
}

// New wraps a store that has already been migrated and seeded.
func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// Build opens the working store at dbPath, applies migrations and loads rows into it.
func Build(ctx context.Context, dbPath string, rows []dataset.Row) (*Catalog, seed.Stats, error) {
	database, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, seed.Stats{}, err
	}

	if err := migrations.Up(database); err != nil {
		database.Close()
		return nil, seed.Stats{}, err
	}

	stats, err := seed.Run(ctx, database, rows)
	if err != nil {
		database.Close()
		return nil, seed.Stats{}, err
	}

	return New(database), stats, nil
}

// Close releases the underlying store.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Regions returns every distinct region in ascending order.
func (c *Catalog) Regions(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, "region_map", "location_region", nil)
}

// Options returns the selling locations and area names that co-occur with region.
// An empty region returns the values across the whole dataset.
func (c *Catalog) Options(ctx context.Context, region string) (Options, error) {
	var filter sq.Sqlizer
	if region != "" {
		filter = sq.Eq{"location_region": region}
	}

	locations, err := c.distinct(ctx, "region_map", "selling_location", filter)
	if err != nil {
		return Options{}, err
	}
	areas, err := c.distinct(ctx, "region_map", "area_name", filter)
	if err != nil {
		return Options{}, err
	}

	return Options{SellingLocations: locations, AreaNames: areas}, nil
}

// ProductIDs returns every distinct product ID in ascending order.
func (c *Catalog) ProductIDs(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, "products", "product_id", nil)
}

// PartCategories returns every distinct part category in ascending order.
func (c *Catalog) PartCategories(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, "part_categories", "name", nil)
}

func (c *Catalog) distinct(ctx context.Context, table, column string, filter sq.Sqlizer) ([]string, error) {
	q := sq.Select(column).
		Distinct().
		From(table).
		Where(sq.NotEq{column: ""}).
		OrderBy(column)
	if filter != nil {
		q = q.Where(filter)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", column, err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", column, err)
	}

	return values, nil
}
