package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaparts/whatif-margin/internal/dataset"
)

// Stats contains seed operation counters.
type Stats struct {
	Rows    int
	Inserts int
}

// catalogTables are emptied before every load so a persistent store only ever
// reflects the workbook it was last built from.
var catalogTables = []string{"region_map", "products", "part_categories"}

// Run replaces the catalog values held in the working store with the distinct values of rows.
// Blank values are stored as empty strings and filtered out by the catalog queries.
func Run(ctx context.Context, db *sql.DB, rows []dataset.Row) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	if err := reset(ctx, tx); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	stats := Stats{Rows: len(rows)}

	for _, row := range rows {
		if err := insertRegionMap(ctx, tx, row, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
		if err := insertProduct(ctx, tx, row.ProductID, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
		if err := insertPartCategory(ctx, tx, row.PartCategory, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func reset(ctx context.Context, tx *sql.Tx) error {
	for _, table := range catalogTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

func insertRegionMap(ctx context.Context, tx *sql.Tx, row dataset.Row, stats *Stats) error {
	if row.Region == "" && row.SellingLocation == "" && row.AreaName == "" {
		return nil
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO region_map (location_region, selling_location, area_name)
		VALUES (?, ?, ?)
	`, row.Region, row.SellingLocation, row.AreaName)
	if err != nil {
		return fmt.Errorf("insert region map entry: %w", err)
	}
	return count(res, stats)
}

func insertProduct(ctx context.Context, tx *sql.Tx, productID string, stats *Stats) error {
	if productID == "" {
		return nil
	}

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO products (product_id) VALUES (?)`, productID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return count(res, stats)
}

func insertPartCategory(ctx context.Context, tx *sql.Tx, name string, stats *Stats) error {
	if name == "" {
		return nil
	}

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO part_categories (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("insert part category: %w", err)
	}
	return count(res, stats)
}

func count(res sql.Result, stats *Stats) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	stats.Inserts += int(affected)
	return nil
}
