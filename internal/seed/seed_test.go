package seed

import (
	"context"
	"database/sql"
	"testing"

	"github.com/aaparts/whatif-margin/internal/dataset"
	"github.com/aaparts/whatif-margin/internal/db"
	"github.com/aaparts/whatif-margin/internal/migrations"
)

var testRows = []dataset.Row{
	{Region: "WEST", SellingLocation: "Reno Hub", AreaName: "Nevada North", ProductID: "P-100", PartCategory: "Brakes"},
	{Region: "WEST", SellingLocation: "Reno Hub", AreaName: "Nevada North", ProductID: "P-101", PartCategory: "Brakes"},
	{Region: "CENTRAL", SellingLocation: "Omaha Yard", AreaName: "", ProductID: "P-100", PartCategory: ""},
	{},
}

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := openMigrated(t)

	for i := 0; i < 5; i++ {
		stats, err := Run(context.Background(), database, testRows)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if stats.Rows != len(testRows) {
			t.Fatalf("expected %d rows, got %d", len(testRows), stats.Rows)
		}
		// 2 region_map + 2 products + 1 category
		if stats.Inserts != 5 {
			t.Fatalf("expected 5 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM region_map`, 2)
	assertCount(t, database, `SELECT COUNT(*) FROM products`, 2)
	assertCount(t, database, `SELECT COUNT(*) FROM part_categories`, 1)
}

func TestRunReplacesPreviousRows(t *testing.T) {
	database := openMigrated(t)

	if _, err := Run(context.Background(), database, testRows); err != nil {
		t.Fatalf("first run: %v", err)
	}

	next := []dataset.Row{
		{Region: "SOUTHEAST", SellingLocation: "Macon Outlet", AreaName: "Georgia South", ProductID: "P-200", PartCategory: "Lighting"},
	}
	stats, err := Run(context.Background(), database, next)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.Inserts != 3 {
		t.Fatalf("expected 3 inserts, got %d", stats.Inserts)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM region_map`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM region_map WHERE location_region = 'WEST'`, 0)
	assertCount(t, database, `SELECT COUNT(*) FROM products WHERE product_id = 'P-200'`, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM part_categories WHERE name = 'Brakes'`, 0)
}

func TestRunKeepsPreviousRowsOnFailure(t *testing.T) {
	database := openMigrated(t)

	if _, err := Run(context.Background(), database, testRows); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := database.Exec(`DROP TABLE part_categories`); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if _, err := Run(context.Background(), database, testRows[:1]); err == nil {
		t.Fatalf("expected error when a catalog table is missing")
	}

	assertCount(t, database, `SELECT COUNT(*) FROM region_map`, 2)
	assertCount(t, database, `SELECT COUNT(*) FROM products`, 2)
}

func TestRunRollsBackWithoutSchema(t *testing.T) {
	database, err := db.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if _, err := Run(context.Background(), database, testRows); err == nil {
		t.Fatalf("expected error when tables are missing")
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("%s: expected count %d, got %d", query, expected, count)
	}
}
