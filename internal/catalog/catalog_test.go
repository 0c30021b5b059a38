package catalog

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aaparts/whatif-margin/internal/dataset"
)

var testRows = []dataset.Row{
	{Region: "WEST", SellingLocation: "Reno Hub", AreaName: "Nevada North", ProductID: "P-100", PartCategory: "Brakes"},
	{Region: "WEST", SellingLocation: "Fresno Depot", AreaName: "Central Valley", ProductID: "P-101", PartCategory: "Filters"},
	{Region: "WEST", SellingLocation: "Reno Hub", AreaName: "Nevada North", ProductID: "P-102", PartCategory: "Brakes"},
	{Region: "CENTRAL", SellingLocation: "Omaha Yard", AreaName: "Plains", ProductID: "P-100", PartCategory: "Engine"},
	{Region: "CENTRAL", SellingLocation: "Omaha Yard", AreaName: "", ProductID: "P-103", PartCategory: "Engine"},
	{Region: "CENTRAL", SellingLocation: "Fresno Depot", AreaName: "Plains", ProductID: "P-104", PartCategory: "Lighting"},
	{Region: "NORTHEAST", SellingLocation: "Albany Store", AreaName: "Hudson", ProductID: "", PartCategory: "Lighting"},
	{Region: "", SellingLocation: "Orphan Lot", AreaName: "Nowhere", ProductID: "P-106", PartCategory: ""},
}

func newTestCatalog(t *testing.T, rows []dataset.Row) *Catalog {
	t.Helper()

	c, _, err := Build(context.Background(), ":memory:", rows)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestOptions_NoRegionReturnsFullDistinctSet(t *testing.T) {
	c := newTestCatalog(t, testRows)

	got, err := c.Options(context.Background(), "")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	wantLocations := []string{"Albany Store", "Fresno Depot", "Omaha Yard", "Orphan Lot", "Reno Hub"}
	wantAreas := []string{"Central Valley", "Hudson", "Nevada North", "Nowhere", "Plains"}
	if !reflect.DeepEqual(got.SellingLocations, wantLocations) {
		t.Fatalf("SellingLocations = %v, want %v", got.SellingLocations, wantLocations)
	}
	if !reflect.DeepEqual(got.AreaNames, wantAreas) {
		t.Fatalf("AreaNames = %v, want %v", got.AreaNames, wantAreas)
	}
}

func TestOptions_RegionReturnsOnlyCoOccurringValues(t *testing.T) {
	c := newTestCatalog(t, testRows)

	got, err := c.Options(context.Background(), "CENTRAL")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}

	if want := []string{"Fresno Depot", "Omaha Yard"}; !reflect.DeepEqual(got.SellingLocations, want) {
		t.Fatalf("SellingLocations = %v, want %v", got.SellingLocations, want)
	}
	if want := []string{"Plains"}; !reflect.DeepEqual(got.AreaNames, want) {
		t.Fatalf("AreaNames = %v, want %v", got.AreaNames, want)
	}

	for _, loc := range got.SellingLocations {
		if !coOccurs(testRows, "CENTRAL", func(r dataset.Row) bool { return r.SellingLocation == loc }) {
			t.Fatalf("%s does not appear with CENTRAL", loc)
		}
	}
}

func TestOptions_UnknownRegionIsEmpty(t *testing.T) {
	c := newTestCatalog(t, testRows)

	got, err := c.Options(context.Background(), "PACIFIC")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if len(got.SellingLocations) != 0 || len(got.AreaNames) != 0 {
		t.Fatalf("expected empty options, got %+v", got)
	}
}

func TestRegionsProductsAndCategoriesSkipMissing(t *testing.T) {
	c := newTestCatalog(t, testRows)
	ctx := context.Background()

	regions, err := c.Regions(ctx)
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if want := []string{"CENTRAL", "NORTHEAST", "WEST"}; !reflect.DeepEqual(regions, want) {
		t.Fatalf("Regions = %v, want %v", regions, want)
	}

	products, err := c.ProductIDs(ctx)
	if err != nil {
		t.Fatalf("ProductIDs: %v", err)
	}
	if want := []string{"P-100", "P-101", "P-102", "P-103", "P-104", "P-106"}; !reflect.DeepEqual(products, want) {
		t.Fatalf("ProductIDs = %v, want %v", products, want)
	}

	categories, err := c.PartCategories(ctx)
	if err != nil {
		t.Fatalf("PartCategories: %v", err)
	}
	if want := []string{"Brakes", "Engine", "Filters", "Lighting"}; !reflect.DeepEqual(categories, want) {
		t.Fatalf("PartCategories = %v, want %v", categories, want)
	}
}

func TestEmptyDatasetYieldsEmptyLists(t *testing.T) {
	c := newTestCatalog(t, nil)

	regions, err := c.Regions(context.Background())
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if regions == nil || len(regions) != 0 {
		t.Fatalf("expected empty non-nil regions, got %#v", regions)
	}
}

func coOccurs(rows []dataset.Row, region string, match func(dataset.Row) bool) bool {
	for _, r := range rows {
		if r.Region == region && match(r) {
			return true
		}
	}
	return false
}

func TestBuild_FileStoreDropsValuesFromEarlierDataset(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	old, _, err := Build(ctx, path, []dataset.Row{
		{Region: "WEST", SellingLocation: "Old Depot", AreaName: "Old Area", ProductID: "P-OLD", PartCategory: "Brakes"},
	})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if err := old.Close(); err != nil {
		t.Fatalf("close first catalog: %v", err)
	}

	c, stats, err := Build(ctx, path, []dataset.Row{
		{Region: "CENTRAL", SellingLocation: "New Depot", AreaName: "New Area", ProductID: "P-NEW", PartCategory: "Engine"},
	})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if stats.Inserts != 3 {
		t.Fatalf("expected 3 inserts, got %d", stats.Inserts)
	}

	regions, err := c.Regions(ctx)
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if want := []string{"CENTRAL"}; !reflect.DeepEqual(regions, want) {
		t.Fatalf("Regions = %v, want %v", regions, want)
	}

	opts, err := c.Options(ctx, "")
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if want := []string{"New Depot"}; !reflect.DeepEqual(opts.SellingLocations, want) {
		t.Fatalf("SellingLocations = %v, want %v", opts.SellingLocations, want)
	}
	if want := []string{"New Area"}; !reflect.DeepEqual(opts.AreaNames, want) {
		t.Fatalf("AreaNames = %v, want %v", opts.AreaNames, want)
	}

	products, err := c.ProductIDs(ctx)
	if err != nil {
		t.Fatalf("ProductIDs: %v", err)
	}
	if want := []string{"P-NEW"}; !reflect.DeepEqual(products, want) {
		t.Fatalf("ProductIDs = %v, want %v", products, want)
	}
}
