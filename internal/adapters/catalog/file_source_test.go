package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"removal-pricing-service/internal/domain"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

const minimalConfig = `
version: "test-1"
vatRate: 0.2
standardVan: {type: luton_van, name: Van, maxWeightKg: 3500, maxVolumeM3: 14.5, maxItems: 150}
upgradeVan: {type: large_van, name: Big Van, maxWeightKg: 7500, maxVolumeM3: 30, maxItems: 250}
routing: {baseSpeedKmh: 30}
tiers: {economyMultiplier: 0.85, priorityMultiplier: 1.5}
`

const minimalCatalog = `{"version": "cat-1", "items": [{"id": "armchair", "name": "Armchair", "weight_kg": 25, "volume_m3": 0.9}]}`

func TestFileSourceLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, CatalogFile, minimalCatalog)
	writeFile(t, root, ConfigFile, minimalConfig)

	data, err := NewFileSource(root).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := data.Version(); got != "cat-1:test-1" {
		t.Errorf("version = %q, want %q", got, "cat-1:test-1")
	}
	item, ok := data.Catalog.Lookup("", "Armchair")
	if !ok || item.ID != "armchair" {
		t.Fatalf("name lookup failed: %+v %v", item, ok)
	}
	if !item.FitsStandardVan() {
		t.Errorf("item without luton_van_fit should fit the standard van")
	}
	if data.Config.StandardVan.MaxVolumeM3 != 14.5 {
		t.Errorf("max volume = %v, want 14.5", data.Config.StandardVan.MaxVolumeM3)
	}
}

func TestFileSourceLoadFailures(t *testing.T) {
	cases := []struct {
		name     string
		catalog  string
		config   string
		resource string
	}{
		{"missing catalog", "", minimalConfig, "catalog"},
		{"malformed catalog", `{"items": [`, minimalConfig, "catalog"},
		{"duplicate ids", `{"version": "x", "items": [{"id": "a"}, {"id": "a"}]}`, minimalConfig, "catalog"},
		{"missing config", minimalCatalog, "", "pricing config"},
		{"malformed config", minimalCatalog, "version: [", "pricing config"},
		{"invalid vat", minimalCatalog, minimalConfig + "\nvatRate: 1.5\n", "pricing config"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := t.TempDir()
			if tc.catalog != "" {
				writeFile(t, root, CatalogFile, tc.catalog)
			}
			if tc.config != "" {
				writeFile(t, root, ConfigFile, tc.config)
			}

			data, err := NewFileSource(root).Load(context.Background())
			if data != nil {
				t.Fatalf("expected no data on failure")
			}

			var dsErr *domain.DataSourceError
			if !errors.As(err, &dsErr) {
				t.Fatalf("err = %v, want *DataSourceError", err)
			}
			if dsErr.Resource != tc.resource {
				t.Errorf("resource = %q, want %q", dsErr.Resource, tc.resource)
			}
		})
	}
}

func TestDiscoverRootFromNestedDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ConfigFile, minimalConfig)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := DiscoverRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Fatalf("root = %q, want %q", got, want)
	}
}

func TestShippedDataLoads(t *testing.T) {
	root, err := DiscoverRoot(".")
	if err != nil {
		t.Fatalf("discover root: %v", err)
	}

	data, err := NewFileSource(root).Load(context.Background())
	if err != nil {
		t.Fatalf("shipped data failed to load: %v", err)
	}
	if _, ok := data.Catalog.Lookup("upright-piano", ""); !ok {
		t.Errorf("upright-piano missing from shipped catalog")
	}
	if data.Config.VatRate != 0.20 {
		t.Errorf("vat rate = %v, want 0.20", data.Config.VatRate)
	}
}
