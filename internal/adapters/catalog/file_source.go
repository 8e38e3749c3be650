package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CatalogFile = "data/pricing/catalog.json"
	ConfigFile  = "data/pricing/pricing.yaml"
)

type catalogDocument struct {
	Version string               `json:"version"`
	Items   []domain.CatalogItem `json:"items"`
}

// FileSource reads the catalog (JSON) and pricing configuration (YAML) below Root.
type FileSource struct {
	Root string
}

func NewFileSource(root string) *FileSource {
	return &FileSource{Root: root}
}

// Load reads and validates both resources. Any failure is a *domain.DataSourceError.
func (s *FileSource) Load(ctx context.Context) (_ *domain.PricingData, err error) {
	defer obs.Time(ctx, "catalog.load")(&err)

	cat, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}

	return &domain.PricingData{Catalog: cat, Config: cfg}, nil
}

func (s *FileSource) loadCatalog() (*domain.Catalog, error) {
	path := filepath.Join(s.Root, CatalogFile)
	fail := func(err error) error {
		return &domain.DataSourceError{Resource: "catalog", Path: path, Err: err}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(fmt.Errorf("read: %w", err))
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fail(fmt.Errorf("parse json: %w", err))
	}
	if strings.TrimSpace(doc.Version) == "" {
		return nil, fail(errors.New("version is required"))
	}
	if len(doc.Items) == 0 {
		return nil, fail(errors.New("catalog has no items"))
	}

	seen := make(map[string]struct{}, len(doc.Items))
	for i, it := range doc.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fail(fmt.Errorf("item at index %d: id cannot be empty", i))
		}
		if _, dup := seen[id]; dup {
			return nil, fail(fmt.Errorf("item at index %d: duplicate id %q", i, id))
		}
		if it.WeightKg < 0 || it.VolumeM3 < 0 {
			return nil, fail(fmt.Errorf("item %q: weight and volume must not be negative", id))
		}
		seen[id] = struct{}{}
	}

	return domain.NewCatalog(doc.Version, doc.Items), nil
}

func (s *FileSource) loadConfig() (*domain.PricingConfig, error) {
	path := filepath.Join(s.Root, ConfigFile)
	fail := func(err error) error {
		return &domain.DataSourceError{Resource: "pricing config", Path: path, Err: err}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fail(fmt.Errorf("read: %w", err))
	}

	var cfg domain.PricingConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fail(fmt.Errorf("parse yaml: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fail(err)
	}

	return &cfg, nil
}

// DiscoverRoot walks up from start until a directory containing the pricing
// configuration is found.
func DiscoverRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("discover data root: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &domain.DataSourceError{
				Resource: "data root",
				Path:     start,
				Err:      fmt.Errorf("no %s found in any parent directory", ConfigFile),
			}
		}
		dir = parent
	}
}
