package domain

import "github.com/shopspring/decimal"

// Represents one line of the caller's inventory.
// Weight and Volume are per unit; zero means "not supplied".
type ItemRequest struct {
	ID                  string
	Name                string
	Category            string
	Quantity            int
	WeightKg            float64
	VolumeM3            float64
	Fragile             bool
	Oversize            bool
	DisassemblyRequired bool
	SpecialHandling     []string
}

type Dimensions struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// Reference data for a known item type, loaded from the catalog resource.
// ReferencePrice is in pence; zero means the catalog carries no price.
type CatalogItem struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	WeightKg            float64    `json:"weight_kg"`
	VolumeM3            float64    `json:"volume_m3"`
	Dimensions          Dimensions `json:"dimensions"`
	DismantlingRequired bool       `json:"dismantling_required"`
	DismantlingMinutes  float64    `json:"dismantling_minutes"`
	ReassemblyMinutes   float64    `json:"reassembly_minutes"`
	WorkersRequired     int        `json:"workers_required"`
	FragilityLevel      string     `json:"fragility_level"`
	Stackability        string     `json:"stackability"`
	VanFit              *bool      `json:"luton_van_fit"`
	ReferencePrice      int64      `json:"reference_price_pence"`
}

// FitsStandardVan reports catalog van-fit; items without the attribute are assumed to fit.
func (c CatalogItem) FitsStandardVan() bool {
	return c.VanFit == nil || *c.VanFit
}

// Catalog is the immutable item reference, indexed by id with a case-insensitive name fallback.
type Catalog struct {
	Version string
	Items   []CatalogItem

	byID   map[string]int
	byName map[string]int
}

func NewCatalog(version string, items []CatalogItem) *Catalog {
	c := &Catalog{
		Version: version,
		Items:   items,
		byID:    make(map[string]int, len(items)),
		byName:  make(map[string]int, len(items)),
	}
	for i, it := range items {
		c.byID[it.ID] = i
		if _, dup := c.byName[it.Name]; !dup {
			c.byName[it.Name] = i
		}
	}
	return c
}

// Lookup finds an item by id first, then by exact name. Names are compared byte for byte.
func (c *Catalog) Lookup(id, name string) (CatalogItem, bool) {
	if c == nil {
		return CatalogItem{}, false
	}
	if i, ok := c.byID[id]; ok && id != "" {
		return c.Items[i], true
	}
	if i, ok := c.byName[name]; ok && name != "" {
		return c.Items[i], true
	}
	return CatalogItem{}, false
}

// An ItemRequest merged with its catalog entry and the derived costs.
// Money fields are unrounded pence; rounding happens when fees are settled.
type EnrichedItem struct {
	ItemRequest
	Catalog *CatalogItem

	WeightKg     float64
	VolumeM3     float64
	VanFit       bool
	BasePrice    decimal.Decimal
	ItemBaseCost decimal.Decimal
	LaborCost    decimal.Decimal
}

func (e EnrichedItem) TotalWeightKg() float64 { return e.WeightKg * float64(e.Quantity) }
func (e EnrichedItem) TotalVolumeM3() float64 { return e.VolumeM3 * float64(e.Quantity) }
