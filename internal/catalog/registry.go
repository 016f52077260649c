package catalog

// Facet is one filterable watch attribute with a fixed preset vocabulary.
// Facets are defined at process start and never mutated.
type Facet struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Presets      []string `json:"presets"`
	AllowsCustom bool     `json:"allowsCustom"`
}

// RangeFacet is a continuous numeric filter bounded by [Floor, Ceiling].
type RangeFacet struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Floor   float64 `json:"floor"`
	Ceiling float64 `json:"ceiling"`
}

const (
	FacetMovement        = "movement"
	FacetMaterial        = "material"
	FacetStyle           = "style"
	FacetDialColor       = "dialColor"
	FacetStrapType       = "strapType"
	FacetWaterResistance = "waterResistance"
	FacetGlassType       = "glassType"
	FacetFeatures        = "features"

	RangePrice    = "price"
	RangeCaseSize = "caseSize"
)

var facets = []Facet{
	{
		ID:           FacetMovement,
		Label:        "Movement",
		Presets:      []string{"Automatic", "Quartz", "Manual"},
		AllowsCustom: true,
	},
	{
		ID:           FacetMaterial,
		Label:        "Material",
		Presets:      []string{"Stainless Steel", "Gold", "Titanium", "Ceramic", "Bronze", "Platinum"},
		AllowsCustom: true,
	},
	{
		ID:           FacetStyle,
		Label:        "Style",
		Presets:      []string{"Dive", "Dress", "Pilot", "Field", "Racing"},
		AllowsCustom: true,
	},
	{
		ID:           FacetDialColor,
		Label:        "Dial Color",
		Presets:      []string{"Black", "White", "Blue", "Green", "Silver", "Champagne"},
		AllowsCustom: true,
	},
	{
		ID:           FacetStrapType,
		Label:        "Strap Type",
		Presets:      []string{"Leather", "Metal Bracelet", "Rubber", "NATO", "Fabric"},
		AllowsCustom: true,
	},
	{
		ID:           FacetWaterResistance,
		Label:        "Water Resistance",
		Presets:      []string{"30m", "50m", "100m", "200m", "300m"},
		AllowsCustom: false,
	},
	{
		ID:           FacetGlassType,
		Label:        "Glass Type",
		Presets:      []string{"Sapphire", "Mineral", "Acrylic"},
		AllowsCustom: false,
	},
	{
		ID:           FacetFeatures,
		Label:        "Complications & Features",
		Presets:      []string{"Chronograph", "Date", "Water Resistance", "Tachymeter", "GMT", "Moonphase", "Perpetual Calendar"},
		AllowsCustom: true,
	},
}

var ranges = []RangeFacet{
	{ID: RangePrice, Label: "Price Range", Unit: "INR", Floor: 0, Ceiling: 5000},
	{ID: RangeCaseSize, Label: "Case Size", Unit: "mm", Floor: 30, Ceiling: 50},
}

// Facets returns every multi-value facet in display order. Preset slices are
// copied so callers cannot mutate the registry.
func Facets() []Facet {
	out := make([]Facet, len(facets))
	for i, f := range facets {
		presets := make([]string, len(f.Presets))
		copy(presets, f.Presets)
		f.Presets = presets
		out[i] = f
	}
	return out
}

// Ranges returns both range facets in display order.
func Ranges() []RangeFacet {
	out := make([]RangeFacet, len(ranges))
	copy(out, ranges)
	return out
}

// FacetByID looks up a multi-value facet.
func FacetByID(id string) (Facet, bool) {
	for _, f := range facets {
		if f.ID == id {
			return f, true
		}
	}
	return Facet{}, false
}

// RangeByID looks up a range facet.
func RangeByID(id string) (RangeFacet, bool) {
	for _, r := range ranges {
		if r.ID == id {
			return r, true
		}
	}
	return RangeFacet{}, false
}

// IsPreset reports whether value belongs to the facet's preset vocabulary.
func IsPreset(facetID, value string) bool {
	f, ok := FacetByID(facetID)
	if !ok {
		return false
	}
	for _, p := range f.Presets {
		if p == value {
			return true
		}
	}
	return false
}
