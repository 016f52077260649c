package llm

import (
	"log"
	"strconv"
	"strings"

	"watchfinder-backend/internal/catalog"
	"watchfinder-backend/internal/filters"
)

const (
	// MaxSuggestions caps every response regardless of contract version.
	MaxSuggestions = 8

	// NoPreferenceMarker is the value rendered for a facet with no selection.
	// The template preamble declares this marker once for all facets.
	NoPreferenceMarker = "Any"

	// ContractV1 is the image-placeholder output contract; ContractV2 is the
	// purchase-URL contract. Exactly one is active per deployment.
	ContractV1 = "v1"
	ContractV2 = "v2"

	// ContractQuiz is the WatchMatch quiz contract. It is independent of the
	// deployment's search contract version and always available.
	ContractQuiz = "quiz"
)

// NormalizeContractVersion maps unknown versions to the default contract.
func NormalizeContractVersion(version string) string {
	switch strings.TrimSpace(version) {
	case ContractV1:
		return ContractV1
	case ContractV2:
		return ContractV2
	default:
		return ContractV2
	}
}

// BuildSearchPrompt renders a normalized request into the provider prompt for
// the given contract version. The rendering is deterministic: facets appear
// in fixed template order, empty sequences render the no-preference marker,
// and non-empty sequences are comma-joined in Normalizer order.
func BuildSearchPrompt(contractVersion string, req filters.Request) string {
	version := strings.TrimSpace(contractVersion)
	template, ok := PromptTemplate(version)
	if !ok {
		log.Printf("unknown contract version %q, defaulting to %s", contractVersion, ContractV2)
	}

	price := req.Ranges[catalog.RangePrice]
	size := req.Ranges[catalog.RangeCaseSize]

	replacer := strings.NewReplacer(
		"{{MAX_SUGGESTIONS}}", strconv.Itoa(MaxSuggestions),
		"{{MOVEMENT}}", joinOrMarker(req.Facets[catalog.FacetMovement]),
		"{{MATERIAL}}", joinOrMarker(req.Facets[catalog.FacetMaterial]),
		"{{STYLE}}", joinOrMarker(req.Facets[catalog.FacetStyle]),
		"{{DIAL_COLOR}}", joinOrMarker(req.Facets[catalog.FacetDialColor]),
		"{{STRAP_TYPE}}", joinOrMarker(req.Facets[catalog.FacetStrapType]),
		"{{WATER_RESISTANCE}}", joinOrMarker(req.Facets[catalog.FacetWaterResistance]),
		"{{GLASS_TYPE}}", joinOrMarker(req.Facets[catalog.FacetGlassType]),
		"{{FEATURES}}", joinOrMarker(req.Facets[catalog.FacetFeatures]),
		"{{PRICE_MIN}}", formatAmount(price.Min),
		"{{PRICE_MAX}}", formatAmount(price.Max),
		"{{CASE_MIN}}", formatAmount(size.Min),
		"{{CASE_MAX}}", formatAmount(size.Max),
	)
	return replacer.Replace(template)
}

// QuizRequest carries the four free-text WatchMatch quiz answers.
type QuizRequest struct {
	Lifestyle        string `json:"lifestyle"`
	StylePreferences string `json:"stylePreferences"`
	Budget           string `json:"budget"`
	DesiredFeatures  string `json:"desiredFeatures"`
}

// BuildQuizPrompt renders quiz answers into the consultant prompt. Blank
// answers render the no-preference marker.
func BuildQuizPrompt(req QuizRequest) string {
	template, _ := PromptTemplate(ContractQuiz)
	replacer := strings.NewReplacer(
		"{{LIFESTYLE}}", textOrMarker(req.Lifestyle),
		"{{STYLE_PREFERENCES}}", textOrMarker(req.StylePreferences),
		"{{BUDGET}}", textOrMarker(req.Budget),
		"{{DESIRED_FEATURES}}", textOrMarker(req.DesiredFeatures),
	)
	return replacer.Replace(template)
}

func textOrMarker(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return NoPreferenceMarker
	}
	return value
}

func joinOrMarker(values []string) string {
	if len(values) == 0 {
		return NoPreferenceMarker
	}
	return strings.Join(values, ", ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
