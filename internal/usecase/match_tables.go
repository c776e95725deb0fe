package usecase

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wardrobe/backend/internal/domain"
)

// Field weights for the aggregate score. They sum to 1.0.
const (
	weightName     = 0.20
	weightBrand    = 0.05
	weightColor    = 0.30
	weightCategory = 0.25
	weightSeason   = 0.10
	weightOccasion = 0.05
	weightStyle    = 0.05
)

// Fixed per-rule scores
const (
	scoreExact          = 1.0
	textContainsScore   = 0.8
	textNoiseFloor      = 0.1 // sequence ratios at or below this count as no similarity
	colorGroupScore     = 0.7
	colorContainsScore  = 0.5
	allSeasonsScore     = 0.7
	highFieldScore      = 0.7 // field scores above this are "high"
	moderateFieldScore  = 0.4 // field scores above this (and not high) are "moderate"
	weightSumTolerance  = 1e-9
	defaultAllSeasonTag = "All Seasons"
)

// SeasonPair scores two different seasons. Lookup is symmetric.
type SeasonPair struct {
	A     string  `yaml:"a"`
	B     string  `yaml:"b"`
	Score float64 `yaml:"score"`
}

// MatchTables is the immutable configuration of the similarity matcher
type MatchTables struct {
	Weights     map[domain.Field]float64 `yaml:"weights"`
	ColorGroups map[string][]string      `yaml:"color_groups"`
	SeasonPairs []SeasonPair             `yaml:"season_pairs"`
	AllSeasons  string                   `yaml:"all_seasons"`
}

// DefaultMatchTables returns the built-in weights, color synonym groups and season table
func DefaultMatchTables() MatchTables {
	return MatchTables{
		Weights: map[domain.Field]float64{
			domain.FieldName:     weightName,
			domain.FieldBrand:    weightBrand,
			domain.FieldColor:    weightColor,
			domain.FieldCategory: weightCategory,
			domain.FieldSeason:   weightSeason,
			domain.FieldOccasion: weightOccasion,
			domain.FieldStyle:    weightStyle,
		},
		ColorGroups: map[string][]string{
			"red":    {"red", "crimson", "scarlet", "ruby", "cherry", "burgundy"},
			"blue":   {"blue", "navy", "sky", "azure", "cobalt", "teal"},
			"green":  {"green", "emerald", "olive", "lime", "mint", "forest"},
			"black":  {"black", "charcoal", "onyx", "ebony"},
			"white":  {"white", "ivory", "cream", "beige", "off-white"},
			"gray":   {"gray", "grey", "slate", "silver", "ash"},
			"brown":  {"brown", "tan", "beige", "chocolate", "coffee", "caramel"},
			"purple": {"purple", "violet", "lavender", "lilac", "mauve"},
			"pink":   {"pink", "rose", "salmon", "coral", "fuchsia"},
			"yellow": {"yellow", "gold", "amber", "mustard", "lemon"},
			"orange": {"orange", "peach", "coral", "apricot", "tangerine"},
		},
		SeasonPairs: []SeasonPair{
			{A: "Spring", B: "Summer", Score: 0.6},
			{A: "Autumn", B: "Winter", Score: 0.6},
			{A: "Spring", B: "Autumn", Score: 0.4},
			{A: "Summer", B: "Autumn", Score: 0.4},
			{A: "Spring", B: "Winter", Score: 0.2},
			{A: "Summer", B: "Winter", Score: 0.2},
		},
		AllSeasons: defaultAllSeasonTag,
	}
}

// LoadMatchTables reads overrides from a YAML file on top of the defaults.
// Sections missing from the file keep their default values.
func LoadMatchTables(path string) (MatchTables, error) {
	tables := DefaultMatchTables()

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("read match tables: %w", err)
	}

	var override MatchTables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tables, fmt.Errorf("decode match tables: %w", err)
	}

	if len(override.Weights) > 0 {
		tables.Weights = override.Weights
	}
	if len(override.ColorGroups) > 0 {
		tables.ColorGroups = override.ColorGroups
	}
	if len(override.SeasonPairs) > 0 {
		tables.SeasonPairs = override.SeasonPairs
	}
	if override.AllSeasons != "" {
		tables.AllSeasons = override.AllSeasons
	}

	if err := tables.Validate(); err != nil {
		return tables, err
	}
	return tables, nil
}

// Validate checks that the weights form a convex combination and all scores are in [0, 1]
func (t MatchTables) Validate() error {
	sum := 0.0
	for _, field := range domain.Fields {
		w, ok := t.Weights[field]
		if !ok {
			return fmt.Errorf("match tables: missing weight for %q", field)
		}
		if w < 0 || w > 1 {
			return fmt.Errorf("match tables: weight for %q must be in [0,1], got %v", field, w)
		}
		sum += w
	}
	if len(t.Weights) != len(domain.Fields) {
		return fmt.Errorf("match tables: unknown field in weights")
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("match tables: weights must sum to 1.0, got %v", sum)
	}

	for name, colors := range t.ColorGroups {
		if len(colors) == 0 {
			return fmt.Errorf("match tables: color group %q is empty", name)
		}
	}

	for _, pair := range t.SeasonPairs {
		if pair.Score < 0 || pair.Score > 1 {
			return fmt.Errorf("match tables: season score %s/%s must be in [0,1]", pair.A, pair.B)
		}
	}
	return nil
}
