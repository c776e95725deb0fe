package usecase

import (
	"sort"
	"strings"

	"github.com/wardrobe/backend/internal/domain"
)

type fieldWeight struct {
	field  domain.Field
	weight float64
}

type seasonKey struct {
	a, b string
}

// SimilarityMatcher scores wishlist entries against owned items.
// It holds no mutable state and is safe for concurrent use.
type SimilarityMatcher struct {
	weights     []fieldWeight
	colorGroups map[string][]int
	seasons     map[seasonKey]float64
	allSeasons  string
}

// NewSimilarityMatcher builds the lookup tables once; later changes to tables do not leak in
func NewSimilarityMatcher(tables MatchTables) *SimilarityMatcher {
	m := &SimilarityMatcher{
		weights:     make([]fieldWeight, 0, len(domain.Fields)),
		colorGroups: make(map[string][]int),
		seasons:     make(map[seasonKey]float64, len(tables.SeasonPairs)),
		allSeasons:  normalize(tables.AllSeasons),
	}

	for _, field := range domain.Fields {
		m.weights = append(m.weights, fieldWeight{field: field, weight: tables.Weights[field]})
	}

	// Sort group names so group indices are stable across runs
	names := make([]string, 0, len(tables.ColorGroups))
	for name := range tables.ColorGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	for idx, name := range names {
		for _, color := range tables.ColorGroups[name] {
			c := normalize(color)
			m.colorGroups[c] = append(m.colorGroups[c], idx)
		}
	}

	for _, pair := range tables.SeasonPairs {
		a, b := normalize(pair.A), normalize(pair.B)
		m.seasons[seasonKey{a, b}] = pair.Score
		m.seasons[seasonKey{b, a}] = pair.Score
	}

	return m
}

// Score computes the weighted similarity of candidate to wish and the per-field breakdown.
// Missing attributes contribute zero; the total is always within [0, 1].
func (m *SimilarityMatcher) Score(wish, candidate domain.ComparableItem) (float64, domain.FieldScores) {
	scores := domain.FieldScores{
		domain.FieldName:     textSimilarity(wish.Name, candidate.Name),
		domain.FieldBrand:    textSimilarity(wish.Brand, candidate.Brand),
		domain.FieldColor:    m.colorSimilarity(wish.Color, candidate.Color),
		domain.FieldCategory: categorySimilarity(wish.CategoryID, candidate.CategoryID),
		domain.FieldSeason:   m.seasonSimilarity(wish.Season, candidate.Season),
		domain.FieldOccasion: textSimilarity(wish.Occasion, candidate.Occasion),
		domain.FieldStyle:    textSimilarity(wish.Style, candidate.Style),
	}

	total := 0.0
	for _, fw := range m.weights {
		total += scores[fw.field] * fw.weight
	}

	return clampUnit(total), scores
}

// FindSimilar returns up to limit candidates scoring at least threshold, best first.
// Equal scores keep the candidates' input order.
func (m *SimilarityMatcher) FindSimilar(
	wish domain.ComparableItem,
	candidates []domain.Candidate,
	threshold float64,
	limit int,
) []domain.MatchResult {
	results := make([]domain.MatchResult, 0)
	if limit < 1 {
		return results
	}

	for _, candidate := range candidates {
		total, scores := m.Score(wish, candidate.Item)
		if total < threshold {
			continue
		}
		results = append(results, domain.MatchResult{
			ID:          candidate.ID,
			Score:       total,
			MatchFields: displayFields(scores),
			FieldScores: scores,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// displayFields picks the fields to surface as match reasons: the high ones if any, else the moderate ones
func displayFields(scores domain.FieldScores) []domain.Field {
	var high, moderate []domain.Field
	for _, field := range domain.Fields {
		s := scores[field]
		switch {
		case s > highFieldScore:
			high = append(high, field)
		case s > moderateFieldScore:
			moderate = append(moderate, field)
		}
	}

	if len(high) > 0 {
		return high
	}
	if moderate == nil {
		return []domain.Field{}
	}
	return moderate
}

// textSimilarity compares free-text attributes (name, brand, occasion, style)
func textSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0.0
	}

	if a == b {
		return scoreExact
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return textContainsScore
	}

	// Fixed argument order keeps the ratio symmetric when longest-block ties break differently
	if a > b {
		a, b = b, a
	}
	if ratio := sequenceRatio(a, b); ratio > textNoiseFloor {
		return ratio
	}
	return 0.0
}

func (m *SimilarityMatcher) colorSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0.0
	}

	if a == b {
		return scoreExact
	}

	if m.sameColorGroup(a, b) {
		return colorGroupScore
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		return colorContainsScore
	}
	return 0.0
}

func (m *SimilarityMatcher) sameColorGroup(a, b string) bool {
	for _, ga := range m.colorGroups[a] {
		for _, gb := range m.colorGroups[b] {
			if ga == gb {
				return true
			}
		}
	}
	return false
}

// categorySimilarity treats categories as opaque identifiers
func categorySimilarity(a, b *int64) float64 {
	if a != nil && b != nil && *a == *b {
		return scoreExact
	}
	return 0.0
}

func (m *SimilarityMatcher) seasonSimilarity(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return 0.0
	}

	if a == b {
		return scoreExact
	}

	if m.allSeasons != "" && (a == m.allSeasons || b == m.allSeasons) {
		return allSeasonsScore
	}

	return m.seasons[seasonKey{a, b}]
}

// normalize lowercases and trims an attribute for comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
