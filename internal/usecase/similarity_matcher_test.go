package usecase

import (
	"math"
	"testing"

	"github.com/wardrobe/backend/internal/domain"
)

const floatTolerance = 1e-9

func int64Ptr(v int64) *int64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

func newDefaultMatcher() *SimilarityMatcher {
	return NewSimilarityMatcher(DefaultMatchTables())
}

func TestScore(t *testing.T) {
	m := newDefaultMatcher()

	t.Run("identical item scores exactly one", func(t *testing.T) {
		item := domain.ComparableItem{
			Name:       "Black Hoodie",
			Brand:      "Uniqlo",
			Color:      "black",
			Season:     "Winter",
			Occasion:   "Casual",
			Style:      "Streetwear",
			CategoryID: int64Ptr(3),
		}

		total, scores := m.Score(item, item)
		if total != 1.0 {
			t.Errorf("total = %v, want exactly 1.0", total)
		}
		for _, field := range domain.Fields {
			if scores[field] != 1.0 {
				t.Errorf("scores[%s] = %v, want 1.0", field, scores[field])
			}
		}
	})

	t.Run("empty items score zero", func(t *testing.T) {
		total, scores := m.Score(domain.ComparableItem{}, domain.ComparableItem{})
		if total != 0 {
			t.Errorf("total = %v, want 0", total)
		}
		if len(scores) != len(domain.Fields) {
			t.Errorf("len(scores) = %d, want %d", len(scores), len(domain.Fields))
		}
	})

	t.Run("hoodie versus sweater", func(t *testing.T) {
		wish := domain.ComparableItem{Name: "Black Hoodie", Color: "black", CategoryID: int64Ptr(3), Season: "Winter"}
		candidate := domain.ComparableItem{Name: "Black Sweater", Color: "black", CategoryID: int64Ptr(3), Season: "Autumn"}

		total, scores := m.Score(wish, candidate)

		if !almostEqual(scores[domain.FieldName], 0.56) {
			t.Errorf("name = %v, want 0.56", scores[domain.FieldName])
		}
		if !almostEqual(scores[domain.FieldSeason], 0.6) {
			t.Errorf("season = %v, want 0.6", scores[domain.FieldSeason])
		}
		if !almostEqual(total, 0.722) {
			t.Errorf("total = %v, want 0.722", total)
		}

		fields := displayFields(scores)
		if len(fields) != 2 || fields[0] != domain.FieldColor || fields[1] != domain.FieldCategory {
			t.Errorf("displayFields = %v, want [color category]", fields)
		}
	})

	t.Run("stays within unit interval", func(t *testing.T) {
		items := []domain.ComparableItem{
			{},
			{Name: "Navy Blazer", Color: "navy", Season: "All Seasons"},
			{Name: "blazer", Brand: "Zara", Color: "blue", CategoryID: int64Ptr(1)},
			{Name: "  ", Color: "light blue", Season: "Monsoon", Style: "formal"},
			{Name: "Running Shoes", Brand: "Nike", Occasion: "sport", CategoryID: int64Ptr(7)},
		}

		for _, a := range items {
			for _, b := range items {
				total, scores := m.Score(a, b)
				if total < 0 || total > 1 {
					t.Errorf("Score(%+v, %+v) = %v, want within [0,1]", a, b, total)
				}
				for field, s := range scores {
					if s < 0 || s > 1 {
						t.Errorf("scores[%s] = %v, want within [0,1]", field, s)
					}
				}
			}
		}
	})
}

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact match", "hoodie", "hoodie", 1.0},
		{"case and whitespace insensitive", "  Black Hoodie ", "black hoodie", 1.0},
		{"substring", "hoodie", "zip hoodie", 0.8},
		{"substring reversed", "Levi Strauss Jeans", "levi strauss", 0.8},
		{"sequence ratio", "denim jacket", "leather jacket", 0.6153846153846154},
		{"sequence ratio just above floor", "hoodie", "sweater", 0.15384615384615385},
		{"unrelated", "abc", "xyz", 0.0},
		{"empty left", "", "hoodie", 0.0},
		{"empty right", "hoodie", "", 0.0},
		{"whitespace only is absent", "   ", "hoodie", 0.0},
		{"both empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textSimilarity(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("textSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTextSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"sneakers", "sandals"},
		{"running shoes", "trail runners"},
		{"Nike", "Adidas"},
		{"white tee", "white t-shirt"},
		{"casual", "formal"},
	}

	for _, p := range pairs {
		ab := textSimilarity(p[0], p[1])
		ba := textSimilarity(p[1], p[0])
		if ab != ba {
			t.Errorf("textSimilarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}

	if got := textSimilarity("sneakers", "sandals"); !almostEqual(got, 0.4) {
		t.Errorf("textSimilarity(sneakers, sandals) = %v, want 0.4", got)
	}
}

func TestColorSimilarity(t *testing.T) {
	m := newDefaultMatcher()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"exact", "black", "black", 1.0},
		{"normalized exact", " Black", "BLACK ", 1.0},
		{"same group", "navy", "blue", 0.7},
		{"same group both synonyms", "crimson", "burgundy", 0.7},
		{"color listed in two groups", "beige", "tan", 0.7},
		{"color listed in two groups other side", "beige", "ivory", 0.7},
		{"substring", "light blue", "blue", 0.5},
		{"different groups", "red", "green", 0.0},
		{"unknown colors", "chartreuse", "vermilion", 0.0},
		{"empty", "", "red", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.colorSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("colorSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if rev := m.colorSimilarity(tt.b, tt.a); rev != got {
				t.Errorf("colorSimilarity not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestCategorySimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b *int64
		want float64
	}{
		{"equal", int64Ptr(3), int64Ptr(3), 1.0},
		{"different", int64Ptr(3), int64Ptr(4), 0.0},
		{"left nil", nil, int64Ptr(3), 0.0},
		{"right nil", int64Ptr(3), nil, 0.0},
		{"both nil", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorySimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("categorySimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeasonSimilarity(t *testing.T) {
	m := newDefaultMatcher()

	tests := []struct {
		a, b string
		want float64
	}{
		{"Spring", "Summer", 0.6},
		{"Autumn", "Winter", 0.6},
		{"Spring", "Autumn", 0.4},
		{"Summer", "Autumn", 0.4},
		{"Spring", "Winter", 0.2},
		{"Summer", "Winter", 0.2},
		{"Summer", "All Seasons", 0.7},
		{"All Seasons", "Monsoon", 0.7},
		{"All Seasons", "All Seasons", 1.0},
		{"Winter", "Winter", 1.0},
		{"spring", "SUMMER", 0.6},
		{"", "Winter", 0.0},
		{"Monsoon", "Summer", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := m.seasonSimilarity(tt.a, tt.b); got != tt.want {
				t.Errorf("seasonSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := m.seasonSimilarity(tt.b, tt.a); got != tt.want {
				t.Errorf("seasonSimilarity(%q, %q) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	m := newDefaultMatcher()
	wish := domain.ComparableItem{Name: "Black Hoodie", Color: "black", CategoryID: int64Ptr(3), Season: "Winter"}

	candidates := []domain.Candidate{
		{ID: 1, Item: domain.ComparableItem{Name: "Red Dress", Color: "red", CategoryID: int64Ptr(9), Season: "Summer"}},
		{ID: 2, Item: domain.ComparableItem{Name: "Black Sweater", Color: "black", CategoryID: int64Ptr(3), Season: "Autumn"}},
		{ID: 3, Item: domain.ComparableItem{Name: "Black Hoodie", Color: "black", CategoryID: int64Ptr(3), Season: "Winter"}},
		{ID: 4, Item: domain.ComparableItem{Name: "Charcoal Hoodie", Color: "charcoal", CategoryID: int64Ptr(3)}},
		{ID: 5, Item: domain.ComparableItem{Name: "Black Sweater", Color: "black", CategoryID: int64Ptr(3), Season: "Autumn"}},
	}

	t.Run("ranks best first and filters by threshold", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates, 0.3, 10)

		if len(results) != 4 {
			t.Fatalf("len(results) = %d, want 4", len(results))
		}
		if results[0].ID != 3 {
			t.Errorf("results[0].ID = %d, want 3", results[0].ID)
		}
		for i := 1; i < len(results); i++ {
			if results[i].Score > results[i-1].Score {
				t.Errorf("results not sorted: %v > %v at %d", results[i].Score, results[i-1].Score, i)
			}
		}
		for _, r := range results {
			if r.Score < 0.3 {
				t.Errorf("result %d score %v below threshold", r.ID, r.Score)
			}
			if r.ID == 1 {
				t.Errorf("red dress should have been filtered out")
			}
		}
	})

	t.Run("ties keep candidate order", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates, 0.3, 10)
		pos := map[int64]int{}
		for i, r := range results {
			pos[r.ID] = i
		}
		if pos[2] > pos[5] {
			t.Errorf("candidate 2 ranked after 5 despite equal score and earlier input position")
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates, 0.0, 2)
		if len(results) != 2 {
			t.Fatalf("len(results) = %d, want 2", len(results))
		}
		if results[0].ID != 3 {
			t.Errorf("results[0].ID = %d, want 3", results[0].ID)
		}
	})

	t.Run("zero threshold keeps every candidate", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates, 0.0, 50)
		if len(results) != len(candidates) {
			t.Errorf("len(results) = %d, want %d", len(results), len(candidates))
		}
	})

	t.Run("non-positive limit returns nothing", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates, 0.0, 0)
		if results == nil || len(results) != 0 {
			t.Errorf("results = %v, want empty non-nil slice", results)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		results := m.FindSimilar(wish, nil, 0.01, 10)
		if len(results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(results))
		}
	})

	t.Run("threshold above every score", func(t *testing.T) {
		results := m.FindSimilar(wish, candidates[:1], 0.99, 10)
		if len(results) != 0 {
			t.Errorf("len(results) = %d, want 0", len(results))
		}
	})
}

func TestDisplayFields(t *testing.T) {
	t.Run("only high fields when any is high", func(t *testing.T) {
		scores := domain.FieldScores{
			domain.FieldName:  0.5,
			domain.FieldColor: 1.0,
			domain.FieldStyle: 0.8,
		}
		got := displayFields(scores)
		if len(got) != 2 || got[0] != domain.FieldColor || got[1] != domain.FieldStyle {
			t.Errorf("displayFields = %v, want [color style]", got)
		}
	})

	t.Run("moderate fields when none is high", func(t *testing.T) {
		scores := domain.FieldScores{
			domain.FieldName:   0.56,
			domain.FieldSeason: 0.7,
			domain.FieldBrand:  0.4,
		}
		got := displayFields(scores)
		if len(got) != 2 || got[0] != domain.FieldName || got[1] != domain.FieldSeason {
			t.Errorf("displayFields = %v, want [name season]", got)
		}
	})

	t.Run("empty when nothing matches", func(t *testing.T) {
		got := displayFields(domain.FieldScores{domain.FieldName: 0.2})
		if got == nil || len(got) != 0 {
			t.Errorf("displayFields = %v, want empty", got)
		}
	})
}

func TestNewSimilarityMatcherCopiesTables(t *testing.T) {
	tables := DefaultMatchTables()
	m := NewSimilarityMatcher(tables)

	tables.Weights[domain.FieldColor] = 0
	tables.ColorGroups["blue"] = []string{"blue"}
	tables.SeasonPairs[0].Score = 0

	if got := m.colorSimilarity("navy", "blue"); got != 0.7 {
		t.Errorf("colorSimilarity(navy, blue) = %v after mutating tables, want 0.7", got)
	}
	if got := m.seasonSimilarity("Spring", "Summer"); got != 0.6 {
		t.Errorf("seasonSimilarity(Spring, Summer) = %v after mutating tables, want 0.6", got)
	}
	total, _ := m.Score(domain.ComparableItem{Color: "red"}, domain.ComparableItem{Color: "red"})
	if !almostEqual(total, weightColor) {
		t.Errorf("total = %v, want %v", total, weightColor)
	}
}
