package domain

// Field names a compared attribute of a clothing record
type Field string

const (
	FieldName     Field = "name"
	FieldBrand    Field = "brand"
	FieldColor    Field = "color"
	FieldCategory Field = "category"
	FieldSeason   Field = "season"
	FieldOccasion Field = "occasion"
	FieldStyle    Field = "style"
)

// Fields lists every compared field in display order
var Fields = []Field{
	FieldName, FieldBrand, FieldColor, FieldCategory, FieldSeason, FieldOccasion, FieldStyle,
}

// ComparableItem is the shape shared by wishlist entries and closet items for comparison.
// Empty strings and a nil CategoryID mean the attribute is absent.
type ComparableItem struct {
	Name       string
	Brand      string
	Color      string
	Season     string
	Occasion   string
	Style      string
	CategoryID *int64
}

// FieldScores maps each field to a similarity in [0, 1]
type FieldScores map[Field]float64

// Candidate is an owned item offered to the matcher
type Candidate struct {
	ID   int64
	Item ComparableItem
}

// MatchResult is one ranked candidate returned by the matcher
type MatchResult struct {
	ID          int64       `json:"item_id"`
	Score       float64     `json:"similarity_score"`
	MatchFields []Field     `json:"match_fields"`
	FieldScores FieldScores `json:"field_scores"`
}

// MatchDetails is the per-field breakdown shown next to a similar item
type MatchDetails struct {
	NameSimilarity   float64 `json:"name_similarity"`
	BrandSimilarity  float64 `json:"brand_similarity"`
	ColorSimilarity  float64 `json:"color_similarity"`
	CategoryMatch    bool    `json:"category_match"`
	SeasonSimilarity float64 `json:"season_similarity"`
}

// SimilarItem is a closet item returned for a wishlist entry, with its score
type SimilarItem struct {
	ItemID          int64        `json:"item_id"`
	Name            string       `json:"name"`
	Brand           string       `json:"brand,omitempty"`
	Color           string       `json:"color,omitempty"`
	Season          string       `json:"season,omitempty"`
	Occasion        string       `json:"occasion,omitempty"`
	Style           string       `json:"style,omitempty"`
	Category        string       `json:"category,omitempty"`
	ImageURL        string       `json:"image_url,omitempty"`
	Price           *float64     `json:"price,omitempty"`
	SimilarityScore float64      `json:"similarity_score"`
	MatchFields     []Field      `json:"match_fields"`
	MatchDetails    MatchDetails `json:"match_details"`
}
