package domain

import "strings"

// Category tags a chunk with the curriculum area it was cut from.
type Category string

const (
	CategoryRank      Category = "rank"
	CategoryKihon     Category = "kihon"
	CategorySanshin   Category = "sanshin"
	CategorySchool    Category = "school"
	CategoryWeapon    Category = "weapon"
	CategoryKyusho    Category = "kyusho"
	CategoryTechnique Category = "technique"
	CategoryOther     Category = "other"
)

// Tier is the static retrieval priority class derived from a category.
type Tier string

const (
	TierP1 Tier = "P1"
	TierP2 Tier = "P2"
	TierP3 Tier = "P3"
)

// TierFor maps a chunk category to its priority tier. Rank sheets are the
// source of truth and always dominate; curriculum entities come next;
// everything else competes on raw similarity alone.
func TierFor(c Category) Tier {
	switch c {
	case CategoryRank:
		return TierP1
	case CategoryTechnique, CategorySchool, CategoryKihon, CategoryWeapon:
		return TierP2
	default:
		return TierP3
	}
}

// Chunk is the immutable unit of retrievable text. Its ID is assigned at
// ingestion time and is 1:1 with the chunk's vector in the similarity index.
type Chunk struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Source   string   `json:"source"`
	Category Category `json:"category"`
}

// CategoryForSource derives a chunk category from the source file name.
// Curriculum files follow a naming convention ("nttv rank requirements.txt",
// "Technique Descriptions.md"); anything unrecognized lands in other.
func CategoryForSource(source string) Category {
	name := strings.ToLower(source)
	switch {
	case strings.Contains(name, "rank"):
		return CategoryRank
	case strings.Contains(name, "technique"):
		return CategoryTechnique
	case strings.Contains(name, "school"):
		return CategorySchool
	case strings.Contains(name, "weapon"):
		return CategoryWeapon
	case strings.Contains(name, "kihon"):
		return CategoryKihon
	case strings.Contains(name, "sanshin"):
		return CategorySanshin
	case strings.Contains(name, "kyusho"):
		return CategoryKyusho
	default:
		return CategoryOther
	}
}
