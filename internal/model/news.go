package model

// Category is a news feed category.
type Category string

const (
	CategoryMarket   Category = "market"
	CategoryTech     Category = "tech"
	CategoryCrypto   Category = "crypto"
	CategoryEconomy  Category = "economy"
	CategoryEarnings Category = "earnings"
	CategoryBreaking Category = "breaking"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryMarket,
	CategoryTech,
	CategoryCrypto,
	CategoryEconomy,
	CategoryEarnings,
	CategoryBreaking,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Article impact levels.
const (
	ArticleImpactHigh   = "high"
	ArticleImpactMedium = "medium"
	ArticleImpactLow    = "low"
)

// Article is a generated news item.
type Article struct {
	ID             string   `json:"id"`
	Headline       string   `json:"headline"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	Category       Category `json:"category"`
	Sentiment      string   `json:"sentiment"`
	Timestamp      string   `json:"timestamp"`
	Source         string   `json:"source"`
	Impact         string   `json:"impact"`
	RelatedSymbols []string `json:"relatedSymbols"`
}
