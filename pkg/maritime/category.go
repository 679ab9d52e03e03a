package maritime

import "strings"

// Category is the closed set of query categories the assistant understands.
type Category string

const (
	CategoryLaytime          Category = "laytime"
	CategoryWeather          Category = "weather"
	CategoryDistance         Category = "distance"
	CategoryCPClause         Category = "cp_clause"
	CategoryDocumentAnalysis Category = "document_analysis"
	CategoryVoyageGuidance   Category = "voyage_guidance"
	CategoryGeneral          Category = "general"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryLaytime,
	CategoryWeather,
	CategoryDistance,
	CategoryCPClause,
	CategoryDocumentAnalysis,
	CategoryVoyageGuidance,
	CategoryGeneral,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts any casing and surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", false
	}
	return c, true
}
