package domain

// Sort modes accepted by the search query. An unknown value falls back to
// relevance ordering.
const (
	SortRelevance  = "relevance"
	SortDate       = "date"
	SortPopularity = "popularity"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SearchFilter is a validated filter set for the search query. Validation
// (enum values, pagination bounds) happens at the HTTP boundary; by the time
// a filter reaches the store it is assumed well-formed.
type SearchFilter struct {
	Keyword string `json:"query,omitempty"`
	Type    string `json:"type,omitempty"`
	Sort    string `json:"sort"`
	Order   string `json:"order"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// Offset returns the row offset for the 1-indexed page.
func (f SearchFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PerPage
}

// SearchResult is one page of matching content plus the total match count.
type SearchResult struct {
	Items []Content `json:"items"`
	Total int       `json:"total"`
}
