package entity

// SearchResult is one ranked item returned by the search capability.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
