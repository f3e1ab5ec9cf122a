package domain

// Page is a read-only window over a larger result set. It is a response
// shape only and is never persisted.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalCount  int `json:"total_count"`
}
