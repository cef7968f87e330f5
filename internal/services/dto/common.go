package dto

// PagedResponse wraps a list with its total row count.
type PagedResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func NewPagedResponse[T any](items []T, total int64, page, pageSize int) *PagedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedResponse[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
}
