package dto

// Res is the common response envelope.
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasMore      bool  `json:"hasMore"`
}

// PagedRes is Res plus pagination metadata for list endpoints.
type PagedRes struct {
	Res
	Pagination Pagination `json:"pagination"`
}
