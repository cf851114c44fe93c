package dto

// ErrorResponse is the normalized error body for every endpoint. Errors
// carries field-keyed validation messages when available; Message is the
// operation-level fallback.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PaginatedMeta mirrors the listing envelope used by every back-office
// console.
type PaginatedMeta struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	LastPage int   `json:"last_page"`
}
