package models

// APIResponse represents a standardized API response
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      interface{} `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination carries the listing metadata block
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// ErrorDetail represents detailed error information for a single field
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SuccessResponse creates a standardized success response
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// PagedResponse creates a success response with pagination metadata
func PagedResponse(data interface{}, pagination Pagination) APIResponse {
	return APIResponse{
		Success:    true,
		Data:       data,
		Pagination: &pagination,
	}
}

// ErrorResponse creates a standardized error response
func ErrorResponse(message string, err interface{}) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Error:   err,
	}
}

// NewPagination creates pagination metadata. pages = ceil(total/limit);
// hasNext compares the window end against the total, so a page past the end
// simply reports hasNext=false with an empty data slice.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasNext: int64(page)*int64(limit) < total,
		HasPrev: page > 1,
	}
}
