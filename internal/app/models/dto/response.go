package dto

// APIResponse is the standard envelope for all API responses
type APIResponse struct {
	Data  interface{}    `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// PaginationInfo contains pagination metadata for list responses
type PaginationInfo struct {
	CurrentPage int `json:"currentPage" example:"1"`
	PageSize    int `json:"pageSize" example:"20"`
	TotalItems  int `json:"totalItems" example:"42"`
	TotalPages  int `json:"totalPages" example:"3"`
}

// PaginatedData wraps a list payload together with its pagination info
type PaginatedData struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewSuccessResponse creates a success envelope around the given payload
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}

// NewPaginatedResponse creates a success envelope around a paginated list
func NewPaginatedResponse(items interface{}, pagination PaginationInfo) APIResponse {
	return APIResponse{Data: PaginatedData{Items: items, Pagination: pagination}}
}

// NewErrorResponse creates an error envelope from an error detail
func NewErrorResponse(detail ErrorDetail) APIResponse {
	return APIResponse{Error: &ErrorResponse{Details: []ErrorDetail{detail}}}
}
