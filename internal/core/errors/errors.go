package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidQueryError = "invalid_query"
	HttpUserNotFoundError = "user_not_found"
	HttpUpstreamError     = "upstream_error"
	HttpPageLimitError    = "page_limit_reached"
	HttpUpstreamTimeout   = "upstream_timeout"
	HttpRequestCancelled  = "request_cancelled"
)

// ErrorResponse is the error response body for stats API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
