package errors

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorInfo is the JSON body used for structured (non plain-text) error responses.
type ErrorInfo struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// ErrorResponse wraps ErrorInfo with the request id for correlation.
type ErrorResponse struct {
	Error     *ErrorInfo `json:"error"`
	RequestID string     `json:"requestId,omitempty"`
}
