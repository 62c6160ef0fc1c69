package http

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error   string            `json:"error" example:"Invalid request"`
	Message string            `json:"message,omitempty" example:"weight is required"`
	Details []ValidationError `json:"details,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"weight"`
	Message string                 `json:"message,omitempty" example:"weight is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
