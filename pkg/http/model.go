package http

// APIResponse is the envelope every endpoint writes. The transport status
// is always 200; Status carries the effective result code so streaming
// clients and proxies never see a mixed-status body.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes a single failed request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"date"`
	Message string                 `json:"message,omitempty" example:"date is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
