package dto

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type UpdatedResponse struct {
	Updated bool `json:"updated"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
