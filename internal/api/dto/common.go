package dto

// ErrorResponse is the body of every failed request. Code is stable and
// meant for programs; Error is meant for people.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
