package serverutils

import "net/http"

// AppError is a structured error carrying an HTTP status and an optional
// human-readable hint for fixing the problem.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *AppError) Error() string {
	if e.Hint != "" {
		return e.Message + "\n" + e.Hint
	}
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewConfigurationError signals missing or invalid setup (e.g. API keys).
func NewConfigurationError(message, hint string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Hint: hint}
}

// NewRetrievalError signals a hard failure in the embedding or vector lookup.
func NewRetrievalError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message}
}
