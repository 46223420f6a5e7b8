package serverutils

// Response is the uniform JSON envelope for all API responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Hint    string      `json:"hint,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, hint string) Response {
	return Response{
		Success: false,
		Message: message,
		Hint:    hint,
	}
}
