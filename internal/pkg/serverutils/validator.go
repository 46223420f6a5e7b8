package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest validates a request DTO against its struct tags and
// returns a 400 AppError describing the failing fields.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewBadRequestError("invalid request payload")
		}
		messages := make([]string, len(validationErrors))
		for i, fe := range validationErrors {
			messages[i] = fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
		}
		return NewBadRequestError(strings.Join(messages, "; "))
	}
	return nil
}
