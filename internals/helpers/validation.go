package helper

import (
	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

// ValidationErrorMap mengubah error validator.v10 menjadi map field → pesan
// untuk JsonValidationError.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"Invalid input"}
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Tag())
	}
	return out
}
