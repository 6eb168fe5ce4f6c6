package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("reader_email", validateReaderEmail)
}

var emailDomains = []string{".com", ".edu", ".org"}

// validateReaderEmail is a substring check, not an address parser: the
// address needs an '@' and one of the known domain endings anywhere in it.
// "x.com@host" passes, "bob@nodomain" does not.
func validateReaderEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	if !strings.Contains(email, "@") {
		return false
	}
	for _, d := range emailDomains {
		if strings.Contains(email, d) {
			return true
		}
	}
	return false
}

func ValidEmail(email string) bool {
	return validate.Var(email, "reader_email") == nil
}
