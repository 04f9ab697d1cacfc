package mailer

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// bracketPattern extracts the address from "Display Name<address>".
var bracketPattern = regexp.MustCompile(`<(.+)>`)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateAddress reports whether spec is a syntactically valid address,
// either bare or in "Display Name<address>" form.
func ValidateAddress(spec string) bool {
	addr := spec
	if m := bracketPattern.FindStringSubmatch(spec); m != nil {
		addr = m[1]
	}
	return validate.Var(addr, "required,email") == nil
}

// firstInvalid returns the index of the first invalid address, or -1.
func firstInvalid(specs []string) int {
	for i, spec := range specs {
		if !ValidateAddress(spec) {
			return i
		}
	}
	return -1
}
