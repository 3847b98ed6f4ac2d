// Package password validates a new password and its re-entry against a
// fixed rule set.
//
// # Usage
//
//	res := password.Validate(password.Input{
//	    Password:     "Abc123!",
//	    Confirmation: "Abc123!",
//	})
//
//	if !res.OK() {
//	    fmt.Println(res.Message()) // "Password is too short", ...
//	}
//
// # Rules
//
// Rules are checked in a fixed order and only the first failure is reported:
//
//	length      at least 6 characters                    → TooShort
//	match       password equals confirmation exactly     → Mismatch
//	characters  one uppercase, lowercase, digit, special → MissingCharacterClass
//
// Special characters come from the fixed set !@#$%^&*()_-+={[}]|:;"'<,>.
//
// A Result whose Kind is Success means every rule holds.
//
// # Codes
//
// Each Kind has a short code used by form state and JSON error bags:
//
//	Success               → "empty"
//	TooShort              → "length"
//	Mismatch              → "match"
//	MissingCharacterClass → "chars"
package password
