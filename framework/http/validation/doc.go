// Package validation provides rule-string input validation.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "password":              "Abc123!",
//	    "password_confirmation": "Abc123!",
//	}, validation.Rules{
//	    "password": "password",
//	})
//
//	if v.Fails() {
//	    // v.Errors().Bag   → {"password": ["Password is too short"]}
//	    // v.Errors().Codes → {"password": "length"}
//	}
//
// Fields are validated in name order and each field stops at its first
// failing rule, so every field reports at most one message.
//
// # Available Rules
//
// String rules:
//   - required: field must be present and non-empty
//   - string: passes (all inputs are strings)
//   - min:n: minimum n UTF-8 characters
//   - max:n: maximum n UTF-8 characters
//   - regex:pattern: must match regexp pattern
//   - in:a,b,c: value must be in the comma-separated list
//   - not_in:a,b,c: value must NOT be in the comma-separated list
//
// Comparison rules:
//   - confirmed: field_confirmation must match field
//   - same:other: must equal data[other]
//   - different:other: must not equal data[other]
//
// Password rules:
//   - uppercase, lowercase, digit, symbol: at least one character of that class
//   - password: the full password check against field_confirmation; the
//     error code is "length", "match" or "chars"
//
// Control rules:
//   - nullable: always passes
//   - sometimes: skips all rules silently if field is absent
//
// # Error Bag
//
// For every other rule the code is the rule name:
//
//	{
//	  "errors": {"field": ["The selected field is invalid."]},
//	  "codes":  {"field": "in"}
//	}
package validation
