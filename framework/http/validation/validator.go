package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/km-arc/go-passform/password"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation errors.
// JSON output: {"errors": {"field": ["msg1"]}, "codes": {"field": "rule"}}
type Errors struct {
	Bag   map[string][]string `json:"errors"`
	Codes map[string]string   `json:"codes,omitempty"`

	order []string
}

func (e *Errors) add(field, code, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
		e.Codes = make(map[string]string)
	}
	if _, seen := e.Bag[field]; !seen {
		e.order = append(e.order, field)
		e.Codes[field] = code
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Code returns the code of the rule that failed first for a field.
func (e *Errors) Code(field string) string { return e.Codes[field] }

// Message returns the first error of the first failing field, or "".
func (e *Errors) Message() string {
	if len(e.order) == 0 {
		return ""
	}
	return e.First(e.order[0])
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"field": "required|in:password,confirmation"}
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
}

// Fails runs validation once and returns true if any rule fails.
func (v *Validator) Fails() bool {
	if !v.ran {
		v.validate()
		v.ran = true
	}
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]

		for _, rule := range strings.Split(v.rules[field], "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// Parse rule name and optional parameter: min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if !v.applyRule(field, value, name, param) {
				break // stop on first failure
			}
		}
	}
}

// applyRule returns true if the rule passes.
func (v *Validator) applyRule(field, value, rule, param string) bool {
	fail := func(format string, args ...any) bool {
		v.errors.add(field, rule, fmt.Sprintf(format, args...))
		return false
	}

	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			return fail("The %s field is required.", field)
		}

	case "string":
		// Every input is already a string.

	case "min":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return fail("The %s must be at least %d characters.", field, n)
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return fail("The %s may not be greater than %d characters.", field, n)
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return true
			}
		}
		return fail("The selected %s is invalid.", field)

	case "not_in":
		for _, d := range strings.Split(param, ",") {
			if strings.TrimSpace(d) == value {
				return fail("The selected %s is invalid.", field)
			}
		}

	case "confirmed":
		if v.data[field+"_confirmation"] != value {
			return fail("The %s confirmation does not match.", field)
		}

	case "same":
		if v.data[param] != value {
			return fail("The %s and %s must match.", field, param)
		}

	case "different":
		if v.data[param] == value {
			return fail("The %s and %s must be different.", field, param)
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			return fail("The %s format is invalid.", field)
		}

	case "nullable":
		// Always passes.

	case "sometimes":
		// Skip remaining rules if field is absent.
		if _, present := v.data[field]; !present {
			return false
		}

	// ── password rules ───────────────────────────────────────────────────────

	case "uppercase", "lowercase", "digit", "symbol":
		c := classOf(rule)
		if !c.Contains(value) {
			return fail("The %s must contain at least one %s character.", field, c)
		}

	case "password":
		res := password.Validate(password.Input{
			Password:     value,
			Confirmation: v.data[field+"_confirmation"],
		})
		if !res.OK() {
			v.errors.add(field, res.Code(), res.Message())
			return false
		}
	}

	return true
}

func classOf(rule string) password.Class {
	switch rule {
	case "uppercase":
		return password.Upper
	case "lowercase":
		return password.Lower
	case "digit":
		return password.Digit
	}
	return password.Special
}
