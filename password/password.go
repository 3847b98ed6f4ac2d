package password

import (
	"fmt"
	"regexp"
	"unicode/utf16"
)

// MinLength is the shortest password Validate accepts, as counted by Length.
const MinLength = 6

// SpecialCharacters is the fixed set a password draws its special character from.
const SpecialCharacters = `!@#$%^&*()_-+={[}]|:;"'<,>.`

// ── Kinds ────────────────────────────────────────────────────────────────────

// Kind says which rule, if any, failed first.
type Kind uint8

const (
	Success Kind = iota
	TooShort
	Mismatch
	MissingCharacterClass
)

var kindNames = [...]string{
	Success:               "success",
	TooShort:              "too_short",
	Mismatch:              "mismatch",
	MissingCharacterClass: "missing_character_class",
}

var kindCodes = [...]string{
	Success:               "empty",
	TooShort:              "length",
	Mismatch:              "match",
	MissingCharacterClass: "chars",
}

var kindMessages = [...]string{
	Success:               "",
	TooShort:              "Password is too short",
	Mismatch:              "Password and re-entered password do not match",
	MissingCharacterClass: "Characters don't satisfy one of the conditions",
}

func (k Kind) valid() bool { return int(k) < len(kindNames) }

// String returns the snake_case name, e.g. "too_short".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Code returns the short error code: "empty", "length", "match" or "chars".
func (k Kind) Code() string {
	if !k.valid() {
		return ""
	}
	return kindCodes[k]
}

// Message returns the default user-facing message. Success has none.
func (k Kind) Message() string {
	if !k.valid() {
		return ""
	}
	return kindMessages[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("password: unknown kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("password: unknown kind %q", b)
}

// ParseKind maps a short code ("length", "match", ...) back to its Kind.
func ParseKind(code string) (Kind, bool) {
	for i, c := range kindCodes {
		if c == code {
			return Kind(i), true
		}
	}
	return Success, false
}

// ── Validation ───────────────────────────────────────────────────────────────

// Input is a candidate password and its re-entry.
type Input struct {
	Password     string
	Confirmation string
}

// Result is the outcome of Validate.
type Result struct {
	Kind Kind `json:"kind"`
}

// OK reports whether every rule held.
func (r Result) OK() bool { return r.Kind == Success }

func (r Result) Code() string    { return r.Kind.Code() }
func (r Result) Message() string { return r.Kind.Message() }

// Validate checks length, then equality, then character classes, and
// reports the first rule that fails.
func Validate(in Input) Result {
	if Length(in.Password) < MinLength {
		return Result{Kind: TooShort}
	}
	if in.Password != in.Confirmation {
		return Result{Kind: Mismatch}
	}
	if len(MissingClasses(in.Password)) > 0 {
		return Result{Kind: MissingCharacterClass}
	}
	return Result{Kind: Success}
}

// Length counts s in UTF-16 code units, the unit a browser text input
// reports. A character outside the Basic Multilingual Plane counts as two.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// ── Character classes ────────────────────────────────────────────────────────

// Class is one of the four character classes a password must contain.
type Class uint8

const (
	Upper Class = iota
	Lower
	Digit
	Special
)

// Classes lists every class in check order.
var Classes = []Class{Upper, Lower, Digit, Special}

var classPatterns = [...]*regexp.Regexp{
	Upper:   regexp.MustCompile(`[A-Z]`),
	Lower:   regexp.MustCompile(`[a-z]`),
	Digit:   regexp.MustCompile(`[0-9]`),
	Special: regexp.MustCompile(`[!@#$%^&*()_\-+={\[}\]|:;"'<,>.]`),
}

var classNames = [...]string{
	Upper:   "uppercase",
	Lower:   "lowercase",
	Digit:   "digit",
	Special: "special",
}

func (c Class) String() string {
	if int(c) >= len(classNames) {
		return fmt.Sprintf("class(%d)", uint8(c))
	}
	return classNames[c]
}

func (c Class) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseClass maps "uppercase", "lowercase", "digit" or "special" to its Class.
func ParseClass(name string) (Class, bool) {
	for i, n := range classNames {
		if n == name {
			return Class(i), true
		}
	}
	return 0, false
}

// Contains reports whether s has at least one character of class c.
func (c Class) Contains(s string) bool {
	if int(c) >= len(classPatterns) {
		return false
	}
	return classPatterns[c].MatchString(s)
}

// MissingClasses returns the classes absent from s, in check order.
// It returns nil when s satisfies all four.
func MissingClasses(s string) []Class {
	var missing []Class
	for _, c := range Classes {
		if !c.Contains(s) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Requirements returns the rule list shown next to the form.
func Requirements() []string {
	return []string{
		fmt.Sprintf("%d characters or more in length", MinLength),
		"include at least one uppercase letter",
		"include at least one lowercase letter",
		"include at least one number",
		"include at least one special character " + SpecialCharacters,
	}
}
