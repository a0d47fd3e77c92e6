// Package validation turns raw form payloads into typed submission records.
//
// Each field declares an ordered list of rules. The first failing rule stops that field,
// but every field is checked so one response reports all problems at once.
package validation

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"codedcode/internal/domain"
)

// Rule is one step of a field's rule chain. A rule either passes, possibly replacing the
// value (trimming, normalizing), or fails with its message.
type Rule struct {
	apply   func(v any) (any, bool)
	message string
}

// Field binds a payload key to its rule chain.
// Optional fields are skipped when absent, null or blank.
type Field struct {
	Name     string
	Optional bool
	Rules    []Rule
}

// Schema is the ordered list of fields of one submission type.
type Schema []Field

// Values holds the cleaned values of the fields that passed validation.
type Values map[string]any

// Validate runs every field and returns the cleaned values, or a *domain.ValidationError
// listing each failing field in schema order.
func (s Schema) Validate(input map[string]any) (Values, error) {
	out := make(Values, len(s))
	var fieldErrs []domain.FieldError
	for _, f := range s {
		raw, present := input[f.Name]
		if f.Optional && blank(raw, present) {
			continue
		}
		v, msg, ok := f.run(raw)
		if !ok {
			fieldErrs = append(fieldErrs, domain.FieldError{Field: f.Name, Message: msg})
			continue
		}
		out[f.Name] = v
	}
	if len(fieldErrs) > 0 {
		return nil, &domain.ValidationError{Fields: fieldErrs}
	}
	return out, nil
}

func (f Field) run(v any) (any, string, bool) {
	for _, r := range f.Rules {
		next, ok := r.apply(v)
		if !ok {
			return nil, r.message, false
		}
		v = next
	}
	return v, "", true
}

func blank(v any, present bool) bool {
	if !present || v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Trim converts scalars to their string form and strips surrounding whitespace.
// Objects and arrays become the empty string so the following length rule rejects them.
func Trim() Rule {
	return Rule{apply: func(v any) (any, bool) {
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t), true
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(t), true
		default:
			return "", true
		}
	}}
}

// Length requires a string of min..max characters.
func Length(min, max int, message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		s, ok := v.(string)
		if !ok {
			return v, false
		}
		n := utf8.RuneCountInString(s)
		return v, n >= min && n <= max
	}}
}

// MaxLength requires a string of at most max characters.
func MaxLength(max int, message string) Rule {
	return Length(0, max, message)
}

// Matches requires the string to match re.
func Matches(re *regexp.Regexp, message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		s, ok := v.(string)
		return v, ok && re.MatchString(s)
	}}
}

// OneOf requires the string to be one of allowed.
func OneOf(allowed []string, message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		s, ok := v.(string)
		return v, ok && slices.Contains(allowed, s)
	}}
}

// Email requires an address shape.
func Email(message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		s, ok := v.(string)
		return v, ok && IsEmail(s)
	}}
}

// NormalizeEmail rewrites a valid address to its canonical form. It never fails.
func NormalizeEmail() Rule {
	return Rule{apply: func(v any) (any, bool) {
		s, _ := v.(string)
		return CanonicalEmail(s), true
	}}
}

var phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// MobilePhone requires an international mobile number: an optional +, then 10 to 15 digits.
// Spaces, dots, hyphens and parentheses are ignored for matching; the trimmed input is kept.
func MobilePhone(message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		s, ok := v.(string)
		return v, ok && phoneRegexp.MatchString(phoneSeparators.Replace(s))
	}}
}

// Boolean requires a JSON boolean.
func Boolean(message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		_, ok := v.(bool)
		return v, ok
	}}
}

// True requires the JSON literal true. Truthy strings and numbers fail.
func True(message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		b, ok := v.(bool)
		return v, ok && b
	}}
}

// List requires a JSON array of strings and yields it as []string.
func List(message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		switch t := v.(type) {
		case []string:
			return t, true
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				s, ok := e.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		default:
			return nil, false
		}
	}}
}

// Each requires every element of a []string to be one of allowed.
func Each(allowed []string, message string) Rule {
	return Rule{message: message, apply: func(v any) (any, bool) {
		list, ok := v.([]string)
		if !ok {
			return v, false
		}
		for _, s := range list {
			if !slices.Contains(allowed, s) {
				return v, false
			}
		}
		return v, true
	}}
}

// String returns the cleaned string value of name, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// OptionalString returns nil when name was skipped.
func (v Values) OptionalString(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) OptionalBool(name string) *bool {
	b, ok := v[name].(bool)
	if !ok {
		return nil
	}
	return &b
}

func (v Values) Strings(name string) []string {
	s, _ := v[name].([]string)
	return s
}

func optionalEnum[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	t := T(*s)
	return &t
}

func toEnums[T ~string](values []string) []T {
	out := make([]T, len(values))
	for i, s := range values {
		out[i] = T(s)
	}
	return out
}
