package validation

import (
	"strings"

	"codedcode/internal/domain"
)

// ContactStatus parses an admin status change for a contact submission.
func ContactStatus(raw string) (domain.ContactStatus, error) {
	s := domain.ContactStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", invalidStatus(domain.Strings(domain.ContactStatuses))
	}
	return s, nil
}

// MembershipStatus parses an admin status change for a membership application.
func MembershipStatus(raw string) (domain.MembershipStatus, error) {
	s := domain.MembershipStatus(strings.TrimSpace(raw))
	if !s.Valid() {
		return "", invalidStatus(domain.Strings(domain.MembershipStatuses))
	}
	return s, nil
}

func invalidStatus(allowed []string) error {
	return domain.NewValidationError("status", "Invalid status. Must be: "+joinOr(allowed))
}

// joinOr renders "a, b, or c".
func joinOr(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	case 2:
		return values[0] + " or " + values[1]
	}
	return strings.Join(values[:len(values)-1], ", ") + ", or " + values[len(values)-1]
}

// Filter rejects list filters outside their enum. Empty means "any" and passes.
func Filter[T interface {
	~string
	Valid() bool
}](field string, raw string) (T, error) {
	v := T(strings.TrimSpace(raw))
	if v == "" || v.Valid() {
		return v, nil
	}
	var zero T
	return zero, domain.NewValidationError(field, "Invalid "+field+" filter")
}
