package validation

import (
	"regexp"
	"slices"
	"strings"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsEmail reports whether s has the shape of an email address.
func IsEmail(s string) bool {
	return emailRegexp.MatchString(s)
}

var (
	gmailDomains   = []string{"gmail.com", "googlemail.com"}
	outlookDomains = []string{"hotmail.com", "live.com", "outlook.com", "msn.com", "hotmail.co.uk", "live.co.uk", "outlook.in"}
	yahooDomains   = []string{"yahoo.com", "yahoo.co.in", "yahoo.co.uk", "ymail.com", "rocketmail.com"}
	icloudDomains  = []string{"icloud.com", "me.com", "mac.com"}
)

// CanonicalEmail lowercases an address and folds provider-specific aliases so that
// two spellings of the same mailbox compare equal:
//   - Gmail ignores dots and "+tag" suffixes, and googlemail.com is gmail.com
//   - Outlook, Hotmail, Live and iCloud ignore "+tag" suffixes
//   - Yahoo ignores "-tag" suffixes
//
// Input without exactly one "@" is returned lowercased and otherwise untouched.
func CanonicalEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") || local == "" {
		return email
	}
	switch {
	case slices.Contains(gmailDomains, domain):
		local, _, _ = strings.Cut(local, "+")
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	case slices.Contains(outlookDomains, domain), slices.Contains(icloudDomains, domain):
		local, _, _ = strings.Cut(local, "+")
	case slices.Contains(yahooDomains, domain):
		if i := strings.LastIndex(local, "-"); i > 0 {
			local = local[:i]
		}
	}
	if local == "" {
		return email
	}
	return local + "@" + domain
}
