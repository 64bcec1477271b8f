package validators

import (
	"net"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmailFormatValid is a cheap syntactic check used on every booking
// submission.
func IsEmailFormatValid(email string) bool {
	return emailRe.MatchString(email)
}

// IsEmailDomainValid does an MX/A lookup; only used on account
// registration, never on the hot booking path.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
