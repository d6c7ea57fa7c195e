package correlate

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._]*@[a-z0-9][a-z0-9.-]*\.[a-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

var emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "aol.com", "msn.com"}

// ValidEmail reports whether a candidate email passes the format check
// applied before a contact field is accepted into a record.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func sanitizeNamePart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Email formats an address deterministically from the name fields and
// validates it before returning.
func Email(rng *rand.Rand, firstName, lastName string) (string, error) {
	first := sanitizeNamePart(firstName)
	last := sanitizeNamePart(lastName)
	domain := Choice(rng, emailDomains)

	var local string
	switch rng.Intn(3) {
	case 0:
		local = first + "." + last
	case 1:
		local = first + "_" + last + fmt.Sprintf("%d", rng.Intn(100))
	default:
		local = first[:1] + last + fmt.Sprintf("%d", rng.Intn(1000))
	}

	addr := local + "@" + domain
	if !ValidEmail(addr) {
		return "", fmt.Errorf("generated email %q failed format validation", addr)
	}
	return addr, nil
}

// Phone draws a US-formatted phone number and validates it.
func Phone(rng *rand.Rand) (string, error) {
	area := 200 + rng.Intn(800)
	exchange := 200 + rng.Intn(800)
	line := rng.Intn(10000)
	s := fmt.Sprintf("(%03d) %03d-%04d", area, exchange, line)
	if !ValidPhone(s) {
		return "", fmt.Errorf("generated phone %q failed format validation", s)
	}
	return s, nil
}

// Username builds a login handle from the name fields.
func Username(rng *rand.Rand, firstName, lastName string) string {
	first := sanitizeNamePart(firstName)
	last := sanitizeNamePart(lastName)
	switch rng.Intn(3) {
	case 0:
		return first + last[:min(4, len(last))] + fmt.Sprintf("%d", rng.Intn(100))
	case 1:
		return first[:1] + last + fmt.Sprintf("%d", rng.Intn(1000))
	default:
		return last + "." + first
	}
}

// Website derives a company website from its name.
func Website(companyName string) string {
	return "https://www." + EmailDomainFor(companyName)
}

// EmailDomainFor derives a company email domain from its name.
func EmailDomainFor(companyName string) string {
	name := companyName
	for _, suffix := range legalSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return sanitizeNamePart(name) + ".com"
}
