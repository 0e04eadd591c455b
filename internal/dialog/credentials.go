package dialog

import (
	"regexp"
	"strings"
)

// Credentials are the three fields collected during registration.
type Credentials struct {
	FullName    string
	PhoneNumber string
	GroupName   string
}

// Full name without commas, phone as "+7 XXX XXX-XX-XX", group as
// three capital Cyrillic letters, dash, three digits. A single space
// after each comma is optional.
var credentialsPattern = regexp.MustCompile(
	`^(?P<leaderFullName>[^,]+),\s?(?P<leaderPhoneNumber>\+7\s\d{3}\s\d{3}-\d{2}-\d{2}),\s?(?P<groupName>[А-ЯЁ]{3}-\d{3})$`)

// ParseCredentials validates one registration line and extracts its
// fields. On mismatch it reports false with no partial extraction.
func ParseCredentials(line string) (Credentials, bool) {
	match := credentialsPattern.FindStringSubmatch(line)
	if match == nil {
		return Credentials{}, false
	}

	get := func(name string) string {
		return strings.TrimSpace(match[credentialsPattern.SubexpIndex(name)])
	}
	return Credentials{
		FullName:    get("leaderFullName"),
		PhoneNumber: get("leaderPhoneNumber"),
		GroupName:   get("groupName"),
	}, true
}
