package invite

import (
	"fmt"
	"strings"
)

// NormalizeDestination prepares a destination for the SMS provider.
// Addresses containing "@" are carrier email-to-SMS gateways and pass
// through unchanged. Anything else must contain at least 10 digits and is
// formatted as a country-code-prefixed number.
func NormalizeDestination(destination string) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", fmt.Errorf("destination is required")
	}

	if strings.Contains(destination, "@") {
		return destination, nil
	}

	var digits strings.Builder
	for _, r := range destination {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	if len(d) < 10 {
		return "", fmt.Errorf("invalid phone number %q: need at least 10 digits", destination)
	}

	switch {
	case len(d) == 10:
		return "+1" + d, nil
	case len(d) == 11 && d[0] == '1':
		return "+" + d, nil
	default:
		return "+" + d, nil
	}
}

// ComposeMessage builds the invite SMS body with the join link.
func ComposeMessage(appBaseURL, inviteCode, householdName string) string {
	if householdName == "" {
		householdName = "a household"
	}
	return fmt.Sprintf("You've been invited to join %s on Household Planner! Tap to join: %s/join?code=%s",
		householdName, appBaseURL, inviteCode)
}
