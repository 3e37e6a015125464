package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Callers are mostly domestic; FR covers the largest diaspora share.
var supportedRegions = []string{
	"DZ",
	"FR",
}

// NormalizePhone formats the number as E.164 when it parses for one of the
// supported regions, and returns "" otherwise.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}
