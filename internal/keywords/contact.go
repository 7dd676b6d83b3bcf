package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\(?\d[\d \t().\-]{7,}\d`)
)

// ContactInfo holds the contact details found in a résumé.
// A field that could not be found is empty.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ExtractBasicInfo pulls the first email address and phone number out of text.
func ExtractBasicInfo(text string) ContactInfo {
	return ContactInfo{
		Email: emailRe.FindString(text),
		Phone: findPhone(text),
	}
}

// findPhone returns the first candidate with a plausible number of digits.
// Date ranges such as "2019 - 2021" match the loose pattern but carry too few.
func findPhone(text string) string {
	for _, candidate := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= minPhoneDigits && digits <= maxPhoneDigits {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}
