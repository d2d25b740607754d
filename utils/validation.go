// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	// International format: optional + prefix followed by 2-15 digits,
	// no leading zero.
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phoneCleaner.Replace(phone))
}
