package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"+919876543210", "9876543210", "+1 (415) 555-0100"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{"", "abc", "0123", "+"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), "expected %q to be invalid", phone)
	}
}
