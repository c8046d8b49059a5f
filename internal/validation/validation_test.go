package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("  user@example.com  "))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("spaces in@example.com"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword(strings.Repeat("p", 128)))

	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)))
}

func TestValidateFullName(t *testing.T) {
	assert.NoError(t, ValidateFullName("Alice Jones"))

	assert.Error(t, ValidateFullName(""))
	assert.Error(t, ValidateFullName("   "))
	assert.Error(t, ValidateFullName(strings.Repeat("n", 101)))
}

func TestValidatePostInput(t *testing.T) {
	assert.NoError(t, ValidatePostInput("Title", "Content", "Technology"))

	assert.Error(t, ValidatePostInput("", "Content", "Technology"))
	assert.Error(t, ValidatePostInput("  ", "Content", "Technology"))
	assert.Error(t, ValidatePostInput("Title", "", "Technology"))
	assert.Error(t, ValidatePostInput("Title", "Content", ""))
	assert.Error(t, ValidatePostInput(strings.Repeat("t", 301), "Content", "Technology"))
	assert.Error(t, ValidatePostInput("Title", strings.Repeat("c", 50001), "Technology"))
}
