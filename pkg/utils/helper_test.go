package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
	assert.Equal(t, 25, ParseInt("25", 10))
}

func TestGenerateRequestNumber(t *testing.T) {
	number := GenerateRequestNumber()

	pattern := regexp.MustCompile(`^ANF-\d{8}-[0-9A-F]{8}$`)
	assert.Regexp(t, pattern, number)
	assert.Contains(t, number, time.Now().Format("20060102"))
}

func TestGenerateRequestNumber_NoCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		number := GenerateRequestNumber()
		assert.False(t, seen[number], "duplicate request number %s", number)
		seen[number] = true
	}
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(1, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(50, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(0, 20))
	assert.Equal(t, 0, CalculateOffset(1, 20))
	assert.Equal(t, 20, CalculateOffset(2, 20))
	assert.Equal(t, 40, CalculateOffset(3, 20))
}
