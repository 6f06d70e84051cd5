package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateRequestNumber creates a contact request number.
// Format: ANF-YYYYMMDD-XXXXXXXX ("Anfrage"). The suffix is 32 bits of
// crypto/rand, wide enough that the unique constraint on the column only
// trips on an astronomically unlucky day.
func GenerateRequestNumber() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}

	return fmt.Sprintf("ANF-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(hex.EncodeToString(suffix)))
}
