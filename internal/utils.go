package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateCardID creates a unique ID for a card based on timestamp and source word
// Format: epochMillis_md5(word)[:8]
func GenerateCardID(word string) string {
	epochMillis := time.Now().UnixMilli()

	hash := md5.Sum([]byte(word))
	hashStr := hex.EncodeToString(hash[:])[:8] // Use first 8 chars of MD5

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string. Letters of any
// script are kept, so "Vocabulaire français" becomes "Vocabulaire_français".
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
