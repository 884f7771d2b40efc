package helpers

import (
	"math/rand"
)

func GenerateNumericString(length int) string {
	allowedChars := "0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = allowedChars[rand.Intn(len(allowedChars))]
	}
	return string(b)
}
