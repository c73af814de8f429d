package utils

import "crypto/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns a random alphanumeric string for one-time codes.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	_, _ = rand.Read(token)
	for i := range token {
		token[i] = tokenCharset[int(token[i])%len(tokenCharset)]
	}
	return string(token)
}
