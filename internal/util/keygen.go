package util

import (
	"crypto/rand"
)

const (
	AccessKeyLength  = 5
	accessKeyCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateAccessKey returns a 5-character uppercase code for private quizzes.
// The charset skips easily-confused glyphs (I/1, O/0).
func GenerateAccessKey() (string, error) {
	buf := make([]byte, AccessKeyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = accessKeyCharset[int(b)%len(accessKeyCharset)]
	}
	return string(buf), nil
}
