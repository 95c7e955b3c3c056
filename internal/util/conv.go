package util

import (
	"errors"
	"strconv"
)

// ParseID parses a numeric path segment; 0 is never a valid id.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
