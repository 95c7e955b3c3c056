package util

import (
	"strings"
	"testing"
)

func TestGenerateAccessKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		key, err := GenerateAccessKey()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(key) != AccessKeyLength {
			t.Fatalf("key %q has wrong length", key)
		}
		for _, r := range key {
			if !strings.ContainsRune(accessKeyCharset, r) {
				t.Fatalf("key %q contains %q outside the charset", key, r)
			}
		}
		seen[key] = true
	}
	// 200 draws from a 33M space should not collide down to one value.
	if len(seen) < 2 {
		t.Fatal("generator returned the same key repeatedly")
	}
}
