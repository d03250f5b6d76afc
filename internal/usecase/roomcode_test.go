package usecase

import (
	"strings"
	"testing"
)

func TestCodeGeneratorAlphabet(t *testing.T) {
	gen := newCodeGenerator(7)
	for i := 0; i < 100; i++ {
		code := gen.Next()
		if len(code) != roomCodeLength {
			t.Fatalf("code %q, want %d characters", code, roomCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(roomCodeAlphabet, c) {
				t.Fatalf("code %q uses %q, outside the alphabet", code, c)
			}
		}
	}
}

func TestCodeGeneratorAvoidsConfusables(t *testing.T) {
	for _, banned := range "0O1I" {
		if strings.ContainsRune(roomCodeAlphabet, banned) {
			t.Fatalf("alphabet contains confusable %q", banned)
		}
	}
}
