package game

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet has 32 symbols: A-Z minus I and O, digits 2-9. Codes get read
// aloud and typed from a phone screen, so visually confusable characters
// (0/O, 1/I) are excluded.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// codeLength is the length of a room code.
const codeLength = 6

// CodeGenerator produces candidate room codes. The registry retries through
// it when a candidate collides with a live room.
type CodeGenerator interface {
	Generate() (string, error)
}

type randomCodeGenerator struct{}

// NewCodeGenerator returns the default crypto/rand-backed generator.
func NewCodeGenerator() CodeGenerator {
	return randomCodeGenerator{}
}

func (randomCodeGenerator) Generate() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate room code: %w", err)
	}
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}
