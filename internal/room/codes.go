package room

import (
	"math/rand"
	"strings"
)

const (
	// DefaultCodeAlphabet matches the codes players type in by hand:
	// uppercase letters and digits, six characters.
	DefaultCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeLength   = 6

	// maxCodeAttempts bounds collision resampling so a pathological
	// configuration (tiny alphabet, many rooms) fails loudly instead of
	// spinning forever.
	maxCodeAttempts = 100
)

// CodeGenerator produces human-typable room codes, resampling on collision
// against the set of currently active codes.
type CodeGenerator struct {
	rand *rand.Rand
}

func NewCodeGenerator(src rand.Source) *CodeGenerator {
	return &CodeGenerator{rand: rand.New(src)}
}

// Generate draws uniform random codes until one misses the taken set.
// alphabet and length fall back to the defaults when zero.
func (g *CodeGenerator) Generate(alphabet string, length int, taken func(string) bool) (string, error) {
	if alphabet == "" {
		alphabet = DefaultCodeAlphabet
	}
	if length <= 0 {
		length = DefaultCodeLength
	}

	var b strings.Builder
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		b.Reset()
		for i := 0; i < length; i++ {
			b.WriteByte(alphabet[g.rand.Intn(len(alphabet))])
		}
		code := b.String()
		if !taken(code) {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
