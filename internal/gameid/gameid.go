// Package gameid mints sortable game identifiers: a UUIDv7 written as 26
// characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// Generator mints IDs from a clock and a source of random bytes. Both are
// injectable so simulations can produce the same IDs for the same seed.
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// NewGenerator creates a generator. A nil clock uses the wall clock and a
// nil random source uses crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, random: random}
}

// Generate mints an ID on the wall clock
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate mints the next ID
func (g *Generator) Generate() string {
	return Encode(g.UUID())
}

// UUID returns the next UUIDv7 before encoding
func (g *Generator) UUID() uuid.UUID {
	var u uuid.UUID

	ms := g.clock.Now("gameid").UnixMilli()
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	if _, err := io.ReadFull(g.random, u[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant
	return u
}

// Encode writes the 128 bits big-endian in 26 base32 digits. The two pad
// bits lead, so the first digit is always 0-7 and IDs sort by time.
func Encode(u uuid.UUID) string {
	var hi, lo uint64
	for i := range 8 {
		hi = hi<<8 | uint64(u[i])
		lo = lo<<8 | uint64(u[8+i])
	}

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Decode reverses Encode
func Decode(id string) (uuid.UUID, error) {
	var u uuid.UUID
	if err := Validate(id); err != nil {
		return u, err
	}
	var hi, lo uint64
	for i := range Length {
		v := uint64(strings.IndexByte(alphabet, id[i]))
		hi = hi<<5 | lo>>59
		lo = lo<<5 | v
	}
	for i := 7; i >= 0; i-- {
		u[i] = byte(hi)
		u[8+i] = byte(lo)
		hi >>= 8
		lo >>= 8
	}
	return u, nil
}

// Validate checks that id is 26 base32 digits with a leading digit of 0-7
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i := range len(id) {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
