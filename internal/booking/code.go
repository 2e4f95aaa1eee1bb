package booking

import (
	"crypto/rand"
	"fmt"
)

// codeAlphabet excludes ambiguous characters (0/O, 1/I/L) so codes survive
// being read over the phone at a venue counter.
const codeAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

const codeLength = 8

// NewBookingCode generates a human-readable booking code such as BK-7MQ2XKWN.
// Collision safety comes from the unique index on booking_code; callers retry
// with a fresh code on the rare duplicate. The code carries no information
// from any other identifier field.
func NewBookingCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate booking code failed: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return "BK-" + string(buf), nil
}
