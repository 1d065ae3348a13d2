// Package otp generates the short-lived numeric codes used by the email
// verification flows.
//
// Codes carry no structure: a code is a fixed-length string of decimal digits
// paired with an expiry computed from the injected clock. Uniqueness across
// calls is not guaranteed; single-use semantics live in the store.
package otp

import (
	"crypto/rand"
	"time"
)

// Generator produces verification codes and their expiry timestamps.
type Generator interface {
	// Code returns a fresh fixed-length numeric code.
	Code() (string, error)
	// Expiry returns the moment a code issued now stops being valid.
	Expiry() time.Time
}

const (
	// DefaultLength is the code length used when none is configured.
	DefaultLength = 6
	// DefaultTTL is the validity window used when none is configured.
	DefaultTTL = 10 * time.Minute
)

type clocker interface {
	Now() time.Time
}

// Numeric is a Generator producing decimal-digit codes from crypto/rand.
type Numeric struct {
	length int
	ttl    time.Duration
	clock  clocker
}

// NewNumeric constructs a Numeric generator.
//
// Non-positive length or ttl fall back to DefaultLength and DefaultTTL.
func NewNumeric(length int, ttl time.Duration, clock clocker) *Numeric {
	if length <= 0 {
		length = DefaultLength
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Numeric{
		length: length,
		ttl:    ttl,
		clock:  clock,
	}
}

// Code returns a fresh code of the configured length.
func (n *Numeric) Code() (string, error) {
	const digits = "0123456789"

	buf := make([]byte, n.length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	for i, b := range buf {
		buf[i] = digits[int(b)%len(digits)]
	}

	return string(buf), nil
}

// Expiry returns the clock's current time plus the configured TTL.
func (n *Numeric) Expiry() time.Time {
	return n.clock.Now().Add(n.ttl)
}
