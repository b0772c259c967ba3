// Package id generates entity identifiers.
package id

import (
	"strconv"

	"github.com/google/uuid"
)

// Generator produces new identifiers. Tests swap in a deterministic one.
type Generator func() string

// New returns a random UUIDv4 string.
func New() string {
	return uuid.NewString()
}

// Sequence returns a Generator yielding prefix-1, prefix-2, and so on.
func Sequence(prefix string) Generator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
