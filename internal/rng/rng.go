// Package rng provides the cryptographically strong random source used for
// request nonces.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RandomStringSize is the number of alphanumeric characters appended to the
// timestamp of a V1 nonce.
const RandomStringSize = 8

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Service provides cryptographically strong random values.
// All reads from the entropy source are serialized.
type Service struct {
	entropy io.Reader
	mu      sync.Mutex
	now     func() time.Time
}

// New creates a new RNG service using crypto/rand
func New() *Service {
	return NewWithReader(rand.Reader)
}

// NewWithReader creates a service reading from the given entropy source.
// Intended for tests that need reproducible nonces.
func NewWithReader(r io.Reader) *Service {
	return &Service{
		entropy: r,
		now:     time.Now,
	}
}

// GenerateInt returns a random integer in range [0, max)
// Uses rejection sampling to eliminate modulo bias
func (s *Service) GenerateInt(max int64) (int64, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generateIntLocked(max)
}

func (s *Service) generateIntLocked(max int64) (int64, error) {
	threshold := uint64(1<<63-1) - (uint64(1<<63-1) % uint64(max))

	buf := make([]byte, 8)
	for {
		if _, err := io.ReadFull(s.entropy, buf); err != nil {
			return 0, fmt.Errorf("failed to generate random int: %w", err)
		}

		n := binary.BigEndian.Uint64(buf) >> 1

		if n < threshold {
			return int64(n % uint64(max)), nil
		}
	}
}

// Alphanumeric returns n characters drawn uniformly from [A-Za-z0-9].
func (s *Service) Alphanumeric(n int) (string, error) {
	if n < 0 {
		return "", errors.New("length cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		idx, err := s.generateIntLocked(int64(len(alphanumeric)))
		if err != nil {
			return "", err
		}
		out[i] = alphanumeric[idx]
	}
	return string(out), nil
}

// NonceV1 returns the legacy nonce: the current Unix time in milliseconds
// followed by RandomStringSize alphanumeric characters.
func (s *Service) NonceV1() (string, error) {
	suffix, err := s.Alphanumeric(RandomStringSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return strconv.FormatInt(s.now().UnixMilli(), 10) + suffix, nil
}

// NonceV2 returns a random version 4 UUID in its canonical string form.
func (s *Service) NonceV2() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := uuid.NewRandomFromReader(s.entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return id.String(), nil
}

