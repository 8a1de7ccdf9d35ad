package rng

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestExhaustedSource(t *testing.T) {
	short := NewWithReader(bytes.NewReader([]byte{1, 2}))
	if _, err := short.GenerateInt(10); err == nil {
		t.Error("Expected GenerateInt error from exhausted entropy source")
	}
	if _, err := short.NonceV1(); err == nil {
		t.Error("Expected NonceV1 error from exhausted entropy source")
	}
	if _, err := short.NonceV2(); err == nil {
		t.Error("Expected NonceV2 error from exhausted entropy source")
	}
}

func TestGenerateInt(t *testing.T) {
	s := New()

	t.Run("GeneratesWithinRange", func(t *testing.T) {
		for _, max := range []int64{2, 10, 62, 1000} {
			for i := 0; i < 500; i++ {
				n, err := s.GenerateInt(max)
				if err != nil {
					t.Fatalf("Failed to generate int: %v", err)
				}
				if n < 0 || n >= max {
					t.Errorf("Generated value %d out of range [0, %d)", n, max)
				}
			}
		}
	})

	t.Run("RejectsZeroOrNegative", func(t *testing.T) {
		if _, err := s.GenerateInt(0); err == nil {
			t.Error("Expected error for max=0")
		}
		if _, err := s.GenerateInt(-1); err == nil {
			t.Error("Expected error for max=-1")
		}
	})
}

func TestAlphanumeric(t *testing.T) {
	s := New()
	pattern := regexp.MustCompile(`^[A-Za-z0-9]*$`)

	for _, n := range []int{0, 1, 8, 64} {
		out, err := s.Alphanumeric(n)
		if err != nil {
			t.Fatalf("Failed to generate string: %v", err)
		}
		if len(out) != n {
			t.Errorf("Expected length %d, got %d", n, len(out))
		}
		if !pattern.MatchString(out) {
			t.Errorf("Unexpected characters in %q", out)
		}
	}

	if _, err := s.Alphanumeric(-1); err == nil {
		t.Error("Expected error for negative length")
	}
}

func TestNonceV1(t *testing.T) {
	s := New()
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }

	nonce, err := s.NonceV1()
	if err != nil {
		t.Fatalf("Failed to generate nonce: %v", err)
	}

	if !strings.HasPrefix(nonce, "1700000000123") {
		t.Errorf("Expected timestamp prefix, got %s", nonce)
	}
	if len(nonce) != len("1700000000123")+RandomStringSize {
		t.Errorf("Expected %d characters, got %d", len("1700000000123")+RandomStringSize, len(nonce))
	}
	if !regexp.MustCompile(`^[0-9]+[A-Za-z0-9]{8}$`).MatchString(nonce) {
		t.Errorf("Nonce has unexpected shape: %s", nonce)
	}

	t.Run("SuccessiveCallsDiffer", func(t *testing.T) {
		other, err := s.NonceV1()
		if err != nil {
			t.Fatalf("Failed to generate nonce: %v", err)
		}
		if other == nonce {
			t.Error("Two nonces with the same timestamp should still differ")
		}
	})
}

func TestNonceV2(t *testing.T) {
	s := New()
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		nonce, err := s.NonceV2()
		if err != nil {
			t.Fatalf("Failed to generate nonce: %v", err)
		}
		if !uuidPattern.MatchString(nonce) {
			t.Errorf("Expected version 4 UUID, got %s", nonce)
		}
		if seen[nonce] {
			t.Errorf("Duplicate nonce %s", nonce)
		}
		seen[nonce] = true
	}

	t.Run("Deterministic", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0xab}, 16)
		a, err := NewWithReader(bytes.NewReader(seed)).NonceV2()
		if err != nil {
			t.Fatalf("Failed to generate nonce: %v", err)
		}
		b, err := NewWithReader(bytes.NewReader(seed)).NonceV2()
		if err != nil {
			t.Fatalf("Failed to generate nonce: %v", err)
		}
		if a != b {
			t.Errorf("Expected identical nonces from identical entropy, got %s and %s", a, b)
		}
	})
}

func TestConcurrentNonces(t *testing.T) {
	s := New()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := s.NonceV1(); err != nil {
					t.Errorf("NonceV1 failed: %v", err)
				}
				n, err := s.NonceV2()
				if err != nil {
					t.Errorf("NonceV2 failed: %v", err)
					continue
				}
				mu.Lock()
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 8*50 {
		t.Errorf("Expected %d distinct v2 nonces, got %d", 8*50, len(seen))
	}
}
