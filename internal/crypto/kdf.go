// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/MKhiriev/pass-guard/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinPBKDF2Iterations is the lowest accepted PBKDF2 work factor.
	MinPBKDF2Iterations = 10_000

	// DefaultPBKDF2Iterations follows the OWASP recommendation for
	// PBKDF2-HMAC-SHA256.
	DefaultPBKDF2Iterations = 600_000

	// MaxPBKDF2Iterations bounds params received from a server.
	MaxPBKDF2Iterations = 10_000_000

	// MinArgon2MemoryKiB is the OWASP minimum Argon2id memory (19 MiB).
	MinArgon2MemoryKiB = 19 * 1024

	// MinArgon2Cost is the lowest accepted passes × memory product, the
	// OWASP m=19 MiB, t=2 profile. More memory may trade for fewer passes.
	MinArgon2Cost = 2 * MinArgon2MemoryKiB

	// Upper Argon2id bounds for params received from a server.
	MaxArgon2MemoryKiB = 1024 * 1024
	MaxArgon2Time      = 16
	MaxArgon2Threads   = 64
)

// DefaultKDFParams returns the Argon2id parameters recommended by OWASP
// (2024): 1 pass, 64 MiB, 4 lanes.
func DefaultKDFParams() models.KDFParams {
	return models.KDFParams{
		Algorithm: models.KDFArgon2id,
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

// MinArgon2Params returns the cheapest Argon2id profile [NewKeyDeriver]
// accepts.
func MinArgon2Params() models.KDFParams {
	return models.KDFParams{
		Algorithm: models.KDFArgon2id,
		Time:      2,
		MemoryKiB: MinArgon2MemoryKiB,
		Threads:   1,
	}
}

// NewKeyDeriver builds a [KeyDeriver] for params. Unknown algorithms yield
// [ErrUnsupportedKDF]; work factors below the accepted floor or above the
// accepted ceiling yield [ErrInvalidInput].
func NewKeyDeriver(params models.KDFParams) (KeyDeriver, error) {
	switch params.Algorithm {
	case models.KDFArgon2id:
		if err := checkArgon2Params(params); err != nil {
			return nil, err
		}
		return &argon2Deriver{
			time:    params.Time,
			memory:  params.MemoryKiB,
			threads: params.Threads,
		}, nil
	case models.KDFPBKDF2SHA256:
		if params.Time < MinPBKDF2Iterations || params.Time > MaxPBKDF2Iterations {
			return nil, fmt.Errorf("%w: pbkdf2 iterations %d outside [%d, %d]",
				ErrInvalidInput, params.Time, MinPBKDF2Iterations, MaxPBKDF2Iterations)
		}
		return &pbkdf2Deriver{iterations: params.Time}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKDF, params.Algorithm)
	}
}

func checkArgon2Params(p models.KDFParams) error {
	switch {
	case p.Time < 1 || p.Time > MaxArgon2Time,
		p.Threads < 1 || p.Threads > MaxArgon2Threads,
		p.MemoryKiB < MinArgon2MemoryKiB || p.MemoryKiB > MaxArgon2MemoryKiB,
		uint64(p.Time)*uint64(p.MemoryKiB) < MinArgon2Cost:
		return fmt.Errorf("%w: argon2id params t=%d m=%d p=%d",
			ErrInvalidInput, p.Time, p.MemoryKiB, p.Threads)
	}
	return nil
}

// argon2Deriver is the memory-hard default.
type argon2Deriver struct {
	time    uint32
	memory  uint32
	threads uint8
}

// Derive implements [KeyDeriver] with Argon2id.
func (a *argon2Deriver) Derive(passphrase string, salt []byte) (DerivedKey, error) {
	var key DerivedKey
	if err := checkDeriveInput(passphrase, salt); err != nil {
		return key, err
	}

	out := argon2.IDKey([]byte(passphrase), salt, a.time, a.memory, a.threads, KeySize)
	copy(key[:], out)
	SecureZero(out)

	return key, nil
}

// Params implements [KeyDeriver].
func (a *argon2Deriver) Params() models.KDFParams {
	return models.KDFParams{
		Algorithm: models.KDFArgon2id,
		Time:      a.time,
		MemoryKiB: a.memory,
		Threads:   a.threads,
	}
}

// pbkdf2Deriver keeps compatibility with iterated-hash key stretching.
type pbkdf2Deriver struct {
	iterations uint32
}

// Derive implements [KeyDeriver] with PBKDF2-HMAC-SHA256.
func (p *pbkdf2Deriver) Derive(passphrase string, salt []byte) (DerivedKey, error) {
	var key DerivedKey
	if err := checkDeriveInput(passphrase, salt); err != nil {
		return key, err
	}

	out := pbkdf2.Key([]byte(passphrase), salt, int(p.iterations), KeySize, sha256.New)
	copy(key[:], out)
	SecureZero(out)

	return key, nil
}

// Params implements [KeyDeriver].
func (p *pbkdf2Deriver) Params() models.KDFParams {
	return models.KDFParams{
		Algorithm: models.KDFPBKDF2SHA256,
		Time:      p.iterations,
	}
}

func checkDeriveInput(passphrase string, salt []byte) error {
	if passphrase == "" {
		return fmt.Errorf("%w: empty passphrase", ErrInvalidInput)
	}
	if len(salt) == 0 {
		return fmt.Errorf("%w: empty salt", ErrInvalidInput)
	}
	return nil
}
