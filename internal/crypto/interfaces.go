package crypto

import "github.com/MKhiriev/pass-guard/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a master passphrase into the vault's symmetric key.
//
// Derivation is a pure function of (passphrase, salt, params): no randomness,
// no side effects, no logging. Two calls with the same inputs yield
// byte-identical keys. The passphrase is used verbatim; no trimming or case
// folding is applied.
type KeyDeriver interface {
	// Derive stretches passphrase with salt. Returns [ErrInvalidInput] when
	// either is empty.
	Derive(passphrase string, salt []byte) (DerivedKey, error)

	// Params reports the parameters the deriver was built with, so they can
	// be stored next to the account.
	Params() models.KDFParams
}

// Engine seals and opens structured values with a [DerivedKey].
//
// Every Seal uses a fresh random nonce. Open failures are never
// distinguished: a wrong key, a truncated blob, a forged tag and an
// unparseable plaintext all surface as [ErrDecryptionFailed].
type Engine interface {
	// Seal serializes v to JSON and encrypts it. aad is authenticated but not
	// encrypted and must be supplied again to Open.
	Seal(v any, key DerivedKey, aad []byte) (string, error)

	// Open reverses Seal and unmarshals the plaintext into target, which must
	// be a non-nil pointer. target is left untouched on failure.
	Open(blob string, key DerivedKey, aad []byte, target any) error
}
