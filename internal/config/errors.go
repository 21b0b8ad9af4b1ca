package config

import "errors"

// Validation errors returned when a merged configuration is incomplete or
// inconsistent.
var (
	// ErrInvalidAdapterConfigs indicates invalid client transport settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates a missing or unusable DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing secrets or token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid listen settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidKDFConfigs indicates key-derivation defaults below the
	// accepted floor or an unknown algorithm.
	ErrInvalidKDFConfigs = errors.New("invalid key derivation configuration")
)
