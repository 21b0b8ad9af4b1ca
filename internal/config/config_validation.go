// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/pass-guard/internal/crypto"
)

// validate checks the merged server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: password hash key and token sign key are required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token issuer and a positive token duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: address and a positive request timeout are required", ErrInvalidServerConfigs)
	}

	return nil
}

// validate checks the merged client configuration.
func (cfg *ClientConfig) validate() error {
	if cfg.SessionDSN == "" || strings.Contains(cfg.SessionDSN, ":memory:") {
		return fmt.Errorf("%w: session DSN must point to a file", ErrInvalidStorageConfigs)
	}

	u, err := url.Parse(cfg.ServerAddress)
	if err != nil || cfg.ServerAddress == "" || (u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: invalid server address %q", ErrInvalidAdapterConfigs, cfg.ServerAddress)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	if _, err := crypto.NewKeyDeriver(cfg.KDFParams()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKDFConfigs, err)
	}

	return nil
}
