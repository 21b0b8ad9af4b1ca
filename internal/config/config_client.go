// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/models"
)

// ClientConfig is the CLI client configuration.
type ClientConfig struct {
	// ServerAddress is the base URL of the pass-guard server.
	// Env: PASS_GUARD_SERVER_ADDRESS
	ServerAddress string `env:"PASS_GUARD_SERVER_ADDRESS" json:"server_address"`

	// RequestTimeout bounds each call to the server.
	// Env: PASS_GUARD_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"PASS_GUARD_REQUEST_TIMEOUT" json:"-"`

	// SessionDSN is the local SQLite database holding the login session.
	// Env: PASS_GUARD_SESSION_DSN
	SessionDSN string `env:"PASS_GUARD_SESSION_DSN" json:"session_dsn"`

	// LogFile receives client logs. Env: PASS_GUARD_LOG_FILE
	LogFile string `env:"PASS_GUARD_LOG_FILE" json:"log_file"`

	// KDF settings applied at registration and rekey. Existing accounts
	// always use the parameters stored with them.
	KDFAlgorithm string `env:"PASS_GUARD_KDF_ALGORITHM" json:"kdf_algorithm"`
	KDFTime      uint32 `env:"PASS_GUARD_KDF_TIME" json:"kdf_time"`
	KDFMemoryKiB uint32 `env:"PASS_GUARD_KDF_MEMORY_KIB" json:"kdf_memory_kib"`
	KDFThreads   uint8  `env:"PASS_GUARD_KDF_THREADS" json:"kdf_threads"`

	// JSONFilePath is the optional client JSON config.
	// Env: PASS_GUARD_CONFIG
	JSONFilePath string `env:"PASS_GUARD_CONFIG" json:"-"`
}

// KDFParams returns the configured key-derivation parameters for new keys.
func (c *ClientConfig) KDFParams() models.KDFParams {
	return models.KDFParams{
		Algorithm: c.KDFAlgorithm,
		Time:      c.KDFTime,
		MemoryKiB: c.KDFMemoryKiB,
		Threads:   c.KDFThreads,
	}
}

func defaultClientConfig() *ClientConfig {
	dir := defaultClientDir()
	kdf := crypto.DefaultKDFParams()

	return &ClientConfig{
		ServerAddress:  "http://localhost:8080",
		RequestTimeout: 15 * time.Second,
		SessionDSN:     filepath.Join(dir, "session.db"),
		LogFile:        filepath.Join(dir, "client.log"),
		KDFAlgorithm:   kdf.Algorithm,
		KDFTime:        kdf.Time,
		KDFMemoryKiB:   kdf.MemoryKiB,
		KDFThreads:     kdf.Threads,
	}
}

func defaultClientDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pass-guard")
}

// GetClientConfig merges the environment, flagCfg (the values of the
// command-line flags the caller parsed), the optional JSON file and defaults.
func GetClientConfig(flagCfg *ClientConfig) (*ClientConfig, error) {
	if flagCfg == nil {
		flagCfg = &ClientConfig{}
	}

	return newConfigBuilder(clientJSONPath, (*ClientConfig).validate).
		withEnv().
		with(flagCfg).
		withJSON(parseClientJSON).
		with(defaultClientConfig()).
		build()
}

func clientJSONPath(cfg *ClientConfig) string {
	return cfg.JSONFilePath
}
