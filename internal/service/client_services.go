package service

import (
	"github.com/MKhiriev/pass-guard/internal/adapter"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
)

type ClientServices struct {
	AuthService  ClientAuthService
	VaultService ClientVaultService
}

// NewClientServices wires the client services. deriver fixes the KDF params
// for keys created by register and rekey; existing keys are always derived
// with the params stored on the account.
func NewClientServices(sessions store.SessionRepository, serverAdapter adapter.ServerAdapter, deriver crypto.KeyDeriver, logger *logger.Logger) *ClientServices {
	core := &clientCore{
		sessions:   sessions,
		adapter:    serverAdapter,
		engine:     crypto.NewEngine(),
		ids:        utils.NewUUIDGenerator(),
		newDeriver: crypto.NewKeyDeriver,
		logger:     logger,
	}

	return &ClientServices{
		AuthService:  newClientAuthService(core, deriver),
		VaultService: newClientVaultService(core),
	}
}
