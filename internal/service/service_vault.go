package service

import (
	"context"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/models"
)

// vaultService passes sealed records to the repository. It never inspects
// encrypted_payload.
type vaultService struct {
	vaultRepository store.VaultRepository

	logger *logger.Logger
}

// NewVaultService returns a VaultService over vaultRepository, wrapped by
// the given wrappers in order. The first wrapper is the outermost.
func NewVaultService(vaultRepository store.VaultRepository, logger *logger.Logger, wrappers ...VaultServiceWrapper) VaultService {
	var svc VaultService = &vaultService{
		vaultRepository: vaultRepository,
		logger:          logger,
	}

	for i := len(wrappers) - 1; i >= 0; i-- {
		svc = wrappers[i].Wrap(svc)
	}
	return svc
}

func (v *vaultService) Create(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	return v.vaultRepository.SaveVaultItem(ctx, record)
}

func (v *vaultService) Get(ctx context.Context, ownerID int64, itemID string) (models.VaultRecord, error) {
	return v.vaultRepository.GetVaultItem(ctx, ownerID, itemID)
}

func (v *vaultService) Search(ctx context.Context, req models.VaultSearchRequest) ([]models.VaultRecord, error) {
	return v.vaultRepository.SearchVaultItems(ctx, req)
}

func (v *vaultService) Update(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	return v.vaultRepository.UpdateVaultItem(ctx, record)
}

func (v *vaultService) Delete(ctx context.Context, ownerID int64, itemID string) error {
	return v.vaultRepository.DeleteVaultItem(ctx, ownerID, itemID)
}
