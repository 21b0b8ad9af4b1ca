package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/validators"
	"github.com/MKhiriev/pass-guard/models"
)

// VaultValidationService rejects malformed requests before they reach the
// wrapped VaultService. Failures wrap ErrInvalidDataProvided.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) Create(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, record,
		validators.FieldOwnerID, validators.FieldItemID, validators.FieldSearchFields, validators.FieldEncryptedPayload); err != nil {
		return models.VaultRecord{}, invalid(err)
	}

	return v.inner.Create(ctx, record)
}

func (v *VaultValidationService) Get(ctx context.Context, ownerID int64, itemID string) (models.VaultRecord, error) {
	if err := v.validateKey(ctx, ownerID, itemID); err != nil {
		return models.VaultRecord{}, err
	}

	return v.inner.Get(ctx, ownerID, itemID)
}

func (v *VaultValidationService) Search(ctx context.Context, req models.VaultSearchRequest) ([]models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return nil, invalid(err)
	}

	return v.inner.Search(ctx, req)
}

func (v *VaultValidationService) Update(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	if err := v.validator.Validate(ctx, record,
		validators.FieldOwnerID, validators.FieldItemID, validators.FieldSearchFields, validators.FieldEncryptedPayload); err != nil {
		return models.VaultRecord{}, invalid(err)
	}

	return v.inner.Update(ctx, record)
}

func (v *VaultValidationService) Delete(ctx context.Context, ownerID int64, itemID string) error {
	if err := v.validateKey(ctx, ownerID, itemID); err != nil {
		return err
	}

	return v.inner.Delete(ctx, ownerID, itemID)
}

func (v *VaultValidationService) Wrap(inner VaultService) VaultService {
	v.inner = inner
	return v
}

func (v *VaultValidationService) validateKey(ctx context.Context, ownerID int64, itemID string) error {
	key := models.VaultRecord{OwnerID: ownerID, ItemID: itemID}
	if err := v.validator.Validate(ctx, key, validators.FieldOwnerID, validators.FieldItemID); err != nil {
		return invalid(err)
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
