package service

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

type clientVaultService struct {
	*clientCore
}

func newClientVaultService(core *clientCore) *clientVaultService {
	return &clientVaultService{clientCore: core}
}

func (v *clientVaultService) Add(ctx context.Context, passphrase string, fields models.VaultFields) (models.VaultRecord, error) {
	sess, err := v.session(ctx)
	if err != nil {
		return models.VaultRecord{}, err
	}
	mgr, err := v.manager(sess)
	if err != nil {
		return models.VaultRecord{}, err
	}

	key, err := v.unlock(sess, mgr, passphrase)
	if err != nil {
		return models.VaultRecord{}, err
	}
	defer key.Destroy()

	record, err := mgr.CreateRecordWithKey(0, fields, key)
	if err != nil {
		return models.VaultRecord{}, err
	}

	created, err := v.adapter.CreateItem(ctx, record)
	if err != nil {
		return models.VaultRecord{}, mapAdapterError(err)
	}
	return created, nil
}

func (v *clientVaultService) Get(ctx context.Context, passphrase, itemID string) (models.VaultFields, error) {
	sess, err := v.session(ctx)
	if err != nil {
		return models.VaultFields{}, err
	}
	mgr, err := v.manager(sess)
	if err != nil {
		return models.VaultFields{}, err
	}

	record, err := v.adapter.GetItem(ctx, itemID)
	if err != nil {
		return models.VaultFields{}, mapAdapterError(err)
	}

	return mgr.OpenRecord(record, passphrase)
}

func (v *clientVaultService) List(ctx context.Context, search string) ([]models.VaultRecord, error) {
	if _, err := v.session(ctx); err != nil {
		return nil, err
	}

	records, err := v.adapter.ListItems(ctx, search)
	if err != nil {
		return nil, mapAdapterError(err)
	}
	return records, nil
}

func (v *clientVaultService) Edit(ctx context.Context, passphrase, itemID string, edit func(*models.VaultFields)) (models.VaultRecord, error) {
	sess, err := v.session(ctx)
	if err != nil {
		return models.VaultRecord{}, err
	}
	mgr, err := v.manager(sess)
	if err != nil {
		return models.VaultRecord{}, err
	}

	record, err := v.adapter.GetItem(ctx, itemID)
	if err != nil {
		return models.VaultRecord{}, mapAdapterError(err)
	}

	key, err := mgr.Unlock(passphrase)
	if err != nil {
		return models.VaultRecord{}, err
	}
	defer key.Destroy()

	fields, err := mgr.OpenRecordWithKey(record, key)
	if err != nil {
		return models.VaultRecord{}, err
	}
	edit(&fields)

	sealed, err := mgr.UpdateRecordWithKey(record, fields, key)
	if err != nil {
		return models.VaultRecord{}, err
	}

	updated, err := v.adapter.UpdateItem(ctx, sealed)
	if err != nil {
		return models.VaultRecord{}, mapAdapterError(err)
	}
	return updated, nil
}

func (v *clientVaultService) Remove(ctx context.Context, itemID string) error {
	if _, err := v.session(ctx); err != nil {
		return err
	}

	return mapAdapterError(v.adapter.DeleteItem(ctx, itemID))
}
