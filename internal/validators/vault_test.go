// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testItemID = "0190a3c8-6a2e-7cc4-b1a4-4f8a3a1f2b11"

func validRecord() models.VaultRecord {
	return models.VaultRecord{
		ItemID:           testItemID,
		Title:            "Bank",
		Username:         "alice",
		URL:              "https://bank.example",
		EncryptedPayload: "AQID",
	}
}

func validUser() models.User {
	return models.User{
		Login:          "alice",
		AuthHash:       "abc",
		EncryptionSalt: crypto.EncodeSalt(make([]byte, crypto.SaltSize)),
		KDF:            crypto.DefaultKDFParams(),
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	record := validRecord()
	user := validUser()

	assert.NoError(t, v.Validate(ctx, record))
	assert.NoError(t, v.Validate(ctx, &record))
	assert.NoError(t, v.Validate(ctx, user))
	assert.NoError(t, v.Validate(ctx, &user))
	assert.NoError(t, v.Validate(ctx, models.VaultSearchRequest{OwnerID: 1}))
	assert.NoError(t, v.Validate(ctx, models.RekeyRequest{
		AuthHash:       "h",
		EncryptionSalt: user.EncryptionSalt,
		KDF:            user.KDF,
	}))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, record, "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// VaultRecord
// ---------------------------------------------------------------------------

func TestValidate_Record(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.VaultRecord)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(r *models.VaultRecord) {}},
		{name: "empty search fields are fine", mutate: func(r *models.VaultRecord) { r.Title, r.Username, r.URL = "", "", "" }},
		{name: "missing item id", mutate: func(r *models.VaultRecord) { r.ItemID = "" }, wantErr: ErrInvalidItemID},
		{name: "malformed item id", mutate: func(r *models.VaultRecord) { r.ItemID = "not-a-uuid" }, wantErr: ErrInvalidItemID},
		{name: "empty payload", mutate: func(r *models.VaultRecord) { r.EncryptedPayload = "" }, wantErr: ErrEmptyPayload},
		{name: "payload too large", mutate: func(r *models.VaultRecord) { r.EncryptedPayload = strings.Repeat("A", MaxPayloadLength+1) }, wantErr: ErrPayloadTooLarge},
		{name: "title too long", mutate: func(r *models.VaultRecord) { r.Title = strings.Repeat("t", MaxSearchFieldLength+1) }, wantErr: ErrSearchFieldTooLong},
		{name: "owner id when requested", mutate: func(r *models.VaultRecord) {}, fields: []string{FieldOwnerID}, wantErr: ErrInvalidUserID},
		{name: "scoped to item id ignores payload", mutate: func(r *models.VaultRecord) { r.EncryptedPayload = "" }, fields: []string{FieldItemID}},
	}

	v := NewVaultValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := v.Validate(context.Background(), r, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// User
// ---------------------------------------------------------------------------

func TestValidate_User(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(u *models.User)
		fields  []string
		wantErr error
	}{
		{name: "valid registration", mutate: func(u *models.User) {}},
		{name: "empty login", mutate: func(u *models.User) { u.Login = "" }, wantErr: ErrEmptyLogin},
		{name: "empty auth hash", mutate: func(u *models.User) { u.AuthHash = "" }, wantErr: ErrEmptyAuthHash},
		{name: "empty salt", mutate: func(u *models.User) { u.EncryptionSalt = "" }, wantErr: ErrInvalidSalt},
		{name: "salt not base64", mutate: func(u *models.User) { u.EncryptionSalt = "%%%" }, wantErr: ErrInvalidSalt},
		{name: "salt too short", mutate: func(u *models.User) { u.EncryptionSalt = crypto.EncodeSalt([]byte("short")) }, wantErr: ErrInvalidSalt},
		{name: "unknown kdf", mutate: func(u *models.User) { u.KDF.Algorithm = "md5" }, wantErr: ErrInvalidKDF},
		{name: "weak pbkdf2", mutate: func(u *models.User) {
			u.KDF = models.KDFParams{Algorithm: models.KDFPBKDF2SHA256, Time: 10}
		}, wantErr: ErrInvalidKDF},
		{name: "weak argon2id", mutate: func(u *models.User) {
			u.KDF = models.KDFParams{Algorithm: models.KDFArgon2id, Time: 1, MemoryKiB: 8, Threads: 1}
		}, wantErr: ErrInvalidKDF},
		{name: "argon2id memory above ceiling", mutate: func(u *models.User) {
			u.KDF = models.KDFParams{Algorithm: models.KDFArgon2id, Time: 1, MemoryKiB: crypto.MaxArgon2MemoryKiB * 4, Threads: 4}
		}, wantErr: ErrInvalidKDF},
		{name: "login only", mutate: func(u *models.User) { u.AuthHash, u.EncryptionSalt = "", "" }, fields: []string{FieldLogin}},
	}

	v := NewVaultValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)

			err := v.Validate(context.Background(), u, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// Search and rekey
// ---------------------------------------------------------------------------

func TestValidate_Search(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.VaultSearchRequest{OwnerID: 3, Search: "50%_off"}))
	assert.ErrorIs(t, v.Validate(ctx, models.VaultSearchRequest{}), ErrInvalidUserID)
	assert.ErrorIs(t,
		v.Validate(ctx, models.VaultSearchRequest{OwnerID: 3, Search: strings.Repeat("q", MaxSearchQueryLength+1)}),
		ErrSearchQueryTooLong)
}

func TestValidate_Rekey(t *testing.T) {
	v := NewVaultValidator()
	ctx := context.Background()
	user := validUser()

	req := models.RekeyRequest{
		AuthHash:       "new",
		EncryptionSalt: user.EncryptionSalt,
		KDF:            user.KDF,
		Items:          []models.VaultRecord{validRecord()},
	}
	require.NoError(t, v.Validate(ctx, req))

	dup := req
	dup.Items = []models.VaultRecord{validRecord(), validRecord()}
	err := v.Validate(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateItemID)
	assert.Contains(t, err.Error(), "index 1")

	bad := req
	bad.Items = []models.VaultRecord{{ItemID: testItemID}}
	assert.ErrorIs(t, v.Validate(ctx, bad), ErrEmptyPayload)

	noHash := req
	noHash.AuthHash = ""
	assert.ErrorIs(t, v.Validate(ctx, noHash), ErrEmptyAuthHash)
}
