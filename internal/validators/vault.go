package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

// Field names accepted by [VaultValidator.Validate].
const (
	FieldUserID           = "user_id"
	FieldItemID           = "item_id"
	FieldOwnerID          = "owner_id"
	FieldSearchFields     = "search_fields"
	FieldEncryptedPayload = "encrypted_payload"

	FieldLogin          = "login"
	FieldAuthHash       = "auth_hash"
	FieldEncryptionSalt = "encryption_salt"
	FieldKDF            = "kdf"

	FieldSearch = "search"
	FieldItems  = "items"
)

// Size limits for client-supplied values.
const (
	MaxSearchFieldLength = 1024
	MaxSearchQueryLength = 256
	MaxPayloadLength     = 1 << 20
)

// VaultValidator implements [Validator] for vault records, accounts, search
// requests and rekey requests.
type VaultValidator struct{}

// NewVaultValidator constructs a [VaultValidator].
func NewVaultValidator() Validator {
	return &VaultValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms are
// accepted. Without fields a default set is checked per type.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultRecord:
		return v.validateRecord(value, fields...)
	case *models.VaultRecord:
		return v.validateRecord(*value, fields...)

	case models.User:
		return v.validateUser(value, fields...)
	case *models.User:
		return v.validateUser(*value, fields...)

	case models.VaultSearchRequest:
		return v.validateSearch(value, fields...)
	case *models.VaultSearchRequest:
		return v.validateSearch(*value, fields...)

	case models.RekeyRequest:
		return v.validateRekey(value, fields...)
	case *models.RekeyRequest:
		return v.validateRekey(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRecord checks a record as sent by a client.
//
// Default fields: ItemID, SearchFields, EncryptedPayload.
func (v *VaultValidator) validateRecord(record models.VaultRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldItemID, FieldSearchFields, FieldEncryptedPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldItemID:
			if !utils.IsValidID(record.ItemID) {
				return ErrInvalidItemID
			}
		case FieldOwnerID:
			if record.OwnerID <= 0 {
				return ErrInvalidUserID
			}
		case FieldSearchFields:
			for _, s := range []string{record.Title, record.Username, record.URL} {
				if len(s) > MaxSearchFieldLength {
					return ErrSearchFieldTooLong
				}
			}
		case FieldEncryptedPayload:
			if record.EncryptedPayload == "" {
				return ErrEmptyPayload
			}
			if len(record.EncryptedPayload) > MaxPayloadLength {
				return ErrPayloadTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUser checks registration, params and login payloads.
//
// Default fields: Login, AuthHash, EncryptionSalt, KDF.
func (v *VaultValidator) validateUser(user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldAuthHash, FieldEncryptionSalt, FieldKDF}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldAuthHash:
			if user.AuthHash == "" {
				return ErrEmptyAuthHash
			}
		case FieldEncryptionSalt:
			if err := validateSalt(user.EncryptionSalt); err != nil {
				return err
			}
		case FieldKDF:
			if err := validateKDF(user.KDF); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateSearch checks a list request.
//
// Default fields: UserID, Search.
func (v *VaultValidator) validateSearch(req models.VaultSearchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldSearch}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if req.OwnerID <= 0 {
				return ErrInvalidUserID
			}
		case FieldSearch:
			if len(req.Search) > MaxSearchQueryLength {
				return ErrSearchQueryTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRekey checks the replacement key material and every re-sealed
// item.
//
// Default fields: AuthHash, EncryptionSalt, KDF, Items. An empty item list
// is valid for an empty vault.
func (v *VaultValidator) validateRekey(req models.RekeyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAuthHash, FieldEncryptionSalt, FieldKDF, FieldItems}
	}

	for _, f := range fields {
		switch f {
		case FieldAuthHash:
			if req.AuthHash == "" {
				return ErrEmptyAuthHash
			}
		case FieldEncryptionSalt:
			if err := validateSalt(req.EncryptionSalt); err != nil {
				return err
			}
		case FieldKDF:
			if err := validateKDF(req.KDF); err != nil {
				return err
			}
		case FieldItems:
			seen := make(map[string]struct{}, len(req.Items))
			for i, item := range req.Items {
				if err := v.validateRecord(item); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if _, dup := seen[item.ItemID]; dup {
					return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicateItemID)
				}
				seen[item.ItemID] = struct{}{}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateSalt(encoded string) error {
	salt, err := crypto.DecodeSalt(encoded)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSalt, err)
	}
	if len(salt) < crypto.SaltSize {
		return fmt.Errorf("%w: salt shorter than %d bytes", ErrInvalidSalt, crypto.SaltSize)
	}
	return nil
}

func validateKDF(params models.KDFParams) error {
	if _, err := crypto.NewKeyDeriver(params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKDF, err)
	}
	return nil
}
