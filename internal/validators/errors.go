package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidItemID      = errors.New("invalid item id")
	ErrEmptyPayload       = errors.New("encrypted payload is required")
	ErrEmptyLogin         = errors.New("login is required")
	ErrEmptyAuthHash      = errors.New("auth hash is required")
	ErrInvalidSalt        = errors.New("invalid encryption salt")
	ErrInvalidKDF         = errors.New("invalid key derivation parameters")
	ErrDuplicateItemID    = errors.New("duplicate item id")
	ErrSearchFieldTooLong = errors.New("search field is too long")
	ErrSearchQueryTooLong = errors.New("search query is too long")
	ErrPayloadTooLarge    = errors.New("encrypted payload is too large")
)
