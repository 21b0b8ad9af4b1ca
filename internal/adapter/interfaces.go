// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the PassGuard server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401). The response body is kept in the error
// text so callers can tell apart different reasons behind one status.
package adapter

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the PassGuard server. Only
// sealed records, salts, KDF params and auth hashes ever cross it.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates the account and returns the issued bearer token,
	// which is also stored via SetToken.
	Register(ctx context.Context, user models.User) (string, error)

	// Params fetches the salt and KDF params stored for login.
	Params(ctx context.Context, login string) (models.User, error)

	// Login proves knowledge of the vault key with user.AuthHash and returns
	// the issued bearer token, which is also stored via SetToken.
	Login(ctx context.Context, user models.User) (string, error)

	// Rekey replaces the account key material and every item payload.
	Rekey(ctx context.Context, req models.RekeyRequest) error

	CreateItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	GetItem(ctx context.Context, itemID string) (models.VaultRecord, error)
	// ListItems returns the caller's records whose search fields contain
	// search, newest first. An empty search lists everything.
	ListItems(ctx context.Context, search string) ([]models.VaultRecord, error)
	UpdateItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error)
	DeleteItem(ctx context.Context, itemID string) error

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
