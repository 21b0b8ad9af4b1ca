// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/pass-guard/internal/adapter"
	"github.com/MKhiriev/pass-guard/internal/app"
	"github.com/MKhiriev/pass-guard/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// or store sentinel, using the server message to tell apart errors that
// share a status.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := adapter.Message(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, msg)

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			return ErrWrongPassword
		case app.MsgTokenIsExpiredOrInvalid, app.MsgNoUserIDProvided:
			return ErrSessionExpired
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgItemNotFound:
			return store.ErrVaultItemNotFound
		case app.MsgUserNotFound:
			return store.ErrNoUserWasFound
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgLoginAlreadyExists:
			return store.ErrLoginAlreadyExists
		case app.MsgItemAlreadyExists:
			return store.ErrVaultItemAlreadyExists
		case app.MsgRekeyIncomplete:
			return store.ErrRekeyIncomplete
		}

	case errors.Is(err, adapter.ErrBadGateway), errors.Is(err, adapter.ErrInternalServerError):
		switch msg {
		case app.MsgRegistrationFailed:
			return ErrRegisterOnServer
		case app.MsgLoginFailed:
			return ErrLoginOnServer
		}
	}

	return err
}
