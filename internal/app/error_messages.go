// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings the server writes into error
// response bodies. The client adapter matches on the same constants to turn
// a response back into a sentinel error, so wording must stay in sync on
// both sides.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the login does not exist or
	// the auth hash does not match.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned for unexpected server failures.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when an authenticated route runs
	// without an owner id in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgRegistrationFailed is returned when an account cannot be created
	// for reasons other than a taken login.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when a session token cannot be issued.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when the requested login is taken.
	MsgLoginAlreadyExists = "login already exists"

	// MsgUserNotFound is returned by the params endpoint for an unknown
	// login.
	MsgUserNotFound = "user not found"

	// MsgItemNotFound is returned when no item of the caller matches the id.
	MsgItemNotFound = "vault item not found"

	// MsgItemAlreadyExists is returned when the caller already has an item
	// with the same id.
	MsgItemAlreadyExists = "vault item already exists"

	// MsgRekeyIncomplete is returned when a rekey does not cover exactly the
	// caller's current items. Nothing was changed.
	MsgRekeyIncomplete = "rekey must cover every vault item"
)
