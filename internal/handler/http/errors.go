// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoUserIDInContext means an authenticated route ran without the auth
	// middleware having set the owner id.
	ErrNoUserIDInContext = errors.New("no user id in request context")

	// ErrItemIDMismatch is returned when the body of an update names a
	// different item than the URL.
	ErrItemIDMismatch = errors.New("item id in body does not match the URL")
)
