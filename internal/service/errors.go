package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// Client-side errors.
var (
	ErrNotLoggedIn      = errors.New("not logged in: run `login` first")
	ErrSessionExpired   = errors.New("session expired: run `login` again")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrPassphraseEmpty  = errors.New("master passphrase must not be empty")
)
