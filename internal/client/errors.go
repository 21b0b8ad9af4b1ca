package client

import "errors"

var (
	ErrPassphraseMismatch = errors.New("passphrases do not match")
	ErrTitleRequired      = errors.New("an item needs a --title")
	ErrNoChanges          = errors.New("nothing to change: pass at least one field flag")
)
