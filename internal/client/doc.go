// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the pass-guard command-line client.
//
// Every command that opens or seals an item prompts for the master
// passphrase; it is never stored or sent. The local session only remembers
// the login, the bearer token and the account's key-derivation inputs.
package client
