// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable command-line client.
type Client interface {
	// Run executes the command named by args and returns its error.
	Run(ctx context.Context, args []string) error
}

// Prompter reads interactive input.
type Prompter interface {
	// Secret reads a value without echoing it when input is a terminal.
	Secret(label string) (string, error)

	// Line reads one line of visible input.
	Line(label string) (string, error)
}
