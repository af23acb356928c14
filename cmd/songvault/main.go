// Package main provides the songvault CLI, a local song catalog store
// with full-text search over artists, titles, and lyrics.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/songvault/songvault/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad id, missing record), 2
// system error (storage or network failure).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrParseFailed),
		errors.Is(err, types.ErrDraftNotPromoted):
		return exitUserError
	}
	return exitSysError
}
