// Package main is the entry point for the mcpdock CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mcpdock/mcpdock/cmd/mcpdock/commands"
	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)

	var exitErr *mcperrors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
	os.Exit(mcperrors.ExitUser)
}
