package main

import (
	"fmt"
	"os/exec"
)

// findReorderBinary finds the reorder binary under test.
// It expects a binary built from ./cmd/reorder on PATH.
func findReorderBinary() (string, error) {
	path, err := exec.LookPath("reorder")
	if err != nil {
		return "", fmt.Errorf("could not find 'reorder' binary in PATH. Build ./cmd/reorder into a directory on PATH")
	}
	return path, nil
}
