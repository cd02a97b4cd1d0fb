// Package keyfile materializes private key material on disk for exactly as
// long as a caller needs it.
package keyfile

import (
	"fmt"
	"os"
)

// Mode is the permission of every key file.
const Mode os.FileMode = 0o600

const pattern = "appops-key-*"

// With writes key to a new uniquely named file in dir (the system temp dir
// when empty), calls fn with its path, and removes the file before returning,
// whatever fn returns. The file is created 0600 before any key byte is written.
func With(dir string, key []byte, fn func(path string) error) (err error) {
	path, err := write(dir, key)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = fmt.Errorf("failed to remove key file: %w", rmErr)
		}
	}()

	return fn(path)
}

func write(dir string, key []byte) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create key file: %w", err)
	}
	path := f.Name()

	if err := f.Chmod(Mode); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to restrict key file: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write key file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close key file: %w", err)
	}
	return path, nil
}
